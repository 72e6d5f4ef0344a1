package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropgate_uploads_total",
		Help: "Number of successfully uploaded files.",
	})

	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropgate_upload_bytes_total",
		Help: "Total bytes written to the blob store by uploads.",
	})

	DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dropgate_downloads_total",
		Help: "Download attempts through share links, by outcome.",
	}, []string{"status"})

	ShareValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dropgate_share_validations_total",
		Help: "Share token validations, by result.",
	}, []string{"result"})

	CountWriteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropgate_count_write_failures_total",
		Help: "Download-count increments that failed and were dropped.",
	})
)
