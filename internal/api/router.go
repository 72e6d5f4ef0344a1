package api

import (
	"fmt"
	"net/http"

	_ "github.com/priyan-sh/dropgate/docs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/priyan-sh/dropgate/internal/api/handlers"
	"github.com/priyan-sh/dropgate/internal/api/middleware"
	"github.com/priyan-sh/dropgate/internal/config"
	"github.com/priyan-sh/dropgate/internal/services"
)

// SetupRouter wires the HTTP surface. Share preview/download/stats and file
// info are public: recipients of a link never authenticate. Everything that
// mutates files or shares sits behind the auth middleware.
func SetupRouter(cfg config.Config, h *handlers.Handler, identity *services.IdentityService) http.Handler {
	mux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)
	authed := middleware.Auth(identity)

	protected := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, authed(fn))
	}

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /api/v1/auth/sign-up", h.SignUp)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/auth/google/login", h.GoogleLogin)
	mux.HandleFunc("GET /api/v1/auth/google/callback", h.GoogleCallback)

	mux.HandleFunc("GET /api/v1/files/{fileId}", h.FileInfo)
	mux.HandleFunc("GET /api/v1/shares/{token}", h.SharePreview)
	mux.HandleFunc("GET /api/v1/shares/{token}/download", h.ShareDownload)
	mux.HandleFunc("GET /api/v1/shares/{token}/stats", h.ShareStats)

	// ---------- PROTECTED ROUTES ----------
	protected("POST /api/v1/files/upload", h.UploadFile)
	protected("POST /api/v1/files/{fileId}/share", h.CreateShareLink)
	protected("GET /api/v1/files/my-files", h.MyFiles)
	protected("GET /api/v1/files/my-shares", h.MyShares)
	protected("GET /api/v1/files/analytics", h.FileAnalyticsView)
	protected("DELETE /api/v1/files/{fileId}", h.DeleteFile)
	protected("DELETE /api/v1/shares/{token}", h.DeleteShare)

	handler := c.Handler(mux)
	handler = middleware.Logger(handler)
	return handler
}
