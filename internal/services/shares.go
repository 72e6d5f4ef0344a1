package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/priyan-sh/dropgate/internal/blob"
	"github.com/priyan-sh/dropgate/internal/metrics"
	"github.com/priyan-sh/dropgate/internal/models"
	"github.com/priyan-sh/dropgate/internal/repositories"
	"github.com/priyan-sh/dropgate/internal/utils"
)

const (
	tokenBytes     = 32 // 256-bit share tokens
	downloadURLTTL = 15 * time.Minute
)

// ShareService owns the share-link lifecycle: minting tokens, gating
// downloads on expiry/quota, accounting, and cascade cleanup.
type ShareService struct {
	shares repositories.ShareRepository
	files  repositories.FileRepository
	blobs  blob.Store

	baseURL string
	// strictQuota switches ConsumeDownload from gate-then-increment to a
	// single conditional update, closing the small overshoot window near
	// the download limit.
	strictQuota bool
}

func NewShareService(shares repositories.ShareRepository, files repositories.FileRepository, blobs blob.Store, baseURL string, strictQuota bool) *ShareService {
	return &ShareService{
		shares:      shares,
		files:       files,
		blobs:       blobs,
		baseURL:     strings.TrimRight(baseURL, "/"),
		strictQuota: strictQuota,
	}
}

type CreatedShare struct {
	Share    models.Share
	ShareURL string
}

// CreateLink mints a share for a file the requester owns.
func (s *ShareService) CreateLink(ctx context.Context, fileID, requesterID uuid.UUID, expiresAt *time.Time, maxDownloads *int) (*CreatedShare, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.OwnerID != requesterID {
		return nil, ErrAccessDenied
	}

	token, err := utils.GenerateSecureToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	share := models.Share{
		FileID:       fileID,
		Token:        token,
		ExpiresAt:    expiresAt,
		MaxDownloads: maxDownloads,
	}
	if err := s.shares.Create(ctx, &share); err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}

	return &CreatedShare{
		Share:    share,
		ShareURL: fmt.Sprintf("%s/share/%s", s.baseURL, token),
	}, nil
}

// ValidationResult is the outcome of checking a token. Reason is set only
// when the share is not active and is the coarse string exposed on public
// paths.
type ValidationResult struct {
	Active bool
	Reason string
	Share  *models.Share
}

// Validate looks up a token and derives its state. Store read failures
// degrade to not-found: the public lookup path stays up even when a read
// hiccups, and a share we cannot read is a share we do not serve.
func (s *ShareService) Validate(ctx context.Context, token string) *ValidationResult {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("share lookup failed for token %s: %v", token, err)
		}
		metrics.ShareValidationsTotal.WithLabelValues(ReasonNotFound).Inc()
		return &ValidationResult{Reason: ReasonNotFound}
	}

	switch share.StateAt(time.Now()) {
	case models.ShareExpired:
		metrics.ShareValidationsTotal.WithLabelValues(ReasonExpired).Inc()
		return &ValidationResult{Reason: ReasonExpired, Share: share}
	case models.ShareExhausted:
		metrics.ShareValidationsTotal.WithLabelValues(ReasonLimitReached).Inc()
		return &ValidationResult{Reason: ReasonLimitReached, Share: share}
	default:
		metrics.ShareValidationsTotal.WithLabelValues("active").Inc()
		return &ValidationResult{Active: true, Share: share}
	}
}

type ResolvedShare struct {
	File  models.File
	Share models.Share
}

// Resolve composes validation with the file lookup for the public preview
// page. A share whose file is gone reads as not-found, never as an error.
func (s *ShareService) Resolve(ctx context.Context, token string) (*ResolvedShare, *ValidationResult) {
	v := s.Validate(ctx, token)
	if !v.Active {
		return nil, v
	}
	file, err := s.files.GetByID(ctx, v.Share.FileID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("file lookup failed for share %s: %v", token, err)
		}
		return nil, &ValidationResult{Reason: ReasonNotFound}
	}
	return &ResolvedShare{File: *file, Share: *v.Share}, v
}

// ConsumeDownload runs the download gate and returns a time-limited URL.
// The gate check is fail-closed; the count increment is fail-open: once a
// URL has been issued, an accounting failure is logged and swallowed so the
// recipient is never blocked by bookkeeping.
func (s *ShareService) ConsumeDownload(ctx context.Context, token string) (string, *ValidationResult, error) {
	if s.strictQuota {
		return s.consumeStrict(ctx, token)
	}

	v := s.Validate(ctx, token)
	if !v.Active {
		metrics.DownloadsTotal.WithLabelValues(v.Reason).Inc()
		return "", v, nil
	}

	url, err := s.downloadURLFor(ctx, v.Share.FileID, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.DownloadsTotal.WithLabelValues(ReasonNotFound).Inc()
			return "", &ValidationResult{Reason: ReasonNotFound}, nil
		}
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if err := s.shares.RecordDownload(ctx, token, time.Now()); err != nil {
		// Don't fail the download over a counting issue.
		log.Printf("warning: download count update failed for share %s: %v", token, err)
		metrics.CountWriteFailuresTotal.Inc()
	}

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return url, v, nil
}

// consumeStrict performs validate+increment as one conditional update, so
// two racing downloads can never both pass the gate on the last slot.
func (s *ShareService) consumeStrict(ctx context.Context, token string) (string, *ValidationResult, error) {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.DownloadsTotal.WithLabelValues(ReasonNotFound).Inc()
			return "", &ValidationResult{Reason: ReasonNotFound}, nil
		}
		return "", nil, err
	}

	ok, err := s.shares.ConsumeIfActive(ctx, token, time.Now())
	if err != nil {
		// The gate itself failed; fail closed.
		return "", nil, err
	}
	if !ok {
		v := s.Validate(ctx, token)
		if v.Active {
			// Lost a race on the final slot between the update and the
			// re-read; report it as the limit.
			v = &ValidationResult{Reason: ReasonLimitReached, Share: v.Share}
		}
		metrics.DownloadsTotal.WithLabelValues(v.Reason).Inc()
		return "", v, nil
	}

	url, err := s.downloadURLFor(ctx, share.FileID, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.DownloadsTotal.WithLabelValues(ReasonNotFound).Inc()
			return "", &ValidationResult{Reason: ReasonNotFound}, nil
		}
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return url, &ValidationResult{Active: true, Share: share}, nil
}

// downloadURLFor checks the blob still exists and presigns a GET for it.
// A share whose file or blob vanished mid-flight yields ErrNotFound rather
// than a URL that would 404 at the store.
func (s *ShareService) downloadURLFor(ctx context.Context, fileID uuid.UUID, token string) (string, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	exists, err := s.blobs.Exists(ctx, file.ID.String())
	if err != nil {
		return "", fmt.Errorf("check blob for share %s: %w", token, err)
	}
	if !exists {
		log.Printf("share %s points at missing blob %s", token, file.ID)
		return "", ErrNotFound
	}

	return s.blobs.DownloadURL(ctx, file.ID.String(), downloadURLTTL)
}

type ShareStats struct {
	Token          string            `json:"shareToken"`
	DownloadCount  int               `json:"downloadCount"`
	MaxDownloads   *int              `json:"maxDownloads,omitempty"`
	ExpiresAt      *time.Time        `json:"expiresAt,omitempty"`
	LastDownloadAt *time.Time        `json:"lastDownloadAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	State          models.ShareState `json:"state"`
	IsExpired      bool              `json:"isExpired"`
	IsLimitReached bool              `json:"isLimitReached"`
	IsActive       bool              `json:"isActive"`
}

// Stats is a read-only projection of a share for analytics.
func (s *ShareService) Stats(ctx context.Context, token string) (*ShareStats, error) {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("share stats lookup failed for token %s: %v", token, err)
		}
		return nil, ErrNotFound
	}

	state := share.StateAt(time.Now())
	return &ShareStats{
		Token:          share.Token,
		DownloadCount:  share.DownloadCount,
		MaxDownloads:   share.MaxDownloads,
		ExpiresAt:      share.ExpiresAt,
		LastDownloadAt: share.LastDownloadAt,
		CreatedAt:      share.CreatedAt,
		State:          state,
		IsExpired:      state == models.ShareExpired,
		IsLimitReached: state == models.ShareExhausted,
		IsActive:       state == models.ShareActive,
	}, nil
}

// Delete removes a share. Only the owner of the underlying file may do so;
// a share whose file record is missing has no provable owner and is denied.
func (s *ShareService) Delete(ctx context.Context, token string, requesterID uuid.UUID) error {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	file, err := s.files.GetByID(ctx, share.FileID)
	if err != nil || file.OwnerID != requesterID {
		return ErrAccessDenied
	}

	return s.shares.DeleteByToken(ctx, token)
}

// CascadeDeleteForFile removes every share referencing fileID. Best-effort:
// a failure here must never fail the file deletion that triggered it.
func (s *ShareService) CascadeDeleteForFile(ctx context.Context, fileID uuid.UUID) {
	n, err := s.shares.DeleteByFileID(ctx, fileID)
	if err != nil {
		log.Printf("warning: cascade share delete failed for file %s: %v", fileID, err)
		return
	}
	if n > 0 {
		log.Printf("deleted %d share(s) for file %s", n, fileID)
	}
}
