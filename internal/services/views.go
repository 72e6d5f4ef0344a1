package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/priyan-sh/dropgate/internal/models"
	"github.com/priyan-sh/dropgate/internal/repositories"
)

// ViewService builds the owner-facing composites the store cannot join for
// us: shares enriched with file names, and per-file download rollups. All
// of it is computed at read time and never persisted.
type ViewService struct {
	files  repositories.FileRepository
	shares repositories.ShareRepository
}

func NewViewService(files repositories.FileRepository, shares repositories.ShareRepository) *ViewService {
	return &ViewService{files: files, shares: shares}
}

type ShareView struct {
	ID             uuid.UUID  `json:"id"`
	FileID         uuid.UUID  `json:"fileId"`
	FileName       string     `json:"fileName"`
	Token          string     `json:"shareToken"`
	DownloadCount  int        `json:"downloadCount"`
	MaxDownloads   *int       `json:"maxDownloads,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	IsExpired      bool       `json:"isExpired"`
	IsLimitReached bool       `json:"isLimitReached"`
}

// UserShares lists every share on the owner's files, newest first. The file
// name comes from the owning file; if that record is missing the name falls
// back to a truncated file id so the row still renders.
func (s *ViewService) UserShares(ctx context.Context, ownerID uuid.UUID) ([]ShareView, error) {
	files, err := s.files.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []ShareView{}, nil
	}

	nameByID := make(map[uuid.UUID]string, len(files))
	fileIDs := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		nameByID[f.ID] = f.OriginalName
		fileIDs = append(fileIDs, f.ID)
	}

	// One set-membership query instead of a lookup per file.
	shares, err := s.shares.ListByFileIDs(ctx, fileIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]ShareView, 0, len(shares))
	for _, sh := range shares {
		name, ok := nameByID[sh.FileID]
		if !ok || name == "" {
			name = fmt.Sprintf("File_%.8s", sh.FileID.String())
		}
		state := sh.StateAt(now)
		views = append(views, ShareView{
			ID:             sh.ID,
			FileID:         sh.FileID,
			FileName:       name,
			Token:          sh.Token,
			DownloadCount:  sh.DownloadCount,
			MaxDownloads:   sh.MaxDownloads,
			ExpiresAt:      sh.ExpiresAt,
			CreatedAt:      sh.CreatedAt,
			IsExpired:      state == models.ShareExpired,
			IsLimitReached: state == models.ShareExhausted,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

type FileAnalytics struct {
	File            models.File `json:"file"`
	ShareCount      int         `json:"shareCount"`
	TotalDownloads  int         `json:"totalDownloads"`
	ActiveShares    int         `json:"activeShares"`
	ExpiredShares   int         `json:"expiredShares"`
	ExhaustedShares int         `json:"exhaustedShares"`
}

// FileAnalytics joins each owned file with its shares and rolls up download
// totals and state counts for the dashboard.
func (s *ViewService) FileAnalytics(ctx context.Context, ownerID uuid.UUID) ([]FileAnalytics, error) {
	files, err := s.files.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []FileAnalytics{}, nil
	}

	fileIDs := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		fileIDs = append(fileIDs, f.ID)
	}
	shares, err := s.shares.ListByFileIDs(ctx, fileIDs)
	if err != nil {
		return nil, err
	}

	byFile := make(map[uuid.UUID][]models.Share)
	for _, sh := range shares {
		byFile[sh.FileID] = append(byFile[sh.FileID], sh)
	}

	now := time.Now()
	out := make([]FileAnalytics, 0, len(files))
	for _, f := range files {
		fa := FileAnalytics{File: f}
		for _, sh := range byFile[f.ID] {
			fa.ShareCount++
			fa.TotalDownloads += sh.DownloadCount
			switch sh.StateAt(now) {
			case models.ShareExpired:
				fa.ExpiredShares++
			case models.ShareExhausted:
				fa.ExhaustedShares++
			default:
				fa.ActiveShares++
			}
		}
		out = append(out, fa)
	}
	return out, nil
}
