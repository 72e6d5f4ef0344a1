package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/priyan-sh/dropgate/internal/blob"
	"github.com/priyan-sh/dropgate/internal/metrics"
	"github.com/priyan-sh/dropgate/internal/models"
	"github.com/priyan-sh/dropgate/internal/repositories"
)

// FileService owns file metadata and its blob. Share cleanup on delete goes
// through the share engine's cascade hook.
type FileService struct {
	files  repositories.FileRepository
	blobs  blob.Store
	shares *ShareService
}

func NewFileService(files repositories.FileRepository, blobs blob.Store, shares *ShareService) *FileService {
	return &FileService{files: files, blobs: blobs, shares: shares}
}

// Upload writes the blob first and only then creates metadata, so a failed
// blob write can never leave a file record pointing at nothing. The reverse
// failure (metadata write after a successful blob write) leaves an orphaned
// blob, which is logged for reconciliation rather than rolled back.
func (s *FileService) Upload(ctx context.Context, ownerID uuid.UUID, originalName, mimeType string, data []byte) (*models.File, error) {
	id := uuid.New()

	if err := s.blobs.Put(ctx, id.String(), data, mimeType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	file := models.File{
		ID:           id,
		OwnerID:      ownerID,
		OriginalName: originalName,
		Size:         int64(len(data)),
		MimeType:     mimeType,
	}
	if err := s.files.Create(ctx, &file); err != nil {
		log.Printf("orphaned blob %s: metadata write failed after upload: %v", id, err)
		return nil, fmt.Errorf("create file record: %w", err)
	}

	metrics.UploadsTotal.Inc()
	metrics.UploadBytesTotal.Add(float64(file.Size))
	return &file, nil
}

func (s *FileService) Get(ctx context.Context, fileID uuid.UUID) (*models.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *FileService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.File, error) {
	return s.files.ListByOwner(ctx, ownerID)
}

// Delete removes the blob, then the file record, then cascades to shares.
// If a later step fails after the blob is gone, the dangling record
// surfaces as not-found on subsequent downloads rather than a broken URL.
func (s *FileService) Delete(ctx context.Context, fileID, requesterID uuid.UUID) error {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if file.OwnerID != requesterID {
		return ErrAccessDenied
	}

	if err := s.blobs.Delete(ctx, file.ID.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		log.Printf("warning: blob %s deleted but file record remains: %v", fileID, err)
		return fmt.Errorf("delete file record: %w", err)
	}

	s.shares.CascadeDeleteForFile(ctx, fileID)
	return nil
}
