package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/priyan-sh/dropgate/internal/models"
	"gorm.io/gorm"
)

type ShareRepository interface {
	Create(ctx context.Context, s *models.Share) error
	GetByToken(ctx context.Context, token string) (*models.Share, error)
	ListByFileIDs(ctx context.Context, fileIDs []uuid.UUID) ([]models.Share, error)

	// RecordDownload unconditionally bumps the counter and stamps the
	// last-download time. Used on the lenient consume path where the gate
	// check has already passed.
	RecordDownload(ctx context.Context, token string, at time.Time) error

	// ConsumeIfActive bumps the counter only while the share is still
	// active, as one conditional UPDATE. Returns false when the share is
	// missing, expired or already at its limit.
	ConsumeIfActive(ctx context.Context, token string, at time.Time) (bool, error)

	DeleteByToken(ctx context.Context, token string) error
	DeleteByFileID(ctx context.Context, fileID uuid.UUID) (int64, error)
}

type gormShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &gormShareRepository{db: db}
}

func (r *gormShareRepository) Create(ctx context.Context, s *models.Share) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *gormShareRepository) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	var share models.Share
	if err := r.db.WithContext(ctx).First(&share, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &share, nil
}

func (r *gormShareRepository) ListByFileIDs(ctx context.Context, fileIDs []uuid.UUID) ([]models.Share, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	var shares []models.Share
	err := r.db.WithContext(ctx).
		Where("file_id IN ?", fileIDs).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *gormShareRepository) RecordDownload(ctx context.Context, token string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Share{}).
		Where("token = ?", token).
		Updates(map[string]any{
			"download_count":   gorm.Expr("download_count + 1"),
			"last_download_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormShareRepository) ConsumeIfActive(ctx context.Context, token string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Share{}).
		Where("token = ?", token).
		Where("expires_at IS NULL OR expires_at > ?", at).
		Where("max_downloads IS NULL OR download_count < max_downloads").
		Updates(map[string]any{
			"download_count":   gorm.Expr("download_count + 1"),
			"last_download_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormShareRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.Share{}, "token = ?", token).Error
}

func (r *gormShareRepository) DeleteByFileID(ctx context.Context, fileID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Share{}, "file_id = ?", fileID)
	return res.RowsAffected, res.Error
}
