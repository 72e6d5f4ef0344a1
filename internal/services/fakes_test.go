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

// -------- in-memory fakes --------

type memFileRepo struct {
	files     map[uuid.UUID]models.File
	createErr error
	getErr    error
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{files: make(map[uuid.UUID]models.File)}
}

func (r *memFileRepo) Create(ctx context.Context, f *models.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	r.files[f.ID] = *f
	return nil
}

func (r *memFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	f, ok := r.files[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &f, nil
}

func (r *memFileRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.File, error) {
	var out []models.File
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.files, id)
	return nil
}

type memShareRepo struct {
	shares     map[string]models.Share // by token
	recordErr  error
	consumeErr error
	deleteErr  error
}

func newMemShareRepo() *memShareRepo {
	return &memShareRepo{shares: make(map[string]models.Share)}
}

func (r *memShareRepo) Create(ctx context.Context, s *models.Share) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.shares[s.Token] = *s
	return nil
}

func (r *memShareRepo) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	s, ok := r.shares[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r *memShareRepo) ListByFileIDs(ctx context.Context, fileIDs []uuid.UUID) ([]models.Share, error) {
	ids := make(map[uuid.UUID]bool, len(fileIDs))
	for _, id := range fileIDs {
		ids[id] = true
	}
	var out []models.Share
	for _, s := range r.shares {
		if ids[s.FileID] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memShareRepo) RecordDownload(ctx context.Context, token string, at time.Time) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	s, ok := r.shares[token]
	if !ok {
		return repositories.ErrNotFound
	}
	s.DownloadCount++
	s.LastDownloadAt = &at
	r.shares[token] = s
	return nil
}

func (r *memShareRepo) ConsumeIfActive(ctx context.Context, token string, at time.Time) (bool, error) {
	if r.consumeErr != nil {
		return false, r.consumeErr
	}
	s, ok := r.shares[token]
	if !ok {
		return false, nil
	}
	if s.ExpiresAt != nil && !at.Before(*s.ExpiresAt) {
		return false, nil
	}
	if s.MaxDownloads != nil && s.DownloadCount >= *s.MaxDownloads {
		return false, nil
	}
	s.DownloadCount++
	s.LastDownloadAt = &at
	r.shares[token] = s
	return true, nil
}

func (r *memShareRepo) DeleteByToken(ctx context.Context, token string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.shares, token)
	return nil
}

func (r *memShareRepo) DeleteByFileID(ctx context.Context, fileID uuid.UUID) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for token, s := range r.shares {
		if s.FileID == fileID {
			delete(r.shares, token)
			n++
		}
	}
	return n, nil
}

type memBlobStore struct {
	objects   map[string][]byte
	putErr    error
	deleteErr error
	urlErr    error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[string][]byte)}
}

func (b *memBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[key] = data
	return nil
}

func (b *memBlobStore) DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if b.urlErr != nil {
		return "", b.urlErr
	}
	return fmt.Sprintf("https://blobs.test/%s?sig=stub", key), nil
}

func (b *memBlobStore) Delete(ctx context.Context, key string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	delete(b.objects, key)
	return nil
}

func (b *memBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := b.objects[key]
	return ok, nil
}

// -------- helpers --------

type env struct {
	files  *memFileRepo
	shares *memShareRepo
	blobs  *memBlobStore

	fileSvc  *FileService
	shareSvc *ShareService
	viewSvc  *ViewService
}

func newEnv(strictQuota bool) *env {
	files := newMemFileRepo()
	shares := newMemShareRepo()
	blobs := newMemBlobStore()

	shareSvc := NewShareService(shares, files, blobs, "http://localhost:8080", strictQuota)
	return &env{
		files:    files,
		shares:   shares,
		blobs:    blobs,
		fileSvc:  NewFileService(files, blobs, shareSvc),
		shareSvc: shareSvc,
		viewSvc:  NewViewService(files, shares),
	}
}

func intPtr(n int) *int              { return &n }
func timePtr(t time.Time) *time.Time { return &t }
