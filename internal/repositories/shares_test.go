package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestConsumeIfActiveConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShareRepository(db)
	now := time.Now()

	// The whole gate lives in the WHERE clause: token match, unexpired,
	// below limit. One statement, no read-modify-write window.
	mock.ExpectExec(`UPDATE "shares" SET .+ WHERE token = .+ AND \(expires_at IS NULL OR expires_at > .+\) AND \(max_downloads IS NULL OR download_count < max_downloads\)`).
		WithArgs(sqlmock.AnyArg(), "tok", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ConsumeIfActive(context.Background(), "tok", now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeIfActiveNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShareRepository(db)

	mock.ExpectExec(`UPDATE "shares" SET`).
		WithArgs(sqlmock.AnyArg(), "tok", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.ConsumeIfActive(context.Background(), "tok", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordDownloadIncrements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShareRepository(db)

	mock.ExpectExec(`UPDATE "shares" SET .*download_count.* WHERE token = `).
		WithArgs(sqlmock.AnyArg(), "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RecordDownload(context.Background(), "tok", time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordDownloadUnknownToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShareRepository(db)

	mock.ExpectExec(`UPDATE "shares" SET`).
		WithArgs(sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecordDownload(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByTokenNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShareRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "shares" WHERE token = `).
		WithArgs("missing", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file_id", "token", "download_count"}))

	_, err := repo.GetByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByFileIDReportsCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShareRepository(db)
	fileID := uuid.New()

	mock.ExpectExec(`DELETE FROM "shares" WHERE file_id = `).
		WithArgs(fileID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByFileID(context.Background(), fileID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
