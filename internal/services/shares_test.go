package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFixture(t *testing.T, e *env, owner uuid.UUID) uuid.UUID {
	t.Helper()
	file, err := e.fileSvc.Upload(context.Background(), owner, "a.txt", "text/plain", []byte("0123456789"))
	require.NoError(t, err)
	return file.ID
}

func TestCreateLink(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, intPtr(5))
	require.NoError(t, err)

	assert.NotEmpty(t, created.Share.Token)
	assert.Equal(t, "http://localhost:8080/share/"+created.Share.Token, created.ShareURL)
	assert.Equal(t, 0, created.Share.DownloadCount)
	assert.Equal(t, 5, *created.Share.MaxDownloads)
}

func TestCreateLinkOwnership(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	stranger := uuid.New()
	fileID := uploadFixture(t, e, owner)

	_, err := e.shareSvc.CreateLink(context.Background(), fileID, stranger, nil, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, e.shares.shares, "no share may be created on a denied request")

	_, err = e.shareSvc.CreateLink(context.Background(), uuid.New(), owner, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateUnknownToken(t *testing.T) {
	e := newEnv(false)

	v := e.shareSvc.Validate(context.Background(), "no-such-token")
	assert.False(t, v.Active)
	assert.Equal(t, ReasonNotFound, v.Reason)
}

func TestValidateExpired(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, timePtr(time.Now().Add(-time.Hour)), nil)
	require.NoError(t, err)

	v := e.shareSvc.Validate(context.Background(), created.Share.Token)
	assert.False(t, v.Active)
	assert.Equal(t, ReasonExpired, v.Reason)
	assert.Equal(t, 0, v.Share.DownloadCount, "expired even with zero downloads")
}

func TestResolveRoundTrip(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, nil)
	require.NoError(t, err)

	resolved, v := e.shareSvc.Resolve(context.Background(), created.Share.Token)
	require.NotNil(t, resolved)
	assert.True(t, v.Active)
	assert.Equal(t, "a.txt", resolved.File.OriginalName)
	assert.Equal(t, int64(10), resolved.File.Size)
	assert.Equal(t, "text/plain", resolved.File.MimeType)
	assert.Equal(t, 0, resolved.Share.DownloadCount)
}

func TestResolveDanglingFile(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, nil)
	require.NoError(t, err)

	// File record vanishes out from under the share.
	require.NoError(t, e.files.Delete(context.Background(), fileID))

	resolved, v := e.shareSvc.Resolve(context.Background(), created.Share.Token)
	assert.Nil(t, resolved)
	assert.Equal(t, ReasonNotFound, v.Reason)
}

func TestConsumeDownloadQuota(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, intPtr(3))
	require.NoError(t, err)
	token := created.Share.Token

	for i := 1; i <= 3; i++ {
		url, v, err := e.shareSvc.ConsumeDownload(context.Background(), token)
		require.NoError(t, err)
		require.NotEmpty(t, url, "download %d should succeed", i)
		assert.True(t, v.Active)

		share, err := e.shares.GetByToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, i, share.DownloadCount)
		assert.NotNil(t, share.LastDownloadAt)
	}

	url, v, err := e.shareSvc.ConsumeDownload(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, ReasonLimitReached, v.Reason)
}

func TestConsumeDownloadSingleUse(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, intPtr(1))
	require.NoError(t, err)
	token := created.Share.Token

	url, _, err := e.shareSvc.ConsumeDownload(context.Background(), token)
	require.NoError(t, err)
	require.NotEmpty(t, url)

	stats, err := e.shareSvc.Stats(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DownloadCount)
	assert.True(t, stats.IsLimitReached)
	assert.False(t, stats.IsActive)

	url, v, err := e.shareSvc.ConsumeDownload(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, ReasonLimitReached, v.Reason)
}

func TestConsumeDownloadFailOpenTally(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, intPtr(5))
	require.NoError(t, err)
	token := created.Share.Token

	// The counter write breaks; the recipient must still get a URL.
	e.shares.recordErr = errors.New("write timeout")

	url, v, err := e.shareSvc.ConsumeDownload(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.True(t, v.Active)

	share, err := e.shares.GetByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 0, share.DownloadCount, "failed increment under-counts, never blocks")
}

func TestConsumeDownloadMissingBlob(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, nil)
	require.NoError(t, err)

	// Blob deleted between the gate check and the URL materializing.
	delete(e.blobs.objects, fileID.String())

	url, v, err := e.shareSvc.ConsumeDownload(context.Background(), created.Share.Token)
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, ReasonNotFound, v.Reason)
}

func TestConsumeDownloadStrictQuota(t *testing.T) {
	e := newEnv(true)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, intPtr(1))
	require.NoError(t, err)
	token := created.Share.Token

	url, v, err := e.shareSvc.ConsumeDownload(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.True(t, v.Active)

	url, v, err = e.shareSvc.ConsumeDownload(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, ReasonLimitReached, v.Reason)
}

func TestConsumeDownloadStrictExpired(t *testing.T) {
	e := newEnv(true)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, timePtr(time.Now().Add(-time.Minute)), nil)
	require.NoError(t, err)

	url, v, err := e.shareSvc.ConsumeDownload(context.Background(), created.Share.Token)
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, ReasonExpired, v.Reason)

	share, err := e.shares.GetByToken(context.Background(), created.Share.Token)
	require.NoError(t, err)
	assert.Equal(t, 0, share.DownloadCount)
}

func TestConsumeDownloadStrictGateFailureIsClosed(t *testing.T) {
	e := newEnv(true)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, nil)
	require.NoError(t, err)

	e.shares.consumeErr = errors.New("db down")

	url, _, err := e.shareSvc.ConsumeDownload(context.Background(), created.Share.Token)
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestStatsExpiredShare(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, timePtr(time.Now().Add(-time.Hour)), nil)
	require.NoError(t, err)

	stats, err := e.shareSvc.Stats(context.Background(), created.Share.Token)
	require.NoError(t, err)
	assert.True(t, stats.IsExpired)
	assert.False(t, stats.IsActive)
	assert.False(t, stats.IsLimitReached)
	assert.Equal(t, 0, stats.DownloadCount)
}

func TestStatsUnknownToken(t *testing.T) {
	e := newEnv(false)
	_, err := e.shareSvc.Stats(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteShareOwnership(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	stranger := uuid.New()
	fileID := uploadFixture(t, e, owner)

	created, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, nil)
	require.NoError(t, err)
	token := created.Share.Token

	err = e.shareSvc.Delete(context.Background(), token, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.True(t, e.shareSvc.Validate(context.Background(), token).Active, "denied delete must not change state")

	require.NoError(t, e.shareSvc.Delete(context.Background(), token, owner))
	assert.Equal(t, ReasonNotFound, e.shareSvc.Validate(context.Background(), token).Reason)
}

func TestDeleteShareUnknownToken(t *testing.T) {
	e := newEnv(false)
	err := e.shareSvc.Delete(context.Background(), "missing", uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCascadeDeleteForFile(t *testing.T) {
	e := newEnv(false)
	owner := uuid.New()
	fileID := uploadFixture(t, e, owner)
	otherID := uploadFixture(t, e, owner)

	first, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, nil)
	require.NoError(t, err)
	second, err := e.shareSvc.CreateLink(context.Background(), fileID, owner, nil, intPtr(2))
	require.NoError(t, err)
	kept, err := e.shareSvc.CreateLink(context.Background(), otherID, owner, nil, nil)
	require.NoError(t, err)

	e.shareSvc.CascadeDeleteForFile(context.Background(), fileID)

	assert.Equal(t, ReasonNotFound, e.shareSvc.Validate(context.Background(), first.Share.Token).Reason)
	assert.Equal(t, ReasonNotFound, e.shareSvc.Validate(context.Background(), second.Share.Token).Reason)
	assert.True(t, e.shareSvc.Validate(context.Background(), kept.Share.Token).Active, "shares of other files survive")
}

func TestCascadeDeleteFailureIsSwallowed(t *testing.T) {
	e := newEnv(false)
	e.shares.deleteErr = errors.New("partial outage")

	// Must not panic or propagate; the caller's file delete already happened.
	e.shareSvc.CascadeDeleteForFile(context.Background(), uuid.New())
}
