package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects   map[string]bool
	deleted   []string
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]bool{}}
}

func (s *fakeStorage) PresignPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example/put/" + key, nil
}

func (s *fakeStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example/get/" + key, nil
}

func (s *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	return s.objects[key], nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func TestFiles_UploadFlow(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	files := NewFiles(f.vault, storage, zerolog.Nop())
	a := f.asset(t, "Voice memo", models.AssetVoiceNote)

	up, err := files.PresignUpload(f.ctx, f.user, a.ID, "../../memo.m4a")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.Key, keyPrefix(f.user, a.ID)))
	assert.True(t, strings.HasSuffix(up.Key, "_memo.m4a"))

	_, err = files.CompleteUpload(f.ctx, f.user, a.ID, up.Key)
	assert.ErrorIs(t, err, ErrUploadMissing)

	storage.objects[up.Key] = true
	got, err := files.CompleteUpload(f.ctx, f.user, a.ID, up.Key)
	require.NoError(t, err)
	require.NotNil(t, got.FilePath)
	assert.Equal(t, up.Key, *got.FilePath)

	dl, err := files.PresignDownload(f.ctx, f.user, a.ID)
	require.NoError(t, err)
	assert.Contains(t, dl.URL, up.Key)

	// replacing the file removes the old object
	next, err := files.PresignUpload(f.ctx, f.user, a.ID, "memo2.m4a")
	require.NoError(t, err)
	storage.objects[next.Key] = true
	_, err = files.CompleteUpload(f.ctx, f.user, a.ID, next.Key)
	require.NoError(t, err)
	assert.Equal(t, []string{up.Key}, storage.deleted)
}

func TestFiles_RejectsForeignKeys(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	files := NewFiles(f.vault, storage, zerolog.Nop())
	a := f.asset(t, "Voice memo", models.AssetVoiceNote)

	foreign := keyPrefix(uuid.New(), a.ID) + "x"
	storage.objects[foreign] = true
	_, err := files.CompleteUpload(f.ctx, f.user, a.ID, foreign)
	assert.True(t, IsValidation(err))

	_, err = files.PresignDownload(f.ctx, f.user, a.ID)
	assert.ErrorIs(t, err, ErrUploadMissing)
}

func TestFiles_StorageDisabled(t *testing.T) {
	f := newFixture(t)
	files := NewFiles(f.vault, nil, zerolog.Nop())

	_, err := files.PresignUpload(f.ctx, f.user, uuid.New(), "a.jpg")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.NoError(t, files.Discard(f.ctx, models.DigitalAsset{}))
}

func TestFiles_ReplaceLogsFailedDiscard(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	var logs bytes.Buffer
	files := NewFiles(f.vault, storage, zerolog.New(&logs))
	a := f.asset(t, "Voice memo", models.AssetVoiceNote)

	first, err := files.PresignUpload(f.ctx, f.user, a.ID, "memo.m4a")
	require.NoError(t, err)
	storage.objects[first.Key] = true
	_, err = files.CompleteUpload(f.ctx, f.user, a.ID, first.Key)
	require.NoError(t, err)

	storage.deleteErr = errors.New("bucket unavailable")
	next, err := files.PresignUpload(f.ctx, f.user, a.ID, "memo2.m4a")
	require.NoError(t, err)
	storage.objects[next.Key] = true
	got, err := files.CompleteUpload(f.ctx, f.user, a.ID, next.Key)
	require.NoError(t, err, "the new file is recorded even when the old one cannot be removed")
	assert.Equal(t, next.Key, *got.FilePath)

	assert.Contains(t, logs.String(), "bucket unavailable")
	assert.Contains(t, logs.String(), first.Key)
}
