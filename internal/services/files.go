package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rs/zerolog"
)

const presignTTL = 15 * time.Minute

// FileStorage is the object store holding asset files. R2Store implements
// it.
type FileStorage interface {
	PresignPut(ctx context.Context, key string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

var ErrUploadMissing = errors.New("uploaded file not found in storage")

type PresignedUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PresignedDownload struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Files issues presigned URLs for asset files. Keys are scoped by user and
// asset so a client cannot complete an upload into someone else's asset.
type Files struct {
	vault   *Vault
	storage FileStorage
	log     zerolog.Logger
	now     func() time.Time
}

// NewFiles returns the file service; storage may be nil when no bucket is
// configured.
func NewFiles(vault *Vault, storage FileStorage, l zerolog.Logger) *Files {
	return &Files{vault: vault, storage: storage, log: l, now: time.Now}
}

func fileKey(userID, assetID uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return fmt.Sprintf("users/%s/assets/%s/%s_%s", userID, assetID, uuid.NewString(), name)
}

func keyPrefix(userID, assetID uuid.UUID) string {
	return fmt.Sprintf("users/%s/assets/%s/", userID, assetID)
}

func (f *Files) PresignUpload(ctx context.Context, userID, assetID uuid.UUID, filename string) (PresignedUpload, error) {
	if f.storage == nil {
		return PresignedUpload{}, ErrStorageDisabled
	}
	if _, err := f.vault.GetAsset(ctx, userID, assetID); err != nil {
		return PresignedUpload{}, err
	}
	key := fileKey(userID, assetID, filename)
	url, err := f.storage.PresignPut(ctx, key, presignTTL)
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("presign upload: %w", err)
	}
	return PresignedUpload{Key: key, URL: url, ExpiresAt: f.now().Add(presignTTL)}, nil
}

// CompleteUpload records key on the asset once the object is in the
// bucket. A file it replaces is removed.
func (f *Files) CompleteUpload(ctx context.Context, userID, assetID uuid.UUID, key string) (models.DigitalAsset, error) {
	if f.storage == nil {
		return models.DigitalAsset{}, ErrStorageDisabled
	}
	if !strings.HasPrefix(key, keyPrefix(userID, assetID)) {
		return models.DigitalAsset{}, invalid("key", "does not belong to this asset")
	}
	prev, err := f.vault.GetAsset(ctx, userID, assetID)
	if err != nil {
		return models.DigitalAsset{}, err
	}
	ok, err := f.storage.Exists(ctx, key)
	if err != nil {
		return models.DigitalAsset{}, fmt.Errorf("check upload: %w", err)
	}
	if !ok {
		return models.DigitalAsset{}, ErrUploadMissing
	}
	a, err := f.vault.SetFilePath(ctx, userID, assetID, key)
	if err != nil {
		return models.DigitalAsset{}, err
	}
	if prev.FilePath != nil && *prev.FilePath != key {
		if err := f.Discard(ctx, prev); err != nil {
			f.log.Warn().Err(err).Str("asset", assetID.String()).Str("key", *prev.FilePath).Msg("discard replaced asset file")
		}
	}
	return a, nil
}

func (f *Files) PresignDownload(ctx context.Context, userID, assetID uuid.UUID) (PresignedDownload, error) {
	if f.storage == nil {
		return PresignedDownload{}, ErrStorageDisabled
	}
	a, err := f.vault.GetAsset(ctx, userID, assetID)
	if err != nil {
		return PresignedDownload{}, err
	}
	if a.FilePath == nil || !strings.HasPrefix(*a.FilePath, keyPrefix(userID, assetID)) {
		return PresignedDownload{}, ErrUploadMissing
	}
	url, err := f.storage.PresignGet(ctx, *a.FilePath, presignTTL)
	if err != nil {
		return PresignedDownload{}, fmt.Errorf("presign download: %w", err)
	}
	return PresignedDownload{URL: url, ExpiresAt: f.now().Add(presignTTL)}, nil
}

// Discard removes the stored object of a deleted or replaced asset. Paths
// that were not uploaded through this service are left alone.
func (f *Files) Discard(ctx context.Context, a models.DigitalAsset) error {
	if f.storage == nil || a.FilePath == nil || !strings.HasPrefix(*a.FilePath, keyPrefix(a.UserID, a.ID)) {
		return nil
	}
	return f.storage.Delete(ctx, *a.FilePath)
}
