// Package storage implements report image persistence on top of gocloud.dev blob buckets.
package storage

import (
	"context"
	"log/slog"
	"strings"

	"alerte/config"
	"alerte/internal/domain/lifecycle"
	"alerte/internal/domain/service"
	"alerte/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the bucket schemes used across environments:
	// file:// for development, gs:// for production.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

// blobImageStore implements service.ImageStore on a gocloud.dev bucket.
type blobImageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params defines the dependencies for the image store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobImageStore opens the configured bucket and wires its shutdown
// into the application lifecycle.
func NewBlobImageStore(params Params) (service.ImageStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be configured")
	}

	openCtx, cancel := context.WithTimeout(params.Ctx, lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobImageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Save writes the image bytes under the given key and returns the public URL.
func (s *blobImageStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open blob writer for %s", key)
	}

	if _, err := writer.Write(data); err != nil {
		// Close aborts the partial write; the key never becomes visible.
		_ = writer.Close()

		return "", errors.Wrapf(err, "failed to write blob %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to commit blob %s", key)
	}

	url := s.publicBaseURL + "/" + key

	s.logger.Debug("Report image stored",
		slog.String("key", key),
		slog.Int("bytes", len(data)),
	)

	return url, nil
}
