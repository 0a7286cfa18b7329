// Package storage uploads product images to the configured asset store and
// returns the durable URL the catalog keeps.
package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/rushi-mungse/product-microservice/internal/config"
	"go.uber.org/zap"
)

// Uploader moves a local file to durable storage.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// New returns the uploader selected by ASSET_STORE.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Uploader, error) {
	switch cfg.AssetStore {
	case "cloudinary":
		u, err := NewCloudinaryUploader(cfg, log)
		if err != nil {
			return nil, err
		}
		return u, nil
	case "s3":
		u, err := NewS3Uploader(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unsupported asset store %q", cfg.AssetStore)
	}
}

// removeLocal deletes the temp file once it has been handed to the store.
func removeLocal(log *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove uploaded temp file", zap.String("path", path), zap.Error(err))
	}
}
