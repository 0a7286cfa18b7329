package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rushi-mungse/product-microservice/internal/config"
	"go.uber.org/zap"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader stores images in a Cloudinary folder.
type CloudinaryUploader struct {
	api    cloudinaryAPI
	folder string
	log    *zap.Logger
}

func NewCloudinaryUploader(cfg *config.Config, log *zap.Logger) (*CloudinaryUploader, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{api: &cld.Upload, folder: cfg.CloudinaryFolder, log: log}, nil
}

// Upload sends the file and removes the local copy whatever the outcome.
func (u *CloudinaryUploader) Upload(ctx context.Context, localPath string) (string, error) {
	defer removeLocal(u.log, localPath)

	res, err := u.api.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty url in response")
	}

	u.log.Debug("image uploaded", zap.String("store", "cloudinary"), zap.String("public_id", res.PublicID))
	return res.SecureURL, nil
}
