package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rushi-mungse/product-microservice/internal/config"
	"go.uber.org/zap"
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores images as objects in a bucket.
type S3Uploader struct {
	client     objectPutter
	bucket     string
	prefix     string
	endpoint   string
	cloudFront string
	log        *zap.Logger
}

func NewS3Uploader(ctx context.Context, cfg *config.Config, log *zap.Logger) (*S3Uploader, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" || cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Uploader{
		client:     client,
		bucket:     cfg.AWSS3Bucket,
		prefix:     cfg.AWSS3Prefix,
		endpoint:   cfg.AWSEndpoint,
		cloudFront: cfg.AWSCloudFrontDomain,
		log:        log,
	}, nil
}

// Upload puts the file under <prefix><file name> and removes the local
// copy whatever the outcome.
func (u *S3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	defer removeLocal(u.log, localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := u.prefix + filepath.Base(localPath)
	in := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("s3 put object %s: %w", key, err)
	}

	u.log.Debug("image uploaded", zap.String("store", "s3"), zap.String("key", key))
	return u.objectURL(key), nil
}

func (u *S3Uploader) objectURL(key string) string {
	switch {
	case u.cloudFront != "":
		return fmt.Sprintf("https://%s/%s", strings.TrimRight(u.cloudFront, "/"), key)
	case u.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.endpoint, "/"), u.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
	}
}
