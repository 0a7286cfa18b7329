package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rushi-mungse/product-microservice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func assertRemoved(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "%s should have been removed", path)
}

type fakeCloudinary struct {
	file   interface{}
	params uploader.UploadParams
	res    *uploader.UploadResult
	err    error
}

func (f *fakeCloudinary) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.file, f.params = file, params
	return f.res, f.err
}

func TestCloudinaryUpload(t *testing.T) {
	path := tempFile(t, "1700-abc-pizza.png", "img")
	fake := &fakeCloudinary{res: &uploader.UploadResult{
		PublicID:  "products/pizza",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/products/pizza.png",
	}}
	u := &CloudinaryUploader{api: fake, folder: "products", log: zap.NewNop()}

	url, err := u.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/products/pizza.png", url)
	assert.Equal(t, path, fake.file)
	assert.Equal(t, "products", fake.params.Folder)
	assert.Equal(t, "auto", fake.params.ResourceType)
	assertRemoved(t, path)
}

func TestCloudinaryUpload_Failures(t *testing.T) {
	cases := map[string]*fakeCloudinary{
		"transport": {err: errors.New("dial tcp: timeout")},
		"api error": {res: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}},
		"empty url": {res: &uploader.UploadResult{}},
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			path := tempFile(t, "x.png", "img")
			u := &CloudinaryUploader{api: fake, log: zap.NewNop()}
			_, err := u.Upload(context.Background(), path)
			assert.Error(t, err)
			assertRemoved(t, path)
		})
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Upload(t *testing.T) {
	path := tempFile(t, "1700-abc-pizza.png", "img-bytes")
	fake := &fakePutter{}
	u := &S3Uploader{client: fake, bucket: "catalog", prefix: "products/", log: zap.NewNop()}

	url, err := u.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.s3.amazonaws.com/products/1700-abc-pizza.png", url)
	assert.Equal(t, "catalog", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "products/1700-abc-pizza.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "img-bytes", fake.body)
	assertRemoved(t, path)
}

func TestS3Upload_Error(t *testing.T) {
	path := tempFile(t, "x.jpg", "img")
	u := &S3Uploader{client: &fakePutter{err: errors.New("access denied")}, bucket: "catalog", log: zap.NewNop()}

	_, err := u.Upload(context.Background(), path)
	assert.ErrorContains(t, err, "access denied")
	assertRemoved(t, path)
}

func TestS3ObjectURL(t *testing.T) {
	u := &S3Uploader{bucket: "catalog"}
	assert.Equal(t, "https://catalog.s3.amazonaws.com/k.png", u.objectURL("k.png"))

	u.endpoint = "http://localhost:4566/"
	assert.Equal(t, "http://localhost:4566/catalog/k.png", u.objectURL("k.png"))

	u.cloudFront = "d111.cloudfront.net"
	assert.Equal(t, "https://d111.cloudfront.net/k.png", u.objectURL("k.png"))
}

func TestNew(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))

	cfg := &config.Config{
		AssetStore:          "cloudinary",
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
		AWSRegion:           "us-east-1",
		AWSAccessKeyID:      "test",
		AWSSecretAccessKey:  "test",
		AWSS3Bucket:         "catalog",
	}
	u, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &CloudinaryUploader{}, u)

	cfg.AssetStore = "s3"
	u, err = New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &S3Uploader{}, u)

	cfg.AssetStore = "ftp"
	_, err = New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewCloudinaryUploader_MissingCredentials(t *testing.T) {
	_, err := NewCloudinaryUploader(&config.Config{}, zap.NewNop())
	assert.Error(t, err)
}
