package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
)

const uploadedFileKey = "uploadedFile"

// formOverhead is the room left for the text fields of a multipart body on
// top of the file size limit.
const formOverhead = 1 << 20

// UploadedFile is a multipart file saved to local disk for the duration of
// the request.
type UploadedFile struct {
	Path         string
	OriginalName string
	Size         int64
}

// SingleFile stores the multipart part named field under dir and exposes it
// through UploadedFileFrom. Files above maxBytes are rejected with 413
// before the handler runs. A request without the part is passed through so
// the handler decides whether the file is mandatory. The local copy is
// removed once the request completes.
func SingleFile(field, dir string, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverhead)

		header, err := c.FormFile(field)
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				_ = c.Error(apperrors.RequestTooLarge("File too large"))
				c.Abort()
			case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
				c.Next()
			default:
				_ = c.Error(apperrors.BadRequest("Invalid multipart form"))
				c.Abort()
			}
			return
		}
		if header.Size > maxBytes {
			_ = c.Error(apperrors.RequestTooLarge("File too large"))
			c.Abort()
			return
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = c.Error(fmt.Errorf("create upload dir: %w", err))
			c.Abort()
			return
		}
		path := filepath.Join(dir, tempName(header.Filename))
		if err := c.SaveUploadedFile(header, path); err != nil {
			_ = c.Error(fmt.Errorf("save uploaded file: %w", err))
			c.Abort()
			return
		}
		defer os.Remove(path)

		c.Set(uploadedFileKey, &UploadedFile{
			Path:         path,
			OriginalName: header.Filename,
			Size:         header.Size,
		})
		c.Next()
	}
}

// UploadedFileFrom returns the file saved by SingleFile, if one was sent.
func UploadedFileFrom(c *gin.Context) (*UploadedFile, bool) {
	v, ok := c.Get(uploadedFileKey)
	if !ok {
		return nil, false
	}
	f, ok := v.(*UploadedFile)
	return f, ok && f != nil
}

// tempName keeps the extension and a slug of the client's file name behind a
// unique prefix.
func tempName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
	if base != "" {
		name += "-" + base
	}
	return name + ext
}
