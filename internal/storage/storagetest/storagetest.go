// Package storagetest provides an Uploader that never leaves the process.
package storagetest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Uploader records uploaded paths and hands out numbered URLs.
type Uploader struct {
	mu    sync.Mutex
	Paths []string
	// Contents holds what each file contained when it was uploaded.
	Contents []string
	Err      error
}

func (u *Uploader) Upload(_ context.Context, localPath string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return "", u.Err
	}
	b, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}
	u.Paths = append(u.Paths, localPath)
	u.Contents = append(u.Contents, string(b))
	return fmt.Sprintf("https://assets.example.com/%d/%s", len(u.Paths), filepath.Base(localPath)), nil
}

// Count returns the number of successful uploads.
func (u *Uploader) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.Paths)
}
