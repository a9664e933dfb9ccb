// Package storage keeps uploaded images on local disk, the way the platform
// serves them back under /uploads/.
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes is the per-file size cap for uploads.
const MaxUploadBytes = 5 << 20 // 5 MiB

// DiskStore writes uploaded files into a single directory with unique,
// timestamped names.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures the upload directory exists and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams r to disk under a generated name and returns that name.
// The original filename only contributes its extension.
func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	name := uniqueName(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes)); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// uniqueName builds photo-<timestamp>-<random><ext>, sanitising the extension.
func uniqueName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return fmt.Sprintf("photo-%d-%09d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}
