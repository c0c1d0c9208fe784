// Package storage implements blob storage for photo attachments.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"quarters/internal/shared/config"
)

// LocalStorage writes blobs under a base directory on the local filesystem.
// Stored paths are relative to the base so the records survive a move of
// the storage root.
type LocalStorage struct {
	basePath      string
	publicBaseURL string
}

func NewLocalStorage(cfg *config.StorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath:      cfg.BasePath,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Save streams content to a new file under prefix. The stored name carries a
// random component so concurrent uploads of the same filename never collide.
func (s *LocalStorage) Save(reader io.Reader, filename, prefix string) (string, error) {
	cleanPrefix := filepath.Clean("/" + prefix)
	relPath := filepath.Join(cleanPrefix, fmt.Sprintf("%s-%s", uuid.NewString()[:8], filepath.Base(filename)))
	fullPath := filepath.Join(s.basePath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return strings.TrimPrefix(filepath.ToSlash(relPath), "/"), nil
}

func (s *LocalStorage) Delete(path string) error {
	fullPath := filepath.Join(s.basePath, filepath.Clean("/"+path))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URLFor maps a stored path to its client-reachable URL.
func (s *LocalStorage) URLFor(path string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(path, "/")
}

// BasePath exposes the storage root for static file serving.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}
