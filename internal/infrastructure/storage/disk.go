// Package storage implements the file store for uploaded profile pictures on
// the local filesystem. Files live in a single flat directory and are
// addressed by the relative path recorded on the employee record.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const uploadPrefix = "uploads"

// DiskStore stores files under a base directory and hands back paths of the
// form "uploads/<uuid><ext>". Generated names are collision-resistant, so
// concurrent uploads never clobber each other.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// Save writes content to a freshly generated filename, preserving only the
// extension of the client-supplied name, and returns the relative path.
func (s *DiskStore) Save(_ context.Context, originalName string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}

	return uploadPrefix + "/" + name, nil
}

// Remove deletes a stored file by its recorded relative path. A file that is
// already gone is not an error; anything else propagates.
func (s *DiskStore) Remove(_ context.Context, path string) error {
	name := strings.TrimPrefix(path, uploadPrefix+"/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf("remove upload: invalid path %q", path)
	}

	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Dir returns the base directory, used to mount the static file route.
func (s *DiskStore) Dir() string {
	return s.baseDir
}
