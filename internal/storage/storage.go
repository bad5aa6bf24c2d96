// Package storage persists uploaded files on the local filesystem and maps
// stored paths to public URLs.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public URL prefix under which stored files are served.
const URLPrefix = "/storage"

// Store writes and removes files under a root directory. Stored paths are
// always relative to the root and use forward slashes.
type Store struct {
	root string
}

// NewStore returns a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the root directory of the store.
func (s *Store) Root() string {
	return s.root
}

// Save writes the uploaded file under dir with a collision-resistant name
// derived from the current time, a short random suffix and the original
// extension. It returns the stored path relative to the root.
func (s *Store) Save(dir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s_%d_%s%s", strings.TrimSuffix(dir, "s"), time.Now().Unix(), uuid.New().String()[:8], ext)
	rel := filepath.ToSlash(filepath.Join(dir, name))

	abs := filepath.Join(s.root, dir, name)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("write stored file: %w", err)
	}

	return rel, nil
}

// Replace saves the uploaded file first and only then deletes the old one, so
// a failure mid-way never leaves the owner without any stored file. It returns
// the new stored path.
func (s *Store) Replace(dir string, fh *multipart.FileHeader, oldPath string) (string, error) {
	newPath, err := s.Save(dir, fh)
	if err != nil {
		return "", err
	}
	if oldPath != "" {
		_ = s.Delete(oldPath)
	}
	return newPath, nil
}

// Delete removes a stored file. A missing file is not an error.
func (s *Store) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete stored file: %w", err)
	}
	return nil
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(rel string) bool {
	if rel == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil
}

// URL maps a stored path to its public URL.
func URL(rel string) string {
	if rel == "" {
		return ""
	}
	return URLPrefix + "/" + rel
}
