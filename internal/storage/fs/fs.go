// Package fs keeps uploaded post images on the local disk under a media root.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Images are stored under this directory of the media root.
const imageDir = "posts"

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	p := filepath.Clean(rootPath)
	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}
	return &Storage{rootPath: p}, nil
}

func (s *Storage) Root() string {
	return s.rootPath
}

// SaveImage writes data under a fresh random name and returns the path
// relative to the media root, e.g. "posts/<uuid>.png".
func (s *Storage) SaveImage(data io.Reader, extension string) (string, error) {
	extension = strings.ToLower(filepath.Ext("x" + extension))
	relativePath := filepath.ToSlash(filepath.Join(imageDir, uuid.NewString()+extension))
	fullPath := filepath.Join(s.rootPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}
	return relativePath, nil
}

// DeleteFile removes a stored file. A missing file is not an error.
func (s *Storage) DeleteFile(relativePath string) error {
	fullPath, err := s.resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve rejects paths that would leave the media root.
func (s *Storage) resolve(relativePath string) (string, error) {
	fullPath := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	rel, err := filepath.Rel(s.rootPath, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid media path %q", relativePath)
	}
	return fullPath, nil
}
