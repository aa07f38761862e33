// Package imagestore persists movie poster uploads and hands back an
// opaque reference. The disk implementation is the only backend; callers
// only ever see the reference string.
package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store interface {
	// Save writes the image and returns its opaque reference.
	Save(filename string, content io.Reader) (string, error)
	// Remove deletes a previously saved image. Missing files are not errors.
	Remove(ref string) error
}

type diskStore struct {
	basePath string
}

func NewDiskStore(basePath string) (Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", basePath, err)
	}
	return &diskStore{basePath: basePath}, nil
}

func (s *diskStore) Save(filename string, content io.Reader) (string, error) {
	ref := uuid.New().String() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.basePath, ref))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}

	return ref, nil
}

func (s *diskStore) Remove(ref string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image %s: %w", ref, err)
	}
	return nil
}
