// Package storage keeps attachment bytes on the local filesystem. Each
// attachment is stored under a uuid key; size variants live next to the
// original with the variant name as a suffix.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type DiskStore struct {
	root      string
	publicURL string
}

// NewDiskStore ensures root exists and returns a store that serves files
// under publicURL + "/uploads/".
func NewDiskStore(root, publicURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{root: root, publicURL: publicURL}, nil
}

func (s *DiskStore) Root() string {
	return s.root
}

// Save writes the uploaded bytes and returns the generated storage key. The
// original filename only survives as the key's extension.
func (s *DiskStore) Save(r io.Reader, filename string) (string, int64, error) {
	key := uuid.NewString() + filepath.Ext(filename)
	f, err := os.Create(filepath.Join(s.root, key))
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, err
	}
	return key, n, nil
}

// Path returns the on-disk path of the original file for key.
func (s *DiskStore) Path(key string) string {
	return filepath.Join(s.root, key)
}

// VariantPath returns the on-disk path of a named size variant for key.
func (s *DiskStore) VariantPath(key, variant string) string {
	ext := filepath.Ext(key)
	return filepath.Join(s.root, key[:len(key)-len(ext)]+"_"+variant+ext)
}

// URL returns the public URL of the original file for key.
func (s *DiskStore) URL(key string) string {
	return s.publicURL + "/uploads/" + key
}

// VariantURL returns the public URL of a named size variant for key.
func (s *DiskStore) VariantURL(key, variant string) string {
	ext := filepath.Ext(key)
	return s.publicURL + "/uploads/" + key[:len(key)-len(ext)] + "_" + variant + ext
}

// VariantExists reports whether the named variant has been generated.
func (s *DiskStore) VariantExists(key, variant string) bool {
	_, err := os.Stat(s.VariantPath(key, variant))
	return err == nil
}

// Remove deletes the original and every generated variant for key. Missing
// files are not an error.
func (s *DiskStore) Remove(key string, variants ...string) error {
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, v := range variants {
		if err := os.Remove(s.VariantPath(key, v)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
