package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a filesystem-backed object store. Assets are addressed as
// {bucket}/{entityID}/{index}.jpg under the upload root and served statically
// over /uploads.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Path ensures the entity's folder exists and returns the on-disk path and
// public URL for the given asset index. The caller writes the file.
func (s *Store) Path(bucket string, entityID uint, index int) (string, string, error) {
	dir := filepath.Join(s.root, bucket, fmt.Sprint(entityID))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	filename := fmt.Sprintf("%d.jpg", index)
	diskPath := filepath.Join(dir, filename)
	publicURL := fmt.Sprintf("/uploads/%s/%d/%s", bucket, entityID, filename)
	return diskPath, publicURL, nil
}

// DeletePrefix removes every asset stored for the entity. Deleting an entity
// deletes its whole asset prefix, missing prefixes are not an error.
func (s *Store) DeletePrefix(bucket string, entityID uint) error {
	dir := filepath.Join(s.root, bucket, fmt.Sprint(entityID))
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
