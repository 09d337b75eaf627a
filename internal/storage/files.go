// Package storage keeps rendered documents on local disk, addressable by
// their generated file names until externally cleaned up.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/legalfox/legalfox-backend/internal/entity"
)

type Store struct {
	dir string
}

// NewStore creates the output directory if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create files directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under a uniquely named file and returns the bare file
// name (not the full path).
func (s *Store) Save(prefix, ext string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write file %s: %w", name, err)
	}

	return name, nil
}

// Resolve maps a previously generated file name to its on-disk path.
// Names containing path separators are rejected outright.
func (s *Store) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", entity.ErrInvalidFileName
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", entity.ErrFileNotFound
		}
		return "", fmt.Errorf("stat file %s: %w", name, err)
	}

	return path, nil
}
