package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/iiifas"
	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/usecase"
)

// FilesystemStore writes one file per event under a directory. It has no
// expiry; ttl is ignored.
type FilesystemStore struct {
	root string
}

func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store directory %s", root)
	}
	return &FilesystemStore{root: root}, nil
}

func (s *FilesystemStore) path(key string) (string, error) {
	if !iiifas.IsEventKey(key) {
		return "", errors.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, key), nil
}

func (s *FilesystemStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, domain.NotFoundError{Resource: "event " + key}
	}

	value, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NotFoundError{Resource: "event " + key}
		}
		return nil, errors.Wrap(err, "FilesystemStore.Get")
	}
	return value, nil
}

// Put writes to a temporary file and renames it so readers never see a partial event.
func (s *FilesystemStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, "."+key+".*")
	if err != nil {
		return errors.Wrap(err, "FilesystemStore.Put")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.Wrap(err, "FilesystemStore.Put")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "FilesystemStore.Put")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "FilesystemStore.Put")
	}
	return nil
}

var _ usecase.EventStore = (*FilesystemStore)(nil)
