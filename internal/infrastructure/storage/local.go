package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
)

// LocalStore keeps images as flat files under Root.
type LocalStore struct {
	Root   string
	logger *logrus.Logger
}

// NewLocalStore creates Root if needed.
func NewLocalStore(root string, logger *logrus.Logger) (*LocalStore, error) {
	s := &LocalStore{Root: root, logger: logger}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LocalStore) Init() error {
	info, err := os.Stat(s.Root)
	if err == nil {
		if !info.IsDir() {
			return apperror.Validation(apperror.CouldNotInitializeFolder).WithCause(errors.New("not a directory"))
		}
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		err = os.MkdirAll(s.Root, 0o755)
	}
	if err != nil {
		s.logger.WithError(err).WithField("root", s.Root).Error("image folder setup failed")
		return apperror.Validation(apperror.CouldNotInitializeFolder).WithCause(err)
	}
	return nil
}

func (s *LocalStore) Store(_ context.Context, r io.Reader, name, _ string) (string, error) {
	path := filepath.Join(s.Root, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", apperror.Validation(apperror.CouldNotStoreImage, err.Error()).WithCause(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", apperror.Validation(apperror.CouldNotStoreImage, err.Error()).WithCause(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", apperror.Validation(apperror.CouldNotStoreImage, err.Error()).WithCause(err)
	}
	return filepath.Base(name), nil
}

func (s *LocalStore) Load(_ context.Context, name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.Root, filepath.Base(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.NotFound(apperror.CouldNotLoadFile)
		}
		s.logger.WithError(err).WithField("image", name).Error("image read failed")
		return nil, apperror.Validation(apperror.CouldNotLoadFile).WithCause(err)
	}
	return b, nil
}

// Delete is idempotent: a missing file counts as deleted.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.Base(name)))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return apperror.Validation(apperror.CouldNotDeleteImage, err.Error()).WithCause(err)
}

// DeleteAll wipes Root and recreates it empty.
func (s *LocalStore) DeleteAll() error {
	if err := os.RemoveAll(s.Root); err != nil {
		return err
	}
	return s.Init()
}
