package storage

import (
	"context"
	"errors"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

// GCSStore keeps images as objects under Prefix in Bucket.
type GCSStore struct {
	client *gcs.Client
	Bucket string
	Prefix string
	logger *logrus.Logger
}

func NewGCSStore(client *gcs.Client, bucket, prefix string, logger *logrus.Logger) *GCSStore {
	return &GCSStore{client: client, Bucket: bucket, Prefix: prefix, logger: logger}
}

func (s *GCSStore) object(name string) string {
	return path.Join(s.Prefix, path.Base(name))
}

func (s *GCSStore) Store(ctx context.Context, r io.Reader, name, contentType string) (string, error) {
	if _, err := helpers.UploadObject(ctx, s.client, s.Bucket, s.object(name), contentType, r); err != nil {
		return "", apperror.Validation(apperror.CouldNotStoreImage, err.Error()).WithCause(err)
	}
	return path.Base(name), nil
}

func (s *GCSStore) Load(ctx context.Context, name string) ([]byte, error) {
	b, err := helpers.ReadObject(ctx, s.client, s.Bucket, s.object(name))
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, apperror.NotFound(apperror.CouldNotLoadFile)
		}
		s.logger.WithError(err).WithField("object", s.object(name)).Error("gcs read failed")
		return nil, apperror.Validation(apperror.CouldNotLoadFile).WithCause(err)
	}
	return b, nil
}

func (s *GCSStore) Delete(ctx context.Context, name string) error {
	if err := helpers.DeleteObject(ctx, s.client, s.Bucket, s.object(name)); err != nil {
		return apperror.Validation(apperror.CouldNotDeleteImage, err.Error()).WithCause(err)
	}
	return nil
}
