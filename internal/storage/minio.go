package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"smart-fuel-crm/internal/config"
)

type MinioStorage struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func newMinio(cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseTLS,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorage{client: client, cfg: cfg}, nil
}

func (m *MinioStorage) Put(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.cfg.Bucket, objectPath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return publicURL(m.cfg, objectPath), nil
}

func (m *MinioStorage) Delete(ctx context.Context, objectPath string) error {
	return m.client.RemoveObject(ctx, m.cfg.Bucket, objectPath, minio.RemoveObjectOptions{})
}
