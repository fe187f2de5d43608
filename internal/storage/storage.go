// Package storage keeps template attachments in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"smart-fuel-crm/internal/config"
)

const (
	ProviderNone  = "none"
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// Provider stores objects and returns a publicly resolvable URL for them.
type Provider interface {
	Put(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// New builds the configured provider. It returns nil, nil when storage is disabled.
func New(cfg config.StorageConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderNone:
		return nil, nil
	case ProviderMinio:
		return newMinio(cfg)
	case ProviderS3:
		return newS3(cfg)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_PROVIDER %q", cfg.Provider)
	}
}

// ObjectPath is <user>/<channel>/<uuid>-<file>; the file name is reduced to its base.
func ObjectPath(userID, channel, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return userID + "/" + channel + "/" + uuid.NewString() + "-" + base
}

// publicURL joins the configured public base, or the endpoint, with bucket and path.
func publicURL(cfg config.StorageConfig, objectPath string) string {
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseTLS {
			scheme = "https"
		}
		endpoint := cfg.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = scheme + "://" + endpoint
		}
		base = strings.TrimRight(endpoint, "/")
	}
	return base + "/" + cfg.Bucket + "/" + objectPath
}
