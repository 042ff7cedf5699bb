// Package storage provides object storage implementations for uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tilesgalleria/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidKey is returned for empty keys and keys escaping the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStore stores uploaded objects and resolves their public URLs
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the store selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ObjectStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	case "s3":
		s, err := NewS3Storage(&cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
