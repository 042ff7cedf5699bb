package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/uploads/")
	require.NoError(t, err)

	t.Run("put writes under the root", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "uploads/2024/06/tile-1a2b3c4d.png", strings.NewReader("png"), 3, "image/png"))

		data, err := os.ReadFile(filepath.Join(root, "uploads", "2024", "06", "tile-1a2b3c4d.png"))
		require.NoError(t, err)
		assert.Equal(t, "png", string(data))
		assert.Equal(t, "/uploads/uploads/2024/06/tile-1a2b3c4d.png", s.URL("uploads/2024/06/tile-1a2b3c4d.png"))
	})

	t.Run("no temp files remain", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(root, "uploads", "2024", "06"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "uploads/2024/06/tile-1a2b3c4d.png"))
		require.NoError(t, s.Delete(ctx, "uploads/2024/06/tile-1a2b3c4d.png"))
	})

	t.Run("rejects keys escaping the root", func(t *testing.T) {
		for _, key := range []string{"", "../secret", "a/../../b", "a//b"} {
			err := s.Put(ctx, key, strings.NewReader("x"), 1, "text/plain")
			assert.ErrorIs(t, err, ErrInvalidKey, key)
		}
	})
}

func TestNewS3Storage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3Storage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3Storage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half a key pair returns error", func(t *testing.T) {
		_, err := NewS3Storage(&config.StorageConfig{Bucket: "tiles", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3Storage(&config.StorageConfig{
			Bucket: "tiles", AccessKey: "k", SecretKey: "s",
			Endpoint: "localhost:9000", UsePathStyle: true,
		}, WithLogger(zap.NewNop()))
		require.NoError(t, err)
		assert.Equal(t, "tiles", s.Bucket())
		assert.Equal(t, "us-east-1", s.region)
	})
}

func TestS3Storage_URL(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "public base url",
			cfg:  config.StorageConfig{Bucket: "tiles", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/uploads/a.png",
		},
		{
			name: "path style endpoint",
			cfg:  config.StorageConfig{Bucket: "tiles", Endpoint: "http://minio:9000", UsePathStyle: true},
			want: "http://minio:9000/tiles/uploads/a.png",
		},
		{
			name: "virtual host endpoint",
			cfg:  config.StorageConfig{Bucket: "tiles", Endpoint: "https://r2.example.com"},
			want: "https://tiles.r2.example.com/uploads/a.png",
		},
		{
			name: "aws default",
			cfg:  config.StorageConfig{Bucket: "tiles", Region: "ap-southeast-2"},
			want: "https://tiles.s3.ap-southeast-2.amazonaws.com/uploads/a.png",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewS3Storage(&tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.URL("uploads/a.png"))
		})
	}
}

func TestNew_Driver(t *testing.T) {
	s, err := New(context.Background(), config.StorageConfig{Driver: "local", LocalDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = New(context.Background(), config.StorageConfig{Driver: "ftp"}, nil)
	assert.Error(t, err)
}
