// Package media stores user uploads such as product images and purchase
// order attachments.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultMaxSize caps uploads when no limit is configured
const DefaultMaxSize int64 = 10 << 20

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// ObjectStore is where uploads end up
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// UploadResult is returned to the client
type UploadResult struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadService validates and stores files
type UploadService struct {
	store   ObjectStore
	maxSize int64
	logger  *zap.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

// NewUploadService creates an upload service. maxSize <= 0 uses DefaultMaxSize.
func NewUploadService(store ObjectStore, maxSize int64, logger *zap.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, maxSize: maxSize, logger: logger, now: time.Now, newID: uuid.New}
}

// Upload sniffs the content type from the first bytes instead of trusting
// the client and stores the file under uploads/<yyyy>/<mm>/.
func (s *UploadService) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*UploadResult, error) {
	if size > s.maxSize {
		return nil, shared.Validation("file exceeds the maximum size of %d bytes", s.maxSize)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, shared.WrapDomainError(shared.CodeInvalidInput, "failed to read upload", err)
	}
	if n == 0 {
		return nil, shared.Validation("file is empty")
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, shared.Validation("file type %s is not allowed", contentType)
	}

	key := s.objectKey(filename, ext)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxSize+1)
	counter := &countingReader{r: body}
	if err := s.store.Put(ctx, key, counter, size, contentType); err != nil {
		s.logger.Error("Failed to store upload", zap.String("key", key), zap.Error(err))
		return nil, shared.Persistence("store upload", err)
	}
	if counter.n > s.maxSize {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to remove oversized upload", zap.String("key", key), zap.Error(err))
		}
		return nil, shared.Validation("file exceeds the maximum size of %d bytes", s.maxSize)
	}

	s.logger.Info("File uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", counter.n))

	return &UploadResult{
		Filename:    path.Base(key),
		URL:         s.store.URL(key),
		Key:         key,
		ContentType: contentType,
		Size:        counter.n,
	}, nil
}

func (s *UploadService) objectKey(filename, ext string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "file"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	now := s.now()
	return fmt.Sprintf("uploads/%04d/%02d/%s-%s%s", now.Year(), int(now.Month()), name, s.newID().String()[:8], ext)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
