package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/pkg/config"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

// objectStore is the slice of the storage gateway the upload service needs.
type objectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFor(url string) (string, bool)
}

// UploadService validates and stores admin image uploads.
type UploadService struct {
	store   objectStore
	cfg     config.UploadConfig
	metrics *MetricsService
	logger  *zap.Logger
}

// NewUploadService constructs UploadService.
func NewUploadService(store objectStore, cfg config.UploadConfig, metrics *MetricsService, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, cfg: cfg, metrics: metrics, logger: logger}
}

// Upload streams the file to object storage under a generated key and returns
// the public URL. The original filename only contributes its extension.
func (s *UploadService) Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (string, error) {
	if s.store == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "image storage is not configured")
	}
	if size <= 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	if s.cfg.MaxFileSizeBytes > 0 && size > s.cfg.MaxFileSizeBytes {
		s.metrics.RecordUpload(false, 0)
		return "", appErrors.Clone(appErrors.ErrTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSizeBytes))
	}
	if !s.allowedMIME(contentType) {
		s.metrics.RecordUpload(false, 0)
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported content type %q", contentType))
	}

	if folder == "" {
		folder = s.cfg.DefaultFolder
	}
	folder = strings.Trim(folder, "/")
	key := folder + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	url, err := s.store.Upload(ctx, key, body, contentType)
	if err != nil {
		s.metrics.RecordUpload(false, 0)
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store image")
	}

	s.metrics.RecordUpload(true, size)
	s.logger.Info("image uploaded", zap.String("key", key), zap.Int64("size", size))
	return url, nil
}

// RemoveByURL deletes the object behind a previously issued public URL.
// URLs outside the configured bucket are rejected.
func (s *UploadService) RemoveByURL(ctx context.Context, url string) error {
	if s.store == nil {
		return appErrors.Clone(appErrors.ErrInternal, "image storage is not configured")
	}
	key, ok := s.store.KeyFor(url)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "url does not belong to this bucket")
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete image")
	}
	return nil
}

func (s *UploadService) allowedMIME(contentType string) bool {
	if len(s.cfg.AllowedMIMEs) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, allowed := range s.cfg.AllowedMIMEs {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
