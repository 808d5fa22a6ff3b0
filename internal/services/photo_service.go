package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/samaj-network/app-directory/internal/config"
	"github.com/samaj-network/app-directory/internal/logging"
	"github.com/samaj-network/app-directory/internal/models"
	"github.com/samaj-network/app-directory/internal/observability"
	"github.com/samaj-network/app-directory/internal/utils"
	"go.uber.org/zap"
)

// PhotoService uploads profile photos to object storage and resolves their
// public URLs. Object names carry a per-slot marker and a timestamp so
// concurrent uploads never collide; replaced photos leave their old blob
// behind (orphan cleanup is out of scope).
type PhotoService struct {
	logger *logging.SafeLogger
}

// NewPhotoService creates a new PhotoService instance
func NewPhotoService(logger *logging.SafeLogger) *PhotoService {
	return &PhotoService{logger: logger}
}

// UploadPhoto stores one uploaded photo under the given slot and returns its
// public URL.
func (s *PhotoService) UploadPhoto(ctx context.Context, slot string, file *multipart.FileHeader) (string, error) {
	ctx, span := utils.TraceExternalService(ctx, "object_storage", "upload")
	defer span.End()

	src, err := file.Open()
	if err != nil {
		observability.PhotoUploads.WithLabelValues(slot, "error").Inc()
		return "", fmt.Errorf("failed to open uploaded photo: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("%s_%d%s", slot, time.Now().UnixNano(), ext)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	utils.AddSpanAttribute(span, "storage.bucket", config.AppConfig.PhotoBucket)
	utils.AddSpanAttribute(span, "storage.object", objectName)

	_, err = config.Minio.PutObject(ctx, config.AppConfig.PhotoBucket, objectName, src, file.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{
			"storage.object": objectName,
		})
		observability.PhotoUploads.WithLabelValues(slot, "error").Inc()
		s.logger.Error("failed to upload photo",
			zap.String("slot", slot),
			zap.String("object", objectName),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrPhotoUploadFailed, err)
	}

	observability.PhotoUploads.WithLabelValues(slot, "success").Inc()

	url := s.PublicURL(objectName)
	s.logger.Debug("photo uploaded",
		zap.String("slot", slot),
		zap.String("object", objectName),
		zap.String("url", url))

	return url, nil
}

// PublicURL resolves the public URL for a stored object
func (s *PhotoService) PublicURL(objectName string) string {
	base := strings.TrimRight(config.AppConfig.StoragePublicURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, config.AppConfig.PhotoBucket, objectName)
}
