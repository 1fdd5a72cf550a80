package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// ErrStorageDisabled is returned by image operations when no object storage is configured
var ErrStorageDisabled = shared.NewDomainError("STORAGE_DISABLED", "Image storage is not configured")

// ProductImageConfig controls presigned URL lifetimes
type ProductImageConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultProductImageConfig returns the default URL lifetimes
func DefaultProductImageConfig() ProductImageConfig {
	return ProductImageConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

// ProductImageService issues presigned URLs for product images.
// Images go straight from the client to the bucket; the API only hands
// out the URL and later checks that the object arrived.
type ProductImageService struct {
	storage shared.ObjectStorage
	config  ProductImageConfig
	logger  *zap.Logger
}

// NewProductImageService creates a new ProductImageService
func NewProductImageService(store shared.ObjectStorage, config ProductImageConfig, logger *zap.Logger) *ProductImageService {
	if config.UploadURLExpiry <= 0 {
		config.UploadURLExpiry = DefaultProductImageConfig().UploadURLExpiry
	}
	if config.DownloadURLExpiry <= 0 {
		config.DownloadURLExpiry = DefaultProductImageConfig().DownloadURLExpiry
	}
	return &ProductImageService{storage: store, config: config, logger: logger}
}

func (s *ProductImageService) uploadURL(ctx context.Context, tenantID, productID uuid.UUID, contentType string) (*ImageUploadResponse, error) {
	ext, ok := storage.ImageExtension(contentType)
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only JPEG, PNG and WebP images are allowed")
	}
	key := storage.ProductImageKey(tenantID, productID, ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ImageUploadResponse{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

func (s *ProductImageService) confirm(ctx context.Context, tenantID, productID uuid.UUID, key string) error {
	if !storage.BelongsToTenant(key, tenantID, productID) {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key does not belong to this product")
	}
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("UPLOAD_NOT_FOUND", "Image has not been uploaded yet")
	}
	return nil
}

func (s *ProductImageService) downloadURL(ctx context.Context, key string) string {
	url, _, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn("Failed to presign product image", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

// remove deletes a replaced image; a failure leaves an orphan object behind
func (s *ProductImageService) remove(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete product image", zap.String("key", key), zap.Error(err))
	}
}
