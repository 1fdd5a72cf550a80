package shared

import (
	"context"
	"time"
)

// ObjectStorage stores binary objects (product images, archived receipts)
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned URL the client PUTs the object to
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned URL for reading the object
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// Upload writes an object directly
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// ObjectExists reports whether the object has been uploaded
	ObjectExists(ctx context.Context, key string) (bool, error)

	// DeleteObject removes an object; missing objects are not an error
	DeleteObject(ctx context.Context, key string) error
}
