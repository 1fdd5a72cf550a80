package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for tenant settings persistence
type Repository interface {
	// FindByTenant returns the saved settings or ErrNotFound
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*TenantSettings, error)
	Save(ctx context.Context, s *TenantSettings) error
}
