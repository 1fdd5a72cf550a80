package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID across tenants (used for tenant resolution)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by its unique email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByIDForTenant finds a user inside a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindAllForTenant lists users of a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, int64, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// DeleteForTenant removes a user inside a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
