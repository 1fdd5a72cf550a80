package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/domain/shared"
)

// ErrUnknownUser is returned when a token names a user that no longer exists
var ErrUnknownUser = shared.NewDomainError("UNAUTHORIZED", "User no longer exists")

// TenantResolver maps an authenticated user to the tenant it acts for.
// It runs on every request, so deactivating a cashier takes effect at once.
type TenantResolver struct {
	userRepo identity.UserRepository
}

// NewTenantResolver creates a new tenant resolver
func NewTenantResolver(userRepo identity.UserRepository) *TenantResolver {
	return &TenantResolver{userRepo: userRepo}
}

// ResolveTenant returns the tenant context of an active user
func (r *TenantResolver) ResolveTenant(ctx context.Context, userID uuid.UUID) (*TenantContext, error) {
	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrAccountInactive
	}
	return &TenantContext{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Role:     user.Role,
		Name:     user.Name,
	}, nil
}
