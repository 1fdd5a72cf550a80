package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	// FindByTenant returns the tenant's subscription or ErrNotFound
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
}

// PaymentRepository defines the interface for subscription payment persistence
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	// FindByMerchantOrderID looks a payment up across tenants; callbacks carry no tenant
	FindByMerchantOrderID(ctx context.Context, merchantOrderID string) (*Payment, error)
	// FindAllForTenant supports filters: status
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Payment, int64, error)
	Save(ctx context.Context, payment *Payment) error
}
