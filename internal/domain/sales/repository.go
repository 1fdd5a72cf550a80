package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByIDForTenant loads a sale with its items and custom costs
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindAllForTenant lists sales (without lines). Supported filters:
	// payment_status, payment_method, customer_id, employee_id, from, to
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, int64, error)

	// Create inserts the sale with its items and custom costs
	Create(ctx context.Context, sale *Sale) error

	// UpdatePayment persists paid amount, change, return credits and refunds
	// and the payment status
	UpdatePayment(ctx context.Context, sale *Sale) error

	// UpdateReturnedQuantities persists the returned quantity of each item
	UpdateReturnedQuantities(ctx context.Context, items []SaleItem) error

	// DeleteForTenant removes the sale and its lines
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// NextInvoiceNumber reserves INV-YYYYMMDD-NNNN for the day of at. Two
	// transactions never receive the same number.
	NextInvoiceNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error)
}

// ReturnRepository defines the interface for return persistence
type ReturnRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Return, error)
	// FindAllForTenant supports filters: sale_id, type, from, to
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Return, int64, error)
	Create(ctx context.Context, ret *Return) error
	CountBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error)
	// NextReturnNumber reserves RET-YYYYMMDD-NNNN for the day of at
	NextReturnNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error)
}
