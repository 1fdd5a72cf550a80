package report

import (
	"context"

	"github.com/google/uuid"
)

// LineRepository loads the raw report input of a tenant. Implementations may
// pre-filter in SQL; Compute applies the full filter again.
type LineRepository interface {
	SaleLines(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]SaleLine, error)
	ReturnLines(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]ReturnLine, error)
}
