package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant loads a sale with its items and custom costs. Inside a
// transaction the sale row is locked.
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	q := conn(ctx, r.db).Scopes(tenantScope(tenantID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("product_name") }).
		Preload("CustomCosts")
	if inTransaction(ctx) {
		q = forUpdate(q)
	}
	var sale sales.Sale
	if err := q.First(&sale, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "sale")
	}
	return &sale, nil
}

// FindAllForTenant lists sales without their lines
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&sales.Sale{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "invoice_number", "notes"), rangeScope(filter, "sold_at"))
	if status, ok := stringFilter(filter, "payment_status"); ok {
		q = q.Where("payment_status = ?", status)
	}
	if method, ok := stringFilter(filter, "payment_method"); ok {
		q = q.Where("payment_method = ?", method)
	}
	if id, ok := uuidFilter(filter, "customer_id"); ok {
		q = q.Where("customer_id = ?", id)
	}
	if id, ok := uuidFilter(filter, "employee_id"); ok {
		q = q.Where("employee_id = ?", id)
	}
	if id, ok := uuidFilter(filter, "cashier_id"); ok {
		q = q.Where("cashier_id = ?", id)
	}
	return list[sales.Sale](q, filter, SaleSortFields, "sold_at")
}

// Create inserts the sale with its items and custom costs
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	return conn(ctx, r.db).Create(sale).Error
}

// UpdatePayment persists paid amount, change, return credits and refunds and
// the payment status
func (r *GormSaleRepository) UpdatePayment(ctx context.Context, sale *sales.Sale) error {
	result := conn(ctx, r.db).Model(&sales.Sale{}).
		Where("tenant_id = ? AND id = ?", sale.TenantID, sale.ID).
		Updates(map[string]any{
			"paid_amount":     sale.PaidAmount,
			"change_amount":   sale.ChangeAmount,
			"credited_amount": sale.CreditedAmount,
			"refunded_amount": sale.RefundedAmount,
			"payment_status":  sale.PaymentStatus,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("sale")
	}
	return nil
}

// UpdateReturnedQuantities persists the returned quantity of each item
func (r *GormSaleRepository) UpdateReturnedQuantities(ctx context.Context, items []sales.SaleItem) error {
	db := conn(ctx, r.db)
	for _, item := range items {
		err := db.Model(&sales.SaleItem{}).
			Where("id = ? AND tenant_id = ?", item.ID, item.TenantID).
			Update("returned_quantity", item.ReturnedQuantity).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteForTenant removes the sale and its lines
func (r *GormSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	remove := func(tx *gorm.DB) error {
		scoped := tx.Scopes(tenantScope(tenantID))
		if err := scoped.Where("sale_id = ?", id).Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(tenantScope(tenantID)).Where("sale_id = ?", id).Delete(&sales.SaleCustomCost{}).Error; err != nil {
			return err
		}
		return deleteForTenant(ctx, tx, &sales.Sale{}, tenantID, id, "sale")
	}
	if inTransaction(ctx) {
		return remove(conn(ctx, r.db))
	}
	return conn(ctx, r.db).Transaction(remove)
}

// NextInvoiceNumber reserves INV-YYYYMMDD-NNNN for the day of at. Call it
// inside the transaction that creates the sale.
func (r *GormSaleRepository) NextInvoiceNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	seq, err := issueSequence(ctx, r.db, tenantID, sales.InvoicePrefix, at, func() (int, error) {
		return nextSequence(conn(ctx, r.db).Model(&sales.Sale{}), tenantID, "invoice_number", sales.DayPrefix(sales.InvoicePrefix, at))
	})
	if err != nil {
		return "", err
	}
	return sales.FormatNumber(sales.InvoicePrefix, at, seq), nil
}

// nextSequence finds the number following the highest one stored today under
// prefix. Numbers are compared numerically so "0010" follows "0009" past the
// padding width.
func nextSequence(q *gorm.DB, tenantID uuid.UUID, column, prefix string) (int, error) {
	var numbers []string
	err := q.Where("tenant_id = ? AND "+column+" LIKE ?", tenantID, prefix+"%").
		Pluck(column, &numbers).Error
	if err != nil {
		return 0, err
	}
	next := 1
	for _, n := range numbers {
		if s := sales.NextSequence(n); s > next {
			next = s
		}
	}
	return next, nil
}

// GormReturnRepository implements sales.ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

var _ sales.ReturnRepository = (*GormReturnRepository)(nil)

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByIDForTenant loads a return with its items
func (r *GormReturnRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Return, error) {
	var ret sales.Return
	err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).Preload("Items").First(&ret, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "return")
	}
	return &ret, nil
}

// FindAllForTenant lists returns without their items
func (r *GormReturnRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Return, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&sales.Return{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "return_number", "reason"), rangeScope(filter, "created_at"))
	if id, ok := uuidFilter(filter, "sale_id"); ok {
		q = q.Where("sale_id = ?", id)
	}
	if t, ok := stringFilter(filter, "type"); ok {
		q = q.Where("type = ?", t)
	}
	return list[sales.Return](q, filter, ReturnSortFields, "created_at")
}

// Create inserts the return with its items
func (r *GormReturnRepository) Create(ctx context.Context, ret *sales.Return) error {
	return conn(ctx, r.db).Create(ret).Error
}

// CountBySale counts the returns booked against a sale
func (r *GormReturnRepository) CountBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&sales.Return{}).
		Scopes(tenantScope(tenantID)).
		Where("sale_id = ?", saleID).
		Count(&count).Error
	return count, err
}

// NextReturnNumber reserves RET-YYYYMMDD-NNNN for the day of at. Call it
// inside the transaction that creates the return.
func (r *GormReturnRepository) NextReturnNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	seq, err := issueSequence(ctx, r.db, tenantID, sales.ReturnPrefix, at, func() (int, error) {
		return nextSequence(conn(ctx, r.db).Model(&sales.Return{}), tenantID, "return_number", sales.DayPrefix(sales.ReturnPrefix, at))
	})
	if err != nil {
		return "", err
	}
	return sales.FormatNumber(sales.ReturnPrefix, at, seq), nil
}
