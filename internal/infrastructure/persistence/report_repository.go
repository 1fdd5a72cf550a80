package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormReportRepository implements report.LineRepository with join queries
type GormReportRepository struct {
	db *gorm.DB
}

var _ report.LineRepository = (*GormReportRepository)(nil)

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

const saleLineColumns = `
	s.id AS sale_id, s.invoice_number, s.sold_at, s.payment_status, s.payment_method,
	s.customer_id, si.product_id, si.product_name, p.category_id,
	si.quantity, si.unit_price, si.subtotal AS item_subtotal, si.cost, si.hpp_extra,
	s.subtotal AS sale_subtotal, s.discount_amount AS sale_discount, s.tax_amount AS sale_tax,
	s.total AS sale_total, s.paid_amount AS sale_paid_amount, s.credited_amount AS sale_credited`

// SaleLines loads one row per sale item, pre-filtered in SQL
func (r *GormReportRepository) SaleLines(ctx context.Context, tenantID uuid.UUID, filter report.Filter) ([]report.SaleLine, error) {
	q := conn(ctx, r.db).Table("sale_items AS si").
		Select(saleLineColumns).
		Joins("JOIN sales s ON s.id = si.sale_id AND s.tenant_id = si.tenant_id").
		Joins("LEFT JOIN products p ON p.id = si.product_id AND p.tenant_id = si.tenant_id").
		Where("si.tenant_id = ?", tenantID)
	if filter.From != nil {
		q = q.Where("s.sold_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("s.sold_at < ?", *filter.To)
	}
	q = applyLineFilter(q, filter, "si")

	var lines []report.SaleLine
	if err := q.Order("s.sold_at, s.id, si.id").Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

const returnLineColumns = `
	rt.id AS return_id, rt.sale_id, rt.created_at AS returned_at, rt.type,
	s.payment_status, s.payment_method, s.customer_id,
	ri.product_id, p.category_id, ri.quantity, ri.amount, ri.cost,
	s.subtotal AS sale_subtotal, s.total AS sale_total,
	rt.refund_amount AS return_refund, rt.credit_amount AS return_credit`

// ReturnLines loads one row per returned item; the date range applies to the return date
func (r *GormReportRepository) ReturnLines(ctx context.Context, tenantID uuid.UUID, filter report.Filter) ([]report.ReturnLine, error) {
	q := conn(ctx, r.db).Table("return_items AS ri").
		Select(returnLineColumns).
		Joins("JOIN returns rt ON rt.id = ri.return_id AND rt.tenant_id = ri.tenant_id").
		Joins("JOIN sales s ON s.id = rt.sale_id AND s.tenant_id = rt.tenant_id").
		Joins("LEFT JOIN products p ON p.id = ri.product_id AND p.tenant_id = ri.tenant_id").
		Where("ri.tenant_id = ?", tenantID)
	if filter.From != nil {
		q = q.Where("rt.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("rt.created_at < ?", *filter.To)
	}
	q = applyLineFilter(q, filter, "ri")

	var lines []report.ReturnLine
	if err := q.Order("rt.created_at, rt.id, ri.id").Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// applyLineFilter pushes the non-date filters down; item names the line table alias
func applyLineFilter(q *gorm.DB, filter report.Filter, item string) *gorm.DB {
	if filter.PaymentStatus != nil {
		q = q.Where("s.payment_status = ?", *filter.PaymentStatus)
	}
	if filter.PaymentMethod != nil {
		q = q.Where("s.payment_method = ?", *filter.PaymentMethod)
	}
	if filter.CustomerID != nil {
		q = q.Where("s.customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		q = q.Where(item+".product_id = ?", *filter.ProductID)
	}
	if filter.CategoryID != nil {
		q = q.Where("p.category_id = ?", *filter.CategoryID)
	}
	return q
}
