package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleLine is one sale item joined with its sale.
// Sale level amounts repeat on every line of the sale; the report allocates
// them to lines by subtotal share so product and category filters stay exact.
type SaleLine struct {
	SaleID         uuid.UUID           `json:"sale_id"`
	InvoiceNumber  string              `json:"invoice_number"`
	SoldAt         time.Time           `json:"sold_at"`
	PaymentStatus  sales.PaymentStatus `json:"payment_status"`
	PaymentMethod  sales.PaymentMethod `json:"payment_method"`
	CustomerID     *uuid.UUID          `json:"customer_id,omitempty"`
	ProductID      uuid.UUID           `json:"product_id"`
	ProductName    string              `json:"product_name"`
	CategoryID     *uuid.UUID          `json:"category_id,omitempty"`
	Quantity       int64               `json:"quantity"`
	UnitPrice      decimal.Decimal     `json:"unit_price"`
	ItemSubtotal   decimal.Decimal     `json:"item_subtotal"`
	Cost           decimal.Decimal     `json:"cost"`
	HPPExtra       decimal.Decimal     `json:"hpp_extra"`
	SaleSubtotal   decimal.Decimal     `json:"sale_subtotal"`
	SaleDiscount   decimal.Decimal     `json:"sale_discount"`
	SaleTax        decimal.Decimal     `json:"sale_tax"`
	SaleTotal      decimal.Decimal     `json:"sale_total"`
	SalePaidAmount decimal.Decimal     `json:"sale_paid_amount"`
	SaleCredited   decimal.Decimal     `json:"sale_credited"`
}

// ReturnLine is one returned item joined with its return and the original sale.
// ReturnRefund and ReturnCredit repeat the return's cash refund and balance
// credit on every line.
type ReturnLine struct {
	ReturnID      uuid.UUID           `json:"return_id"`
	SaleID        uuid.UUID           `json:"sale_id"`
	ReturnedAt    time.Time           `json:"returned_at"`
	Type          sales.ReturnType    `json:"type"`
	PaymentStatus sales.PaymentStatus `json:"payment_status"`
	PaymentMethod sales.PaymentMethod `json:"payment_method"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	ProductID     uuid.UUID           `json:"product_id"`
	CategoryID    *uuid.UUID          `json:"category_id,omitempty"`
	Quantity      int64               `json:"quantity"`
	Amount        decimal.Decimal     `json:"amount"`
	Cost          decimal.Decimal     `json:"cost"`
	SaleSubtotal  decimal.Decimal     `json:"sale_subtotal"`
	SaleTotal     decimal.Decimal     `json:"sale_total"`
	ReturnRefund  decimal.Decimal     `json:"return_refund"`
	ReturnCredit  decimal.Decimal     `json:"return_credit"`
}

// Filter narrows the lines a report is computed over. Nil fields match everything.
type Filter struct {
	From          *time.Time           `json:"from,omitempty"`
	To            *time.Time           `json:"to,omitempty"`
	PaymentStatus *sales.PaymentStatus `json:"payment_status,omitempty"`
	PaymentMethod *sales.PaymentMethod `json:"payment_method,omitempty"`
	ProductID     *uuid.UUID           `json:"product_id,omitempty"`
	CategoryID    *uuid.UUID           `json:"category_id,omitempty"`
	CustomerID    *uuid.UUID           `json:"customer_id,omitempty"`
}

func (f Filter) matchTime(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	// To is exclusive
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}

func (f Filter) matchCommon(status sales.PaymentStatus, method sales.PaymentMethod, customerID *uuid.UUID, productID uuid.UUID, categoryID *uuid.UUID) bool {
	if f.PaymentStatus != nil && status != *f.PaymentStatus {
		return false
	}
	if f.PaymentMethod != nil && method != *f.PaymentMethod {
		return false
	}
	if f.CustomerID != nil && (customerID == nil || *customerID != *f.CustomerID) {
		return false
	}
	if f.ProductID != nil && productID != *f.ProductID {
		return false
	}
	if f.CategoryID != nil && (categoryID == nil || *categoryID != *f.CategoryID) {
		return false
	}
	return true
}

// MatchSale reports whether a sale line passes the filter
func (f Filter) MatchSale(l SaleLine) bool {
	return f.matchTime(l.SoldAt) && f.matchCommon(l.PaymentStatus, l.PaymentMethod, l.CustomerID, l.ProductID, l.CategoryID)
}

// MatchReturn reports whether a return line passes the filter.
// The date range applies to the return date.
func (f Filter) MatchReturn(l ReturnLine) bool {
	return f.matchTime(l.ReturnedAt) && f.matchCommon(l.PaymentStatus, l.PaymentMethod, l.CustomerID, l.ProductID, l.CategoryID)
}
