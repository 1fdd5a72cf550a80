package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListFilter is the common list query
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

func (f ListFilter) toFilter(loc *time.Location) (shared.Filter, error) {
	from, to, err := shared.DayRange(f.From, f.To, loc)
	if err != nil {
		return shared.Filter{}, err
	}
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("from", from).
		With("to", to), nil
}

// =============================================================================
// Sale DTOs
// =============================================================================

// SaleLineRequest is one product line of a new sale
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// CustomCostRequest is an extra cost of a new sale (packaging, delivery)
type CustomCostRequest struct {
	Name   string          `json:"name" binding:"required,max=100"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateSaleRequest rings up a sale. A nil TaxPercent uses the store default;
// a nil PaidAmount means the sale is paid in full.
type CreateSaleRequest struct {
	Items           []SaleLineRequest   `json:"items" binding:"required,min=1,dive"`
	CustomCosts     []CustomCostRequest `json:"custom_costs" binding:"dive"`
	CustomerID      *uuid.UUID          `json:"customer_id"`
	EmployeeID      *uuid.UUID          `json:"employee_id"`
	PaymentMethod   sales.PaymentMethod `json:"payment_method" binding:"required,oneof=cash card transfer qris ewallet"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	TaxPercent      *decimal.Decimal    `json:"tax_percent"`
	PaidAmount      *decimal.Decimal    `json:"paid_amount"`
	Notes           string              `json:"notes" binding:"max=1000"`
}

// PaymentRequest settles (part of) a receivable
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SaleListFilter is the query of the sale list
type SaleListFilter struct {
	ListFilter
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=paid unpaid partial"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,oneof=cash card transfer qris ewallet"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
	EmployeeID    string `form:"employee_id" binding:"omitempty,uuid"`
	CashierID     string `form:"cashier_id" binding:"omitempty,uuid"`
}

// SaleItemResponse is a sale line in API responses
type SaleItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	SKU              string          `json:"sku"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Cost             decimal.Decimal `json:"cost"`
	HPPExtra         decimal.Decimal `json:"hpp_extra"`
	ReturnedQuantity int64           `json:"returned_quantity"`
}

// CustomCostResponse is a custom cost in API responses
type CustomCostResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse represents a sale in API responses. Lists omit the lines.
type SaleResponse struct {
	ID              uuid.UUID            `json:"id"`
	InvoiceNumber   string               `json:"invoice_number"`
	CashierID       uuid.UUID            `json:"cashier_id"`
	CustomerID      *uuid.UUID           `json:"customer_id,omitempty"`
	EmployeeID      *uuid.UUID           `json:"employee_id,omitempty"`
	PaymentMethod   sales.PaymentMethod  `json:"payment_method"`
	PaymentStatus   sales.PaymentStatus  `json:"payment_status"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	DiscountPercent decimal.Decimal      `json:"discount_percent"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount"`
	TaxPercent      decimal.Decimal      `json:"tax_percent"`
	TaxAmount       decimal.Decimal      `json:"tax_amount"`
	Total           decimal.Decimal      `json:"total"`
	PaidAmount      decimal.Decimal      `json:"paid_amount"`
	ChangeAmount    decimal.Decimal      `json:"change_amount"`
	CreditedAmount  decimal.Decimal      `json:"credited_amount"`
	RefundedAmount  decimal.Decimal      `json:"refunded_amount"`
	Outstanding     decimal.Decimal      `json:"outstanding"`
	CustomCostTotal decimal.Decimal      `json:"custom_cost_total"`
	Notes           string               `json:"notes"`
	SoldAt          time.Time            `json:"sold_at"`
	Items           []SaleItemResponse   `json:"items,omitempty"`
	CustomCosts     []CustomCostResponse `json:"custom_costs,omitempty"`
}

// ToSaleResponse converts a domain sale
func ToSaleResponse(s *sales.Sale) SaleResponse {
	resp := SaleResponse{
		ID:              s.ID,
		InvoiceNumber:   s.InvoiceNumber,
		CashierID:       s.CashierID,
		CustomerID:      s.CustomerID,
		EmployeeID:      s.EmployeeID,
		PaymentMethod:   s.PaymentMethod,
		PaymentStatus:   s.PaymentStatus,
		Subtotal:        s.Subtotal,
		DiscountPercent: s.DiscountPercent,
		DiscountAmount:  s.DiscountAmount,
		TaxPercent:      s.TaxPercent,
		TaxAmount:       s.TaxAmount,
		Total:           s.Total,
		PaidAmount:      s.PaidAmount,
		ChangeAmount:    s.ChangeAmount,
		CreditedAmount:  s.CreditedAmount,
		RefundedAmount:  s.RefundedAmount,
		Outstanding:     s.Outstanding(),
		CustomCostTotal: s.CustomCostTotal,
		Notes:           s.Notes,
		SoldAt:          s.SoldAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			SKU:              item.SKU,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Subtotal:         item.Subtotal,
			Cost:             item.Cost,
			HPPExtra:         item.HPPExtra,
			ReturnedQuantity: item.ReturnedQuantity,
		})
	}
	for _, c := range s.CustomCosts {
		resp.CustomCosts = append(resp.CustomCosts, CustomCostResponse{Name: c.Name, Amount: c.Amount})
	}
	return resp
}

// =============================================================================
// Return DTOs
// =============================================================================

// ReturnLineRequest returns units of one sale line
type ReturnLineRequest struct {
	SaleItemID uuid.UUID `json:"sale_item_id" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required,min=1"`
}

// CreateReturnRequest records goods brought back from a sale
type CreateReturnRequest struct {
	SaleID uuid.UUID           `json:"sale_id" binding:"required"`
	Type   sales.ReturnType    `json:"type" binding:"required,oneof=stock loss"`
	Reason string              `json:"reason" binding:"max=1000"`
	Items  []ReturnLineRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnListFilter is the query of the return list
type ReturnListFilter struct {
	ListFilter
	SaleID string `form:"sale_id" binding:"omitempty,uuid"`
	Type   string `form:"type" binding:"omitempty,oneof=stock loss"`
}

// ReturnItemResponse is a returned line in API responses
type ReturnItemResponse struct {
	SaleItemID  uuid.UUID       `json:"sale_item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Cost        decimal.Decimal `json:"cost"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReturnResponse represents a return in API responses
type ReturnResponse struct {
	ID           uuid.UUID            `json:"id"`
	SaleID       uuid.UUID            `json:"sale_id"`
	ReturnNumber string               `json:"return_number"`
	Type         sales.ReturnType     `json:"type"`
	Reason       string               `json:"reason"`
	RefundAmount decimal.Decimal      `json:"refund_amount"`
	CreditAmount decimal.Decimal      `json:"credit_amount"`
	LossAmount   decimal.Decimal      `json:"loss_amount"`
	Items        []ReturnItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ToReturnResponse converts a domain return
func ToReturnResponse(r *sales.Return) ReturnResponse {
	resp := ReturnResponse{
		ID:           r.ID,
		SaleID:       r.SaleID,
		ReturnNumber: r.ReturnNumber,
		Type:         r.Type,
		Reason:       r.Reason,
		RefundAmount: r.RefundAmount,
		CreditAmount: r.CreditAmount,
		LossAmount:   r.LossAmount,
		CreatedAt:    r.CreatedAt,
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, ReturnItemResponse{
			SaleItemID:  item.SaleItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Cost:        item.Cost,
			Amount:      item.Amount,
		})
	}
	return resp
}
