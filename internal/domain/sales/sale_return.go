package sales

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReturnType decides what happens to returned goods
type ReturnType string

const (
	// ReturnTypeStock puts the goods back on the shelf
	ReturnTypeStock ReturnType = "stock"
	// ReturnTypeLoss writes the goods off; their cost is booked as a loss
	ReturnTypeLoss ReturnType = "loss"
)

// IsValid checks if the return type is known
func (t ReturnType) IsValid() bool {
	return t == ReturnTypeStock || t == ReturnTypeLoss
}

// ReturnItem is one returned sale line
type ReturnItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReturnID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ReturnItem) TableName() string {
	return "return_items"
}

// Return records goods brought back from a sale
type Return struct {
	shared.TenantEntity
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReturnNumber string          `gorm:"type:varchar(50);not null;index"`
	Type         ReturnType      `gorm:"type:varchar(20);not null"`
	Reason       string          `gorm:"type:text"`
	RefundAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreditAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LossAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Items        []ReturnItem    `gorm:"foreignKey:ReturnID"`
}

// TableName returns the table name for GORM
func (Return) TableName() string {
	return "returns"
}

// NewReturn starts a return against a sale
func NewReturn(sale *Sale, returnNumber string, returnType ReturnType, reason string, processedBy uuid.UUID) (*Return, error) {
	if sale == nil {
		return nil, shared.NotFound("sale")
	}
	if !returnType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RETURN_TYPE", "Return type must be stock or loss")
	}
	if strings.TrimSpace(returnNumber) == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	r := &Return{
		TenantEntity: shared.NewTenantEntity(sale.TenantID),
		SaleID:       sale.ID,
		ReturnNumber: returnNumber,
		Type:         returnType,
		Reason:       strings.TrimSpace(reason),
	}
	r.SetCreatedBy(processedBy)
	return r, nil
}

// AddItem returns quantity units of a sale line. The sale line's returned
// quantity is bumped so the same units cannot be returned twice.
func (r *Return) AddItem(sale *Sale, saleItemID uuid.UUID, quantity int64) error {
	if sale.ID != r.SaleID {
		return shared.NewDomainError("SALE_MISMATCH", "Sale does not match the return")
	}
	item := sale.FindItem(saleItemID)
	if item == nil {
		return shared.NotFound("sale item")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if quantity > item.ReturnableQuantity() {
		return shared.NewDomainError("RETURN_QUANTITY_EXCEEDED",
			fmt.Sprintf("Only %d of %s can be returned", item.ReturnableQuantity(), item.ProductName))
	}
	item.ReturnedQuantity += quantity

	r.Items = append(r.Items, ReturnItem{
		ID:          uuid.New(),
		TenantID:    r.TenantID,
		ReturnID:    r.ID,
		SaleItemID:  item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    quantity,
		UnitPrice:   item.UnitPrice,
		Cost:        item.Cost,
		Amount:      shared.RoundMoney(item.UnitPrice.Mul(decimal.NewFromInt(quantity))),
	})
	return nil
}

// Finalize computes what the returned goods are worth, settles that value
// against the sale and books the loss.
// The value carries the sale's discount and tax in proportion
// (amount × total / subtotal). It is credited against an unpaid balance
// first; RefundAmount is the cash handed back. The loss is cost × quantity
// for write-offs.
func (r *Return) Finalize(sale *Sale) error {
	if len(r.Items) == 0 {
		return shared.NewDomainError("EMPTY_RETURN", "Return must have at least one item")
	}
	gross := decimal.Zero
	cost := decimal.Zero
	for _, item := range r.Items {
		gross = gross.Add(item.Amount)
		cost = cost.Add(item.Cost.Mul(decimal.NewFromInt(item.Quantity)))
	}
	value := decimal.Zero
	if sale.Subtotal.IsPositive() {
		value = shared.RoundMoney(gross.Mul(sale.Total).Div(sale.Subtotal))
	}
	r.CreditAmount, r.RefundAmount = sale.applyReturn(value)
	r.LossAmount = decimal.Zero
	if r.Type == ReturnTypeLoss {
		r.LossAmount = shared.RoundMoney(cost)
	}
	return nil
}

// Value returns the worth of the returned goods: credit plus cash refund
func (r *Return) Value() decimal.Decimal {
	return r.RefundAmount.Add(r.CreditAmount)
}

// RestocksGoods reports whether product stock goes back up
func (r *Return) RestocksGoods() bool {
	return r.Type == ReturnTypeStock
}
