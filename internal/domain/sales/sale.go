package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays at the register
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodQRIS     PaymentMethod = "qris"
	PaymentMethodEWallet  PaymentMethod = "ewallet"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodQRIS, PaymentMethodEWallet:
		return true
	}
	return false
}

// PaymentStatus is derived from the paid amount against the total
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
)

// IsValid checks if the payment status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusPartial:
		return true
	}
	return false
}

// SaleItem is one product line of a sale.
// Cost is the product HPP per unit at the time of sale; HPPExtra is the
// line's share of the sale's custom costs.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	SKU              string          `gorm:"column:sku;type:varchar(50)"`
	Quantity         int64           `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cost             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	HPPExtra         decimal.Decimal `gorm:"column:hpp_extra;type:decimal(18,2);not null;default:0"`
	ReturnedQuantity int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a sale line
func NewSaleItem(productID uuid.UUID, productName, sku string, quantity int64, unitPrice, cost decimal.Decimal) (SaleItem, error) {
	if productID == uuid.Nil {
		return SaleItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity <= 0 {
		return SaleItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return SaleItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if cost.IsNegative() {
		return SaleItem{}, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	return SaleItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    shared.RoundMoney(unitPrice.Mul(decimal.NewFromInt(quantity))),
		Cost:        cost,
	}, nil
}

// COGS returns cost × quantity
func (i SaleItem) COGS() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(i.Quantity))
}

// ReturnableQuantity returns how many units can still be returned
func (i SaleItem) ReturnableQuantity() int64 {
	return i.Quantity - i.ReturnedQuantity
}

// SaleCustomCost is an ad hoc extra cost attached to a sale (packaging, delivery...)
type SaleCustomCost struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleCustomCost) TableName() string {
	return "sale_custom_costs"
}

// Sale is a completed register transaction
type Sale struct {
	shared.TenantEntity
	InvoiceNumber   string           `gorm:"type:varchar(50);not null;index"`
	CashierID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID      *uuid.UUID       `gorm:"type:uuid;index"`
	EmployeeID      *uuid.UUID       `gorm:"type:uuid;index"`
	PaymentMethod   PaymentMethod    `gorm:"type:varchar(20);not null"`
	PaymentStatus   PaymentStatus    `gorm:"type:varchar(20);not null;index"`
	Subtotal        decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	DiscountPercent decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	TaxPercent      decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount       decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Total           decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	PaidAmount      decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	ChangeAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	CreditedAmount  decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	RefundedAmount  decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	CustomCostTotal decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Notes           string           `gorm:"type:text"`
	SoldAt          time.Time        `gorm:"not null;index"`
	Items           []SaleItem       `gorm:"foreignKey:SaleID"`
	CustomCosts     []SaleCustomCost `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale starts a sale rung up by cashierID
func NewSale(tenantID, cashierID uuid.UUID, invoiceNumber string, method PaymentMethod) (*Sale, error) {
	if cashierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASHIER", "Cashier is required")
	}
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+string(method))
	}
	s := &Sale{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		InvoiceNumber: invoiceNumber,
		CashierID:     cashierID,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusUnpaid,
		SoldAt:        time.Now(),
	}
	s.SetCreatedBy(cashierID)
	return s, nil
}

// AddItem appends a line to the sale
func (s *Sale) AddItem(item SaleItem) {
	item.TenantID = s.TenantID
	item.SaleID = s.ID
	s.Items = append(s.Items, item)
}

// AddCustomCost appends an extra cost
func (s *Sale) AddCustomCost(name string, amount decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOM_COST", "Custom cost name cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_CUSTOM_COST", "Custom cost cannot be negative")
	}
	s.CustomCosts = append(s.CustomCosts, SaleCustomCost{
		ID:       uuid.New(),
		TenantID: s.TenantID,
		SaleID:   s.ID,
		Name:     name,
		Amount:   shared.RoundMoney(amount),
	})
	return nil
}

// SetCustomer attaches the buyer
func (s *Sale) SetCustomer(customerID *uuid.UUID) {
	s.CustomerID = customerID
}

// SetEmployee attaches the employee credited with the sale (profit share)
func (s *Sale) SetEmployee(employeeID *uuid.UUID) {
	s.EmployeeID = employeeID
}

// SetNotes sets free-form notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = strings.TrimSpace(notes)
}

// Finalize computes totals, prorates custom costs and applies the tendered amount.
// A nil tendered amount means the sale is paid in full.
func (s *Sale) Finalize(discountPercent, taxPercent decimal.Decimal, tendered *decimal.Decimal) error {
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Sale must have at least one item")
	}

	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	totals, err := ComputeTotals(subtotal, discountPercent, taxPercent)
	if err != nil {
		return err
	}
	s.Subtotal = totals.Subtotal
	s.DiscountPercent = totals.DiscountPercent
	s.DiscountAmount = totals.DiscountAmount
	s.TaxPercent = totals.TaxPercent
	s.TaxAmount = totals.TaxAmount
	s.Total = totals.Total

	s.CustomCostTotal = decimal.Zero
	for _, c := range s.CustomCosts {
		s.CustomCostTotal = s.CustomCostTotal.Add(c.Amount)
	}
	ProrateCustomCosts(s.Items, s.CustomCostTotal)

	paid := s.Total
	if tendered != nil {
		if tendered.IsNegative() {
			return shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount cannot be negative")
		}
		paid = shared.RoundMoney(*tendered)
	}
	if paid.GreaterThan(s.Total) && s.PaymentMethod != PaymentMethodCash {
		return shared.NewDomainError("INVALID_PAID_AMOUNT", "Only cash payments can exceed the total")
	}
	s.PaidAmount = decimal.Zero
	s.ChangeAmount = decimal.Zero
	s.applyPayment(paid)
	return nil
}

// Pay settles (part of) an outstanding balance
func (s *Sale) Pay(amount decimal.Decimal) error {
	if s.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Sale is already paid")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAID_AMOUNT", "Payment amount must be positive")
	}
	s.applyPayment(shared.RoundMoney(amount))
	s.Touch()
	return nil
}

// applyPayment adds amount to the paid amount. Anything above what is still
// due after return credits is change.
func (s *Sale) applyPayment(amount decimal.Decimal) {
	due := s.Total.Sub(s.CreditedAmount)
	paid := s.PaidAmount.Add(amount)
	if paid.GreaterThan(due) {
		s.ChangeAmount = s.ChangeAmount.Add(paid.Sub(due))
		paid = due
	}
	s.PaidAmount = paid
	s.PaymentStatus = derivePaymentStatus(s.PaidAmount, s.CreditedAmount, s.Total)
}

// applyReturn settles the value of returned goods. The value first clears
// the outstanding balance; only the rest is handed back in cash, and never
// more cash than was paid and not yet refunded.
func (s *Sale) applyReturn(value decimal.Decimal) (credit, refund decimal.Decimal) {
	credit = decimal.Min(value, decimal.Max(s.Outstanding(), decimal.Zero))
	refundable := decimal.Max(s.PaidAmount.Sub(s.RefundedAmount), decimal.Zero)
	refund = decimal.Min(value.Sub(credit), refundable)

	s.CreditedAmount = s.CreditedAmount.Add(credit)
	s.RefundedAmount = s.RefundedAmount.Add(refund)
	s.PaymentStatus = derivePaymentStatus(s.PaidAmount, s.CreditedAmount, s.Total)
	s.Touch()
	return credit, refund
}

// derivePaymentStatus marks a sale paid once cash and return credits cover
// the total. Without any cash it stays unpaid.
func derivePaymentStatus(paid, credited, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.Add(credited).GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case paid.IsZero():
		return PaymentStatusUnpaid
	default:
		return PaymentStatusPartial
	}
}

// Outstanding returns the part of the total neither paid nor cleared by returns
func (s *Sale) Outstanding() decimal.Decimal {
	return s.Total.Sub(s.PaidAmount).Sub(s.CreditedAmount)
}

// COGS returns Σ cost × quantity over the items
func (s *Sale) COGS() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.COGS())
	}
	return sum
}

// GrossProfit returns Σ item subtotal − Σ cost × quantity
func (s *Sale) GrossProfit() decimal.Decimal {
	return s.Subtotal.Sub(s.COGS())
}

// Profit returns the gross profit net of custom costs and the discount.
// Tax is collected on behalf of the government and is not profit.
func (s *Sale) Profit() decimal.Decimal {
	return s.GrossProfit().Sub(s.CustomCostTotal).Sub(s.DiscountAmount)
}

// FindItem returns the line with the given id
func (s *Sale) FindItem(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// HasReturns reports whether any item has been returned
func (s *Sale) HasReturns() bool {
	for _, item := range s.Items {
		if item.ReturnedQuantity > 0 {
			return true
		}
	}
	return false
}

// ItemCount returns the number of units sold
func (s *Sale) ItemCount() int64 {
	var n int64
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
