package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProfitShareStatus tracks whether a share was handed out
type ProfitShareStatus string

const (
	ProfitShareUnpaid ProfitShareStatus = "unpaid"
	ProfitSharePaid   ProfitShareStatus = "paid"
)

// ProfitShare is an employee's cut of one sale's profit
type ProfitShare struct {
	shared.TenantEntity
	EmployeeID uuid.UUID         `gorm:"type:uuid;not null;index"`
	SaleID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Percent    decimal.Decimal   `gorm:"type:decimal(5,2);not null"`
	BaseProfit decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Amount     decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Status     ProfitShareStatus `gorm:"type:varchar(20);not null;index"`
	PaidAt     *time.Time
}

// TableName returns the table name for GORM
func (ProfitShare) TableName() string {
	return "profit_shares"
}

// NewProfitShare books employee.ProfitSharePercent of a sale profit.
// A negative profit earns nothing.
func NewProfitShare(employee *Employee, saleID uuid.UUID, saleProfit decimal.Decimal) *ProfitShare {
	base := decimal.Max(saleProfit, decimal.Zero)
	return &ProfitShare{
		TenantEntity: shared.NewTenantEntity(employee.TenantID),
		EmployeeID:   employee.ID,
		SaleID:       saleID,
		Percent:      employee.ProfitSharePercent,
		BaseProfit:   shared.RoundMoney(base),
		Amount:       shared.Percent(base, employee.ProfitSharePercent),
		Status:       ProfitShareUnpaid,
	}
}

// MarkPaid records the payout
func (p *ProfitShare) MarkPaid(at time.Time) error {
	if p.Status == ProfitSharePaid {
		return shared.NewDomainError("INVALID_STATE", "Profit share is already paid")
	}
	p.Status = ProfitSharePaid
	p.PaidAt = &at
	p.Touch()
	return nil
}

// ProfitShareSummary totals the shares of one employee
type ProfitShareSummary struct {
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Count        int64           `json:"count"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Unpaid       decimal.Decimal `json:"unpaid"`
}

// Summarize folds shares into one summary per employee, ordered by first appearance
func Summarize(shares []ProfitShare, names map[uuid.UUID]string) []ProfitShareSummary {
	index := make(map[uuid.UUID]int)
	var out []ProfitShareSummary
	for _, s := range shares {
		i, ok := index[s.EmployeeID]
		if !ok {
			i = len(out)
			index[s.EmployeeID] = i
			out = append(out, ProfitShareSummary{
				EmployeeID:   s.EmployeeID,
				EmployeeName: names[s.EmployeeID],
				Total:        decimal.Zero,
				Paid:         decimal.Zero,
				Unpaid:       decimal.Zero,
			})
		}
		sum := &out[i]
		sum.Count++
		sum.Total = sum.Total.Add(s.Amount)
		if s.Status == ProfitSharePaid {
			sum.Paid = sum.Paid.Add(s.Amount)
		} else {
			sum.Unpaid = sum.Unpaid.Add(s.Amount)
		}
	}
	return out
}
