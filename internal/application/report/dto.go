package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/report"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
)

// ReportQuery narrows a report. Dates are calendar days in the store's timezone.
type ReportQuery struct {
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=paid unpaid partial"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,oneof=cash card transfer qris ewallet"`
	ProductID     string `form:"product_id" binding:"omitempty,uuid"`
	CategoryID    string `form:"category_id" binding:"omitempty,uuid"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
}

// TopProductsQuery ranks products over a report query
type TopProductsQuery struct {
	ReportQuery
	By    string `form:"by" binding:"omitempty,oneof=quantity revenue"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q ReportQuery) toFilter(loc *time.Location) (report.Filter, error) {
	from, to, err := shared.DayRange(q.From, q.To, loc)
	if err != nil {
		return report.Filter{}, err
	}
	f := report.Filter{From: from, To: to}
	if q.PaymentStatus != "" {
		status := sales.PaymentStatus(q.PaymentStatus)
		f.PaymentStatus = &status
	}
	if q.PaymentMethod != "" {
		method := sales.PaymentMethod(q.PaymentMethod)
		f.PaymentMethod = &method
	}
	if f.ProductID, err = parseID(q.ProductID, "product_id"); err != nil {
		return report.Filter{}, err
	}
	if f.CategoryID, err = parseID(q.CategoryID, "category_id"); err != nil {
		return report.Filter{}, err
	}
	if f.CustomerID, err = parseID(q.CustomerID, "customer_id"); err != nil {
		return report.Filter{}, err
	}
	return f, nil
}

func parseID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, shared.InvalidInput(field + " must be a UUID")
	}
	return &id, nil
}

// FinancialReport is the summary together with the filter it was computed over
type FinancialReport struct {
	Filter  report.Filter  `json:"filter"`
	Summary report.Summary `json:"summary"`
}

// DailyReport is the per-day series of a filter
type DailyReport struct {
	Filter report.Filter         `json:"filter"`
	Days   []report.DailySummary `json:"days"`
}

// TopProductsReport is the product ranking of a filter
type TopProductsReport struct {
	Filter   report.Filter               `json:"filter"`
	By       report.RankBy               `json:"by"`
	Products []report.ProductPerformance `json:"products"`
}
