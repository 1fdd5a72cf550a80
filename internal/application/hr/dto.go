package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
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
}

func (f ListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
}

// =============================================================================
// Employee DTOs
// =============================================================================

// EmployeeRequest creates or updates an employee
type EmployeeRequest struct {
	Name               string          `json:"name" binding:"required,min=1,max=200"`
	Position           string          `json:"position" binding:"max=100"`
	Phone              string          `json:"phone" binding:"max=50"`
	Email              string          `json:"email" binding:"omitempty,email"`
	Salary             decimal.Decimal `json:"salary"`
	ProfitSharePercent decimal.Decimal `json:"profit_share_percent"`
	JoinedAt           *time.Time      `json:"joined_at"`
	Active             *bool           `json:"active"`
	CreatedBy          *uuid.UUID      `json:"-"`
}

func (r EmployeeRequest) details() hr.EmployeeDetails {
	d := hr.EmployeeDetails{
		Name:               r.Name,
		Position:           r.Position,
		Phone:              r.Phone,
		Email:              r.Email,
		Salary:             r.Salary,
		ProfitSharePercent: r.ProfitSharePercent,
	}
	if r.JoinedAt != nil {
		d.JoinedAt = *r.JoinedAt
	}
	return d
}

// EmployeeListFilter is the query of the employee list
type EmployeeListFilter struct {
	ListFilter
	Active *bool `form:"active"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Position           string          `json:"position"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	Salary             decimal.Decimal `json:"salary"`
	ProfitSharePercent decimal.Decimal `json:"profit_share_percent"`
	JoinedAt           time.Time       `json:"joined_at"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Position:           e.Position,
		Phone:              e.Phone,
		Email:              e.Email,
		Salary:             e.Salary,
		ProfitSharePercent: e.ProfitSharePercent,
		JoinedAt:           e.JoinedAt,
		Active:             e.Active,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// =============================================================================
// Attendance DTOs
// =============================================================================

// ClockRequest clocks an employee in or out
type ClockRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	Notes      string    `json:"notes" binding:"max=500"`
}

// AttendanceListFilter is the query of the attendance list
type AttendanceListFilter struct {
	ListFilter
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=present late absent leave"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceResponse represents an attendance record in API responses
type AttendanceResponse struct {
	ID          uuid.UUID           `json:"id"`
	EmployeeID  uuid.UUID           `json:"employee_id"`
	Date        string              `json:"date"`
	CheckIn     *time.Time          `json:"check_in,omitempty"`
	CheckOut    *time.Time          `json:"check_out,omitempty"`
	Status      hr.AttendanceStatus `json:"status"`
	WorkedHours float64             `json:"worked_hours"`
	Notes       string              `json:"notes"`
}

// ToAttendanceResponse converts a domain attendance record
func ToAttendanceResponse(a *hr.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date.Format(shared.DateLayout),
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Status:      a.Status,
		WorkedHours: a.WorkedHours().Hours(),
		Notes:       a.Notes,
	}
}

// =============================================================================
// Leave DTOs
// =============================================================================

// LeaveRequestInput asks for days off
type LeaveRequestInput struct {
	EmployeeID uuid.UUID    `json:"employee_id" binding:"required"`
	Type       hr.LeaveType `json:"type" binding:"required,oneof=annual sick unpaid other"`
	StartDate  string       `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string       `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason     string       `json:"reason" binding:"max=1000"`
}

// LeaveDecision approves or rejects a request
type LeaveDecision struct {
	Note string `json:"note" binding:"max=500"`
}

// LeaveListFilter is the query of the leave list
type LeaveListFilter struct {
	ListFilter
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Type       string `form:"type" binding:"omitempty,oneof=annual sick unpaid other"`
}

// LeaveResponse represents a leave request in API responses
type LeaveResponse struct {
	ID           uuid.UUID      `json:"id"`
	EmployeeID   uuid.UUID      `json:"employee_id"`
	Type         hr.LeaveType   `json:"type"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Days         int            `json:"days"`
	Reason       string         `json:"reason"`
	Status       hr.LeaveStatus `json:"status"`
	DecidedBy    *uuid.UUID     `json:"decided_by,omitempty"`
	DecidedAt    *time.Time     `json:"decided_at,omitempty"`
	DecisionNote string         `json:"decision_note,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ToLeaveResponse converts a domain leave request
func ToLeaveResponse(l *hr.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		Type:         l.Type,
		StartDate:    l.StartDate.Format(shared.DateLayout),
		EndDate:      l.EndDate.Format(shared.DateLayout),
		Days:         l.Days(),
		Reason:       l.Reason,
		Status:       l.Status,
		DecidedBy:    l.DecidedBy,
		DecidedAt:    l.DecidedAt,
		DecisionNote: l.DecisionNote,
		CreatedAt:    l.CreatedAt,
	}
}

// =============================================================================
// Profit share DTOs
// =============================================================================

// ProfitShareListFilter is the query of the profit share list and summary
type ProfitShareListFilter struct {
	ListFilter
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	SaleID     string `form:"sale_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=unpaid paid"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ProfitShareResponse represents a profit share in API responses
type ProfitShareResponse struct {
	ID         uuid.UUID            `json:"id"`
	EmployeeID uuid.UUID            `json:"employee_id"`
	SaleID     uuid.UUID            `json:"sale_id"`
	Percent    decimal.Decimal      `json:"percent"`
	BaseProfit decimal.Decimal      `json:"base_profit"`
	Amount     decimal.Decimal      `json:"amount"`
	Status     hr.ProfitShareStatus `json:"status"`
	PaidAt     *time.Time           `json:"paid_at,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// ToProfitShareResponse converts a domain profit share
func ToProfitShareResponse(p *hr.ProfitShare) ProfitShareResponse {
	return ProfitShareResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		SaleID:     p.SaleID,
		Percent:    p.Percent,
		BaseProfit: p.BaseProfit,
		Amount:     p.Amount,
		Status:     p.Status,
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
	}
}
