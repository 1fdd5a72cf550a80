package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Employee, error)
	// FindAllForTenant supports filters: active
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Employee, int64, error)
	Save(ctx context.Context, employee *Employee) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// AttendanceRepository defines the interface for attendance persistence
type AttendanceRepository interface {
	// FindByEmployeeAndDate returns the employee's record for the day, or ErrNotFound
	FindByEmployeeAndDate(ctx context.Context, tenantID, employeeID uuid.UUID, day time.Time) (*Attendance, error)
	// FindAllForTenant supports filters: employee_id, status, from, to
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Attendance, int64, error)
	Save(ctx context.Context, attendance *Attendance) error
}

// LeaveRepository defines the interface for leave request persistence
type LeaveRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LeaveRequest, error)
	// FindAllForTenant supports filters: employee_id, status, type
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LeaveRequest, int64, error)
	Save(ctx context.Context, leave *LeaveRequest) error
}

// ProfitShareRepository defines the interface for profit share persistence
type ProfitShareRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProfitShare, error)
	// FindAllForTenant supports filters: employee_id, sale_id, status, from, to
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProfitShare, int64, error)
	// FindForSummary returns every share matching the filter, unpaginated
	FindForSummary(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProfitShare, error)
	Create(ctx context.Context, share *ProfitShare) error
	Save(ctx context.Context, share *ProfitShare) error
	// DeleteUnpaidBySale removes the sale's unpaid shares and returns how many were removed
	DeleteUnpaidBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error)
	CountByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) (int64, error)
}
