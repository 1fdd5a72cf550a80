package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LeaveService files and decides leave requests
type LeaveService struct {
	tx             shared.TransactionManager
	leaveRepo      hr.LeaveRepository
	employeeRepo   hr.EmployeeRepository
	attendanceRepo hr.AttendanceRepository
	location       *time.Location
	logger         *zap.Logger
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(
	tx shared.TransactionManager,
	leaveRepo hr.LeaveRepository,
	employeeRepo hr.EmployeeRepository,
	attendanceRepo hr.AttendanceRepository,
	location *time.Location,
	logger *zap.Logger,
) *LeaveService {
	if location == nil {
		location = time.UTC
	}
	return &LeaveService{
		tx:             tx,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		location:       location,
		logger:         logger,
	}
}

// Create files a pending request
func (s *LeaveService) Create(ctx context.Context, tenantID uuid.UUID, req LeaveRequestInput) (*LeaveResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee not found")
		}
		return nil, err
	}
	start, err := time.ParseInLocation(shared.DateLayout, req.StartDate, s.location)
	if err != nil {
		return nil, shared.InvalidInput("start_date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(shared.DateLayout, req.EndDate, s.location)
	if err != nil {
		return nil, shared.InvalidInput("end_date must be YYYY-MM-DD")
	}

	leave, err := hr.NewLeaveRequest(employee, req.Type, start, end, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := s.leaveRepo.Save(ctx, leave); err != nil {
		return nil, err
	}
	resp := ToLeaveResponse(leave)
	return &resp, nil
}

// List retrieves leave requests with filtering and pagination
func (s *LeaveService) List(ctx context.Context, tenantID uuid.UUID, filter LeaveListFilter) (shared.Paginated[LeaveResponse], error) {
	f := filter.toFilter().
		With("employee_id", filter.EmployeeID).
		With("status", filter.Status).
		With("type", filter.Type)

	leaves, total, err := s.leaveRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[LeaveResponse]{}, err
	}
	items := make([]LeaveResponse, len(leaves))
	for i := range leaves {
		items[i] = ToLeaveResponse(&leaves[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Approve accepts a pending request and marks every covered day as leave.
// Days that already have an attendance record keep it.
func (s *LeaveService) Approve(ctx context.Context, tenantID, id, decidedBy uuid.UUID, req LeaveDecision) (*LeaveResponse, error) {
	var leave *hr.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		leave, err = s.leaveRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := leave.Approve(decidedBy, req.Note); err != nil {
			return err
		}
		if err := s.leaveRepo.Save(ctx, leave); err != nil {
			return err
		}
		return s.recordLeaveDays(ctx, leave)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Leave approved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("leave_id", leave.ID.String()),
		zap.Int("days", leave.Days()),
	)
	resp := ToLeaveResponse(leave)
	return &resp, nil
}

// Reject declines a pending request
func (s *LeaveService) Reject(ctx context.Context, tenantID, id, decidedBy uuid.UUID, req LeaveDecision) (*LeaveResponse, error) {
	leave, err := s.leaveRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := leave.Reject(decidedBy, req.Note); err != nil {
		return nil, err
	}
	if err := s.leaveRepo.Save(ctx, leave); err != nil {
		return nil, err
	}
	resp := ToLeaveResponse(leave)
	return &resp, nil
}

func (s *LeaveService) recordLeaveDays(ctx context.Context, leave *hr.LeaveRequest) error {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, leave.TenantID, leave.EmployeeID)
	if err != nil {
		return err
	}
	first := hr.DayOf(leave.StartDate.In(s.location))
	last := hr.DayOf(leave.EndDate.In(s.location))
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		_, err := s.attendanceRepo.FindByEmployeeAndDate(ctx, leave.TenantID, employee.ID, day)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		record, err := hr.NewDayRecord(employee, day, hr.AttendanceLeave, string(leave.Type))
		if err != nil {
			return err
		}
		if err := s.attendanceRepo.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
