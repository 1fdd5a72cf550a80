package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrAlreadyClockedIn = shared.NewDomainError("ALREADY_CLOCKED_IN", "Employee already has an attendance record today")
	ErrNotClockedIn     = shared.NewDomainError("NOT_CLOCKED_IN", "Employee has not clocked in today")
)

// SettingsLoader returns a tenant's settings, falling back to the defaults
type SettingsLoader interface {
	Load(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error)
}

// AttendanceService records clock-ins and clock-outs
type AttendanceService struct {
	attendanceRepo hr.AttendanceRepository
	employeeRepo   hr.EmployeeRepository
	settings       SettingsLoader
	location       *time.Location
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo hr.AttendanceRepository,
	employeeRepo hr.EmployeeRepository,
	settingsLoader SettingsLoader,
	location *time.Location,
	logger *zap.Logger,
) *AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		settings:       settingsLoader,
		location:       location,
		logger:         logger,
		now:            time.Now,
	}
}

// ClockIn opens today's record. Arrivals after the tenant's work start are late.
func (s *AttendanceService) ClockIn(ctx context.Context, tenantID uuid.UUID, req ClockRequest) (*AttendanceResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.location)

	_, err = s.attendanceRepo.FindByEmployeeAndDate(ctx, tenantID, employee.ID, now)
	switch {
	case err == nil:
		return nil, ErrAlreadyClockedIn
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	cfg, err := s.settings.Load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	record, err := hr.ClockIn(employee, now, cfg.WorkStart(), req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Employee clocked in",
		zap.String("tenant_id", tenantID.String()),
		zap.String("employee_id", employee.ID.String()),
		zap.String("status", string(record.Status)),
	)
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// ClockOut closes today's record
func (s *AttendanceService) ClockOut(ctx context.Context, tenantID uuid.UUID, req ClockRequest) (*AttendanceResponse, error) {
	if _, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, req.EmployeeID); err != nil {
		return nil, err
	}
	now := s.now().In(s.location)

	record, err := s.attendanceRepo.FindByEmployeeAndDate(ctx, tenantID, req.EmployeeID, now)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	if err := record.ClockOut(now); err != nil {
		return nil, err
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	if err := s.attendanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// List retrieves attendance records with filtering and pagination
func (s *AttendanceService) List(ctx context.Context, tenantID uuid.UUID, filter AttendanceListFilter) (shared.Paginated[AttendanceResponse], error) {
	from, to, err := shared.DayRange(filter.From, filter.To, s.location)
	if err != nil {
		return shared.Paginated[AttendanceResponse]{}, err
	}
	f := filter.toFilter().
		With("employee_id", filter.EmployeeID).
		With("status", filter.Status).
		With("from", from).
		With("to", to)

	records, total, err := s.attendanceRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[AttendanceResponse]{}, err
	}
	items := make([]AttendanceResponse, len(records))
	for i := range records {
		items[i] = ToAttendanceResponse(&records[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}
