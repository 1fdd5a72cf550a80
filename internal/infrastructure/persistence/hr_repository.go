package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements hr.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

var _ hr.EmployeeRepository = (*GormEmployeeRepository)(nil)

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*hr.Employee, error) {
	var employee hr.Employee
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&employee, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "employee")
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]hr.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []hr.Employee
	err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.Employee, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&hr.Employee{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "name", "position", "email", "phone"))
	if active, ok := boolFilter(filter, "active"); ok {
		q = q.Where("active = ?", active)
	}
	return list[hr.Employee](q, filter, EmployeeSortFields, "name")
}

func (r *GormEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	return conn(ctx, r.db).Save(employee).Error
}

func (r *GormEmployeeRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteForTenant(ctx, r.db, &hr.Employee{}, tenantID, id, "employee")
}

// GormAttendanceRepository implements hr.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

var _ hr.AttendanceRepository = (*GormAttendanceRepository)(nil)

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByEmployeeAndDate matches the record whose date falls on the calendar day of day
func (r *GormAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, tenantID, employeeID uuid.UUID, day time.Time) (*hr.Attendance, error) {
	start := hr.DayOf(day)
	var attendance hr.Attendance
	err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).
		Where("employee_id = ? AND date >= ? AND date < ?", employeeID, start, start.AddDate(0, 0, 1)).
		First(&attendance).Error
	if err != nil {
		return nil, notFound(err, "attendance")
	}
	return &attendance, nil
}

// FindAllForTenant lists attendance records filtered by date range, employee_id and status
func (r *GormAttendanceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.Attendance, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&hr.Attendance{}).
		Scopes(tenantScope(tenantID), rangeScope(filter, "date"))
	if id, ok := uuidFilter(filter, "employee_id"); ok {
		q = q.Where("employee_id = ?", id)
	}
	if status, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", status)
	}
	return list[hr.Attendance](q, filter, AttendanceSortFields, "date")
}

func (r *GormAttendanceRepository) Save(ctx context.Context, attendance *hr.Attendance) error {
	return conn(ctx, r.db).Save(attendance).Error
}

// GormLeaveRepository implements hr.LeaveRepository using GORM
type GormLeaveRepository struct {
	db *gorm.DB
}

var _ hr.LeaveRepository = (*GormLeaveRepository)(nil)

// NewGormLeaveRepository creates a new GormLeaveRepository
func NewGormLeaveRepository(db *gorm.DB) *GormLeaveRepository {
	return &GormLeaveRepository{db: db}
}

func (r *GormLeaveRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*hr.LeaveRequest, error) {
	var leave hr.LeaveRequest
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&leave, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "leave request")
	}
	return &leave, nil
}

func (r *GormLeaveRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.LeaveRequest, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&hr.LeaveRequest{}).Scopes(tenantScope(tenantID))
	if id, ok := uuidFilter(filter, "employee_id"); ok {
		q = q.Where("employee_id = ?", id)
	}
	if status, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", status)
	}
	if t, ok := stringFilter(filter, "type"); ok {
		q = q.Where("type = ?", t)
	}
	return list[hr.LeaveRequest](q, filter, LeaveSortFields, "start_date")
}

func (r *GormLeaveRepository) Save(ctx context.Context, leave *hr.LeaveRequest) error {
	return conn(ctx, r.db).Save(leave).Error
}

// GormProfitShareRepository implements hr.ProfitShareRepository using GORM
type GormProfitShareRepository struct {
	db *gorm.DB
}

var _ hr.ProfitShareRepository = (*GormProfitShareRepository)(nil)

// NewGormProfitShareRepository creates a new GormProfitShareRepository
func NewGormProfitShareRepository(db *gorm.DB) *GormProfitShareRepository {
	return &GormProfitShareRepository{db: db}
}

func (r *GormProfitShareRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*hr.ProfitShare, error) {
	var share hr.ProfitShare
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&share, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "profit share")
	}
	return &share, nil
}

func (r *GormProfitShareRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := conn(ctx, r.db).Model(&hr.ProfitShare{}).
		Scopes(tenantScope(tenantID), rangeScope(filter, "created_at"))
	if id, ok := uuidFilter(filter, "employee_id"); ok {
		q = q.Where("employee_id = ?", id)
	}
	if id, ok := uuidFilter(filter, "sale_id"); ok {
		q = q.Where("sale_id = ?", id)
	}
	if status, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", status)
	}
	return q
}

func (r *GormProfitShareRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.ProfitShare, int64, error) {
	filter = filter.Normalize()
	return list[hr.ProfitShare](r.filtered(ctx, tenantID, filter), filter, ProfitShareSortFields, "created_at")
}

// FindForSummary returns every matching share, unpaginated
func (r *GormProfitShareRepository) FindForSummary(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.ProfitShare, error) {
	var shares []hr.ProfitShare
	err := r.filtered(ctx, tenantID, filter.Normalize()).Order("created_at").Find(&shares).Error
	return shares, err
}

func (r *GormProfitShareRepository) Create(ctx context.Context, share *hr.ProfitShare) error {
	return conn(ctx, r.db).Create(share).Error
}

func (r *GormProfitShareRepository) Save(ctx context.Context, share *hr.ProfitShare) error {
	return conn(ctx, r.db).Save(share).Error
}

// DeleteUnpaidBySale removes the sale's unpaid shares
func (r *GormProfitShareRepository) DeleteUnpaidBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Scopes(tenantScope(tenantID)).
		Where("sale_id = ? AND status = ?", saleID, hr.ProfitShareUnpaid).
		Delete(&hr.ProfitShare{})
	return result.RowsAffected, result.Error
}

func (r *GormProfitShareRepository) CountByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&hr.ProfitShare{}).
		Scopes(tenantScope(tenantID)).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}
