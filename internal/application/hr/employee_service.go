package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EmployeeService handles employee records
type EmployeeService struct {
	employeeRepo hr.EmployeeRepository
	shareRepo    hr.ProfitShareRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo hr.EmployeeRepository, shareRepo hr.ProfitShareRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, shareRepo: shareRepo, logger: logger}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, tenantID uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := hr.NewEmployee(tenantID, req.details())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		employee.SetCreatedBy(*req.CreatedBy)
	}
	if req.Active != nil {
		employee.SetActive(*req.Active)
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetByID retrieves an employee
func (s *EmployeeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List retrieves employees with filtering and pagination
func (s *EmployeeService) List(ctx context.Context, tenantID uuid.UUID, filter EmployeeListFilter) (shared.Paginated[EmployeeResponse], error) {
	f := filter.toFilter().With("active", filter.Active)
	employees, total, err := s.employeeRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[EmployeeResponse]{}, err
	}
	items := make([]EmployeeResponse, len(employees))
	for i := range employees {
		items[i] = ToEmployeeResponse(&employees[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Update replaces the employee details
func (s *EmployeeService) Update(ctx context.Context, tenantID, id uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Update(req.details()); err != nil {
		return nil, err
	}
	if req.Active != nil {
		employee.SetActive(*req.Active)
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Delete removes an employee without profit share history.
// Employees with history are deactivated instead.
func (s *EmployeeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	count, err := s.shareRepo.CountByEmployee(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", "Employee has profit share history; deactivate instead")
	}
	if err := s.employeeRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Employee deleted", zap.String("tenant_id", tenantID.String()), zap.String("employee_id", id.String()))
	return nil
}
