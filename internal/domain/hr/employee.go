package hr

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Employee is a staff member of the store. Employees are tracked separately
// from login users: an employee may never touch the register.
type Employee struct {
	shared.TenantEntity
	Name               string          `gorm:"type:varchar(200);not null"`
	Position           string          `gorm:"type:varchar(100)"`
	Phone              string          `gorm:"type:varchar(50)"`
	Email              string          `gorm:"type:varchar(200)"`
	Salary             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ProfitSharePercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	JoinedAt           time.Time       `gorm:"not null"`
	Active             bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// EmployeeDetails carries the editable fields of an employee
type EmployeeDetails struct {
	Name               string
	Position           string
	Phone              string
	Email              string
	Salary             decimal.Decimal
	ProfitSharePercent decimal.Decimal
	JoinedAt           time.Time
}

// NewEmployee creates an active employee
func NewEmployee(tenantID uuid.UUID, details EmployeeDetails) (*Employee, error) {
	e := &Employee{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Active:       true,
	}
	if err := e.Update(details); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the employee details
func (e *Employee) Update(details EmployeeDetails) error {
	name := strings.TrimSpace(details.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot exceed 200 characters")
	}
	email := strings.ToLower(strings.TrimSpace(details.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	if details.Salary.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}
	if !shared.ValidPercent(details.ProfitSharePercent) {
		return shared.NewDomainError("INVALID_PERCENT", "Profit share percent must be between 0 and 100")
	}

	e.Name = name
	e.Position = strings.TrimSpace(details.Position)
	e.Phone = strings.TrimSpace(details.Phone)
	e.Email = email
	e.Salary = details.Salary
	e.ProfitSharePercent = details.ProfitSharePercent
	if !details.JoinedAt.IsZero() {
		e.JoinedAt = details.JoinedAt
	} else if e.JoinedAt.IsZero() {
		e.JoinedAt = time.Now()
	}
	e.Touch()
	return nil
}

// SetActive toggles the employee
func (e *Employee) SetActive(active bool) {
	e.Active = active
	e.Touch()
}

// EarnsProfitShare reports whether sales credited to the employee book a share
func (e *Employee) EarnsProfitShare() bool {
	return e.Active && e.ProfitSharePercent.IsPositive()
}
