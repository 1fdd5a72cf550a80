package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// Category groups products for browsing and reporting
type Category struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name, description string) (*Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}
	return &Category{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Description:  strings.TrimSpace(description),
	}, nil
}

// Update changes name and description
func (c *Category) Update(name, description string) error {
	name, err := validateCategoryName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Touch()
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return "", shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return name, nil
}
