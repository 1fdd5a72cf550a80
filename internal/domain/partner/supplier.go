package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// Supplier provides products and raw materials
type Supplier struct {
	shared.TenantEntity
	Name          string `gorm:"type:varchar(200);not null"`
	ContactPerson string `gorm:"type:varchar(100)"`
	Contact
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, name, contactPerson string, contact Contact) (*Supplier, error) {
	s := &Supplier{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := s.Update(name, contactPerson, contact); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the supplier details
func (s *Supplier) Update(name, contactPerson string, contact Contact) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	contact, err := contact.normalized()
	if err != nil {
		return err
	}
	s.Name = name
	s.ContactPerson = strings.TrimSpace(contactPerson)
	s.Contact = contact
	s.Touch()
	return nil
}
