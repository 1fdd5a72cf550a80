package partner

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// Contact holds the reachable details shared by customers and suppliers
type Contact struct {
	Phone   string `gorm:"type:varchar(50)"`
	Email   string `gorm:"type:varchar(200)"`
	Address string `gorm:"type:text"`
}

func (c Contact) normalized() (Contact, error) {
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Address = strings.TrimSpace(c.Address)
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return c, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	if len(c.Phone) > 50 {
		return c, shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	return c, nil
}

// Customer is a buyer that can be attached to sales (and owe receivables)
type Customer struct {
	shared.TenantEntity
	Name string `gorm:"type:varchar(200);not null"`
	Contact
	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name string, contact Contact, notes string) (*Customer, error) {
	c := &Customer{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := c.Update(name, contact, notes); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the customer details
func (c *Customer) Update(name string, contact Contact, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	contact, err := contact.normalized()
	if err != nil {
		return err
	}
	c.Name = name
	c.Contact = contact
	c.Notes = strings.TrimSpace(notes)
	c.Touch()
	return nil
}
