package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/shared"
)

// ListFilter is the query of the customer and supplier lists
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
// Customer DTOs
// =============================================================================

// CustomerRequest creates or updates a customer
type CustomerRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Phone     string     `json:"phone" binding:"max=50"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Address   string     `json:"address"`
	Notes     string     `json:"notes"`
	CreatedBy *uuid.UUID `json:"-"`
}

func (r CustomerRequest) contact() partner.Contact {
	return partner.Contact{Phone: r.Phone, Email: r.Email, Address: r.Address}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// SupplierRequest creates or updates a supplier
type SupplierRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string     `json:"contact_person" binding:"max=100"`
	Phone         string     `json:"phone" binding:"max=50"`
	Email         string     `json:"email" binding:"omitempty,email"`
	Address       string     `json:"address"`
	CreatedBy     *uuid.UUID `json:"-"`
}

func (r SupplierRequest) contact() partner.Contact {
	return partner.Contact{Phone: r.Phone, Email: r.Email, Address: r.Address}
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
