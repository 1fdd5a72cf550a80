package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/identity"
)

// RegisterRequest creates a new owner account (and tenant)
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest contains the credentials for a login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the issued token and the signed-in user
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// LogoutInput identifies the token being revoked
type LogoutInput struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// CreateCashierRequest creates a cashier under the owner's tenant
type CreateCashierRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateCashierRequest changes a cashier; nil fields are left untouched
type UpdateCashierRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	Active   *bool   `json:"active"`
}

// UserListFilter is the query of the user list
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=owner cashier"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uuid.UUID     `json:"id"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	Role        identity.Role `json:"role"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Active      bool          `json:"active"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ToUserDTO converts a domain user
func ToUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Role:        u.Role,
		Name:        u.Name,
		Email:       u.Email,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// TenantContext is what every authenticated request runs as
type TenantContext struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     identity.Role
	Name     string
}

// IsOwner reports whether the caller owns the tenant
func (t TenantContext) IsOwner() bool {
	return t.Role == identity.RoleOwner
}
