package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the role of a user inside its tenant
type Role string

const (
	RoleOwner   Role = "owner"   // Tenant owner; the tenant id is the owner's id
	RoleCashier Role = "cashier" // Acts on behalf of the owner's tenant
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleCashier
}

// Password cost for bcrypt
var bcryptCost = 12

// User is an account that can sign in.
// TenantID points at the owner account: for an owner it equals ID.
type User struct {
	shared.BaseEntity
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Role         Role      `gorm:"type:varchar(20);not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(200);not null"`
	Active       bool      `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewOwner creates an owner; the owner becomes its own tenant
func NewOwner(name, email, password string) (*User, error) {
	u, err := newUser(RoleOwner, name, email, password)
	if err != nil {
		return nil, err
	}
	u.TenantID = u.ID
	return u, nil
}

// NewCashier creates a cashier attached to the owner's tenant
func NewCashier(owner *User, name, email, password string) (*User, error) {
	if owner == nil || owner.Role != RoleOwner {
		return nil, shared.NewDomainError("INVALID_OWNER", "Cashiers must belong to an owner")
	}
	u, err := newUser(RoleCashier, name, email, password)
	if err != nil {
		return nil, err
	}
	u.TenantID = owner.TenantID
	return u, nil
}

func newUser(role Role, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Role:         role,
		Name:         name,
		Email:        normalized,
		PasswordHash: hash,
		Active:       true,
	}, nil
}

// IsOwner reports whether the user owns its tenant
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// Rename updates the display name
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	u.Name = name
	u.Touch()
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate enables sign-in
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

// Deactivate disables sign-in. Owners cannot be deactivated.
func (u *User) Deactivate() error {
	if u.IsOwner() {
		return shared.NewDomainError("CANNOT_DEACTIVATE_OWNER", "Owner accounts cannot be deactivated")
	}
	u.Active = false
	u.Touch()
	return nil
}

// RecordLogin stamps the last successful sign-in
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}
