package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func TestNewOwner(t *testing.T) {
	owner, err := NewOwner("Budi", " Budi@Example.com ", "secret123")
	require.NoError(t, err)

	assert.Equal(t, RoleOwner, owner.Role)
	assert.Equal(t, owner.ID, owner.TenantID)
	assert.Equal(t, "budi@example.com", owner.Email)
	assert.True(t, owner.Active)
	assert.True(t, owner.VerifyPassword("secret123"))
	assert.False(t, owner.VerifyPassword("wrong-pass"))
}

func TestNewOwner_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		code     string
	}{
		{"empty name", "  ", "a@b.com", "secret123", "INVALID_NAME"},
		{"bad email", "Budi", "not-an-email", "secret123", "INVALID_EMAIL"},
		{"empty email", "Budi", "", "secret123", "INVALID_EMAIL"},
		{"short password", "Budi", "a@b.com", "short", "INVALID_PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOwner(tt.userName, tt.email, tt.password)
			require.Error(t, err)
			assertCode(t, err, tt.code)
		})
	}
}

func TestNewCashier(t *testing.T) {
	owner, err := NewOwner("Owner", "owner@example.com", "secret123")
	require.NoError(t, err)

	cashier, err := NewCashier(owner, "Kasir", "kasir@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, RoleCashier, cashier.Role)
	assert.Equal(t, owner.ID, cashier.TenantID)
	assert.NotEqual(t, owner.ID, cashier.ID)

	_, err = NewCashier(cashier, "Other", "other@example.com", "secret123")
	assertCode(t, err, "INVALID_OWNER")
}

func TestUser_Deactivate(t *testing.T) {
	owner, _ := NewOwner("Owner", "owner@example.com", "secret123")
	cashier, _ := NewCashier(owner, "Kasir", "kasir@example.com", "secret123")

	assertCode(t, owner.Deactivate(), "CANNOT_DEACTIVATE_OWNER")

	require.NoError(t, cashier.Deactivate())
	assert.False(t, cashier.Active)

	cashier.Activate()
	assert.True(t, cashier.Active)
}

func TestUser_SetPassword(t *testing.T) {
	owner, _ := NewOwner("Owner", "owner@example.com", "secret123")
	require.NoError(t, owner.SetPassword("another-secret"))
	assert.True(t, owner.VerifyPassword("another-secret"))
	assert.False(t, owner.VerifyPassword("secret123"))
}
