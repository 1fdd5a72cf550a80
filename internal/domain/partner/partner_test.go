package partner

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(uuid.New(), " Siti ", Contact{Phone: " 0812 ", Email: "Siti@Mail.com"}, "langganan")
	require.NoError(t, err)
	assert.Equal(t, "Siti", c.Name)
	assert.Equal(t, "0812", c.Phone)
	assert.Equal(t, "siti@mail.com", c.Email)

	_, err = NewCustomer(uuid.New(), "", Contact{}, "")
	assert.Equal(t, "INVALID_NAME", code(err))

	_, err = NewCustomer(uuid.New(), "Siti", Contact{Email: "nope"}, "")
	assert.Equal(t, "INVALID_EMAIL", code(err))
}

func TestNewSupplier(t *testing.T) {
	s, err := NewSupplier(uuid.New(), "PT Susu Segar", "Andi", Contact{Address: " Bandung "})
	require.NoError(t, err)
	assert.Equal(t, "Andi", s.ContactPerson)
	assert.Equal(t, "Bandung", s.Address)

	assert.Equal(t, "INVALID_NAME", code(s.Update(" ", "", Contact{})))
}
