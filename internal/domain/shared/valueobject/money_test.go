package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("IDR")
	require.NoError(t, err)
	assert.Equal(t, IDR, c)

	_, err = ParseCurrency("XYZ1")
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoney(decimal.NewFromInt(1000), IDR)
	b := NewMoney(decimal.NewFromInt(500), IDR)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(1500)))

	_, err = a.Add(NewMoney(decimal.NewFromInt(1), USD))
	assert.Error(t, err)
}

func TestMoney_DefaultsToRupiah(t *testing.T) {
	m := NewMoney(decimal.NewFromInt(1), "")
	assert.Equal(t, IDR, m.Currency())
}

func TestMoney_Format(t *testing.T) {
	t.Run("rupiah uses symbol and no cents", func(t *testing.T) {
		out := NewMoney(decimal.NewFromInt(23625), IDR).Format()
		assert.Contains(t, out, "Rp")
		assert.NotContains(t, out, ",00")
	})

	t.Run("dollar keeps cents", func(t *testing.T) {
		out := NewMoney(decimal.RequireFromString("12.5"), USD).Format()
		assert.Contains(t, out, "$")
		assert.Contains(t, out, "12.50")
	})
}

func TestCurrency_Symbol(t *testing.T) {
	assert.Equal(t, "Rp", IDR.Symbol())
	assert.Equal(t, "RM", MYR.Symbol())
	assert.Equal(t, "EUR", Currency("EUR").Symbol())
}
