package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name    string
		sku     string
		pname   string
		price   decimal.Decimal
		cost    decimal.Decimal
		wantErr string
	}{
		{"valid", "kop-01", "Kopi Susu", decimal.NewFromInt(18000), decimal.NewFromInt(7000), ""},
		{"empty sku", " ", "Kopi", decimal.NewFromInt(1), decimal.Zero, "INVALID_SKU"},
		{"empty name", "A1", "", decimal.NewFromInt(1), decimal.Zero, "INVALID_NAME"},
		{"negative price", "A1", "Kopi", decimal.NewFromInt(-1), decimal.Zero, "INVALID_PRICE"},
		{"negative cost", "A1", "Kopi", decimal.NewFromInt(1), decimal.NewFromInt(-1), "INVALID_COST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tenantID, tt.sku, tt.pname, "", tt.price, tt.cost)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, errCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "KOP-01", p.SKU)
			assert.Equal(t, "pcs", p.Unit)
			assert.Equal(t, tenantID, p.TenantID)
			assert.True(t, p.Active)
			assert.True(t, p.TrackStock)
			assert.True(t, p.Margin().Equal(decimal.NewFromInt(11000)))
		})
	}
}

func TestProduct_Stock(t *testing.T) {
	p, err := NewProduct(uuid.New(), "A1", "Roti", "pcs", decimal.NewFromInt(5000), decimal.NewFromInt(2000))
	require.NoError(t, err)

	require.NoError(t, p.SetStock(10))
	require.NoError(t, p.SetMinStock(3))

	assert.NoError(t, p.CanSell(10))
	assert.Equal(t, "INSUFFICIENT_STOCK", errCode(p.CanSell(11)))
	assert.Equal(t, "INVALID_QUANTITY", errCode(p.CanSell(0)))

	require.NoError(t, p.AdjustStock(-7))
	assert.Equal(t, int64(3), p.Stock)
	assert.True(t, p.IsLowStock())

	err = p.AdjustStock(-4)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, int64(3), p.Stock)

	assert.Equal(t, "INVALID_STOCK", errCode(p.SetStock(-1)))
}

func TestProduct_UntrackedStock(t *testing.T) {
	p, _ := NewProduct(uuid.New(), "SVC", "Jasa Bungkus", "", decimal.NewFromInt(1000), decimal.Zero)
	p.SetTrackStock(false)
	assert.NoError(t, p.CanSell(100))
	assert.False(t, p.IsLowStock())

	p.SetActive(false)
	assert.Equal(t, "PRODUCT_INACTIVE", errCode(p.CanSell(1)))
}

func TestRawMaterial_AdjustStock(t *testing.T) {
	m, err := NewRawMaterial(uuid.New(), "Susu", "ml", decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, m.SetStock(decimal.NewFromInt(1000)))

	require.NoError(t, m.AdjustStock(decimal.NewFromInt(-250)))
	assert.True(t, m.Stock.Equal(decimal.NewFromInt(750)))

	err = m.AdjustStock(decimal.NewFromInt(-751))
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.True(t, m.Stock.Equal(decimal.NewFromInt(750)))
}

func TestRawMaterial_Validation(t *testing.T) {
	_, err := NewRawMaterial(uuid.New(), "", "kg", decimal.Zero)
	assert.Equal(t, "INVALID_NAME", errCode(err))
	_, err = NewRawMaterial(uuid.New(), "Gula", "", decimal.Zero)
	assert.Equal(t, "INVALID_UNIT", errCode(err))
	_, err = NewRawMaterial(uuid.New(), "Gula", "kg", decimal.NewFromInt(-5))
	assert.Equal(t, "INVALID_COST", errCode(err))
}

func TestProductMaterial_Consumption(t *testing.T) {
	pm, err := NewProductMaterial(uuid.New(), uuid.New(), uuid.New(), decimal.RequireFromString("0.25"))
	require.NoError(t, err)
	assert.True(t, pm.Consumption(3).Equal(decimal.RequireFromString("0.75")))

	_, err = NewProductMaterial(uuid.New(), uuid.New(), uuid.New(), decimal.Zero)
	assert.Equal(t, "INVALID_QUANTITY", errCode(err))
}

func TestCategory(t *testing.T) {
	c, err := NewCategory(uuid.New(), "  Minuman ", " dingin ")
	require.NoError(t, err)
	assert.Equal(t, "Minuman", c.Name)
	assert.Equal(t, "dingin", c.Description)

	assert.Equal(t, "INVALID_NAME", errCode(c.Update("", "")))
}
