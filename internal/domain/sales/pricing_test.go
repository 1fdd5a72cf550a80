package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		discount string
		tax      string
		wantDisc string
		wantTax  string
		want     string
	}{
		{"register example", "25000", "10", "5", "2500", "1125", "23625"},
		{"no discount no tax", "15000", "0", "0", "0", "0", "15000"},
		{"tax only", "10000", "0", "11", "0", "1100", "11100"},
		{"full discount", "10000", "100", "10", "10000", "0", "0"},
		{"rounding to cents", "3333", "3.5", "2.5", "116.66", "80.41", "3296.75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotals(d(tt.subtotal), d(tt.discount), d(tt.tax))
			require.NoError(t, err)
			assert.True(t, got.DiscountAmount.Equal(d(tt.wantDisc)), "discount %s", got.DiscountAmount)
			assert.True(t, got.TaxAmount.Equal(d(tt.wantTax)), "tax %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(d(tt.want)), "total %s", got.Total)
			// decomposition holds exactly
			assert.True(t, got.Total.Equal(got.Subtotal.Sub(got.DiscountAmount).Add(got.TaxAmount)))
			assert.True(t, got.Taxable().Equal(got.Subtotal.Sub(got.DiscountAmount)))
		})
	}
}

func TestComputeTotals_Invalid(t *testing.T) {
	_, err := ComputeTotals(d("-1"), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
	_, err = ComputeTotals(d("100"), d("101"), decimal.Zero)
	assert.Error(t, err)
	_, err = ComputeTotals(d("100"), decimal.Zero, d("-5"))
	assert.Error(t, err)
}

func sum(parts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p)
	}
	return total
}

func TestProrate(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		weights []string
		want    []string
	}{
		{"proportional", "3000", []string{"20000", "5000"}, []string{"2400", "600"}},
		{"thirds", "100", []string{"1", "1", "1"}, []string{"33.34", "33.33", "33.33"}},
		{"all zero weights split evenly", "10", []string{"0", "0"}, []string{"5", "5"}},
		{"tiny tail weight stays non-negative", "0.02", []string{"1", "1", "1", "0.0001"}, []string{"0.01", "0.01", "0", "0"}},
		{"zero total", "0", []string{"5", "7"}, []string{"0", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := make([]decimal.Decimal, len(tt.weights))
			for i, w := range tt.weights {
				weights[i] = d(w)
			}
			parts := Prorate(d(tt.total), weights)
			require.Len(t, parts, len(tt.want))
			for i, w := range tt.want {
				assert.True(t, parts[i].Equal(d(w)), "part %d = %s, want %s", i, parts[i], w)
				assert.False(t, parts[i].IsNegative())
			}
			assert.True(t, sum(parts).Equal(d(tt.total)))
		})
	}
}

func TestProrate_Empty(t *testing.T) {
	assert.Empty(t, Prorate(d("10"), nil))
}

func TestProrateCustomCosts(t *testing.T) {
	items := []SaleItem{
		{Quantity: 2, Subtotal: d("20000")},
		{Quantity: 1, Subtotal: d("5000")},
		{Quantity: 3, Subtotal: d("12500")},
	}
	ProrateCustomCosts(items, d("1000"))

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.HPPExtra)
	}
	assert.True(t, total.Equal(d("1000")))
	// equal remainders: the leftover cent goes to the first line
	assert.True(t, items[0].HPPExtra.Equal(d("533.34")))
	assert.True(t, items[1].HPPExtra.Equal(d("133.33")))
	assert.True(t, items[2].HPPExtra.Equal(d("333.33")))
}

func TestProrateCustomCosts_FreeItemsUseQuantity(t *testing.T) {
	items := []SaleItem{
		{Quantity: 1, Subtotal: decimal.Zero},
		{Quantity: 3, Subtotal: decimal.Zero},
	}
	ProrateCustomCosts(items, d("400"))
	assert.True(t, items[0].HPPExtra.Equal(d("100")))
	assert.True(t, items[1].HPPExtra.Equal(d("300")))
}
