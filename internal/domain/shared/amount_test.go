package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		base string
		pct  string
		want string
	}{
		{"ten percent", "25000", "10", "2500"},
		{"five percent of taxable", "22500", "5", "1125"},
		{"rounds to cents", "10", "33.333", "3.33"},
		{"zero", "0", "50", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(decimal.RequireFromString(tt.base), decimal.RequireFromString(tt.pct))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestValidPercent(t *testing.T) {
	assert.True(t, ValidPercent(decimal.Zero))
	assert.True(t, ValidPercent(decimal.NewFromInt(100)))
	assert.False(t, ValidPercent(decimal.NewFromInt(-1)))
	assert.False(t, ValidPercent(decimal.NewFromInt(101)))
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{PageSize: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.PageSize)
	assert.Equal(t, "desc", f.OrderDir)
	assert.NotNil(t, f.Filters)
	assert.Equal(t, 0, f.Offset())

	f.Page = 3
	assert.Equal(t, 200, f.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)
}

func TestDomainError_Is(t *testing.T) {
	err := NotFound("product")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "product not found", err.Error())
}
