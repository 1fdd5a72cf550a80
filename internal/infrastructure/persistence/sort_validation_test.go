package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := map[string]string{
		"asc":     "ASC",
		" ASC ":   "ASC",
		"desc":    "DESC",
		"":        "DESC",
		"; DROP ": "DESC",
	}
	for in, want := range tests {
		assert.Equal(t, want, ValidateSortOrder(in), in)
	}
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "name", ValidateSortField("name", ProductSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", ProductSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("name; DROP TABLE products", ProductSortFields, "created_at"))
	assert.Equal(t, "sold_at", ValidateSortField("sold_at", SaleSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("sold_at", ProductSortFields, "created_at"))
}
