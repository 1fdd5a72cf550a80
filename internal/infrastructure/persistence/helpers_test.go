package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uuid.UUID, sku string, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, sku, "Product "+sku, "pcs", dec("10000"), dec("6000"))
	require.NoError(t, err)
	require.NoError(t, p.SetStock(stock))
	require.NoError(t, db.Create(p).Error)
	return p
}

func newTestSale(t *testing.T, tenantID uuid.UUID, invoice string, products ...*catalog.Product) *sales.Sale {
	t.Helper()
	sale, err := sales.NewSale(tenantID, uuid.New(), invoice, sales.PaymentMethodCash)
	require.NoError(t, err)
	for _, p := range products {
		item, err := sales.NewSaleItem(p.ID, p.Name, p.SKU, 2, p.Price, p.Cost)
		require.NoError(t, err)
		sale.AddItem(item)
	}
	require.NoError(t, sale.AddCustomCost("packaging", dec("1000")))
	require.NoError(t, sale.Finalize(dec("10"), dec("5"), nil))
	return sale
}
