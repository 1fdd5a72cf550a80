package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked PostgreSQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func TestGormSaleRepository_UpdatePayment(t *testing.T) {
	sale := &sales.Sale{
		TenantEntity:  shared.NewTenantEntity(uuid.New()),
		PaidAmount:    dec("23625"),
		PaymentStatus: sales.PaymentStatusPaid,
	}

	t.Run("updates payment columns scoped to the tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sales" SET "change_amount"=\$1,"credited_amount"=\$2,"paid_amount"=\$3,"payment_status"=\$4,"refunded_amount"=\$5,"updated_at"=\$6 WHERE \(?tenant_id = \$7 AND id = \$8\)?`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sales.PaymentStatusPaid, sqlmock.AnyArg(), sqlmock.AnyArg(), sale.TenantID, sale.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdatePayment(context.Background(), sale))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when no row matched", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePayment(context.Background(), sale)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_NextInvoiceNumber_Mock(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	bump := `UPDATE document_sequences SET last = last \+ 1\s+WHERE tenant_id = \$1 AND kind = \$2 AND day = \$3 RETURNING last`
	insert := `INSERT INTO document_sequences \(tenant_id, kind, day, last\) VALUES \(\$1, \$2, \$3, \$4\)\s+ON CONFLICT \(tenant_id, kind, day\) DO UPDATE SET last = document_sequences.last \+ 1`

	t.Run("bumps the day's sequence row", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(bump).
			WithArgs(tenantID, sales.InvoicePrefix, "20260501").
			WillReturnRows(sqlmock.NewRows([]string{"last"}).AddRow(4))

		number, err := repo.NextInvoiceNumber(context.Background(), tenantID, day)
		require.NoError(t, err)
		assert.Equal(t, "INV-20260501-0004", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seeds a new day from stored invoices", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(bump).WillReturnRows(sqlmock.NewRows([]string{"last"}))
		mock.ExpectQuery(`SELECT "invoice_number" FROM "sales" WHERE \(?tenant_id = \$1 AND invoice_number LIKE \$2\)?`).
			WithArgs(tenantID, "INV-20260501-%").
			WillReturnRows(sqlmock.NewRows([]string{"invoice_number"}).
				AddRow("INV-20260501-0002").
				AddRow("INV-20260501-0017").
				AddRow("INV-20260501-0005"))
		mock.ExpectQuery(insert).
			WithArgs(tenantID, sales.InvoicePrefix, "20260501", 18).
			WillReturnRows(sqlmock.NewRows([]string{"last"}).AddRow(18))

		number, err := repo.NextInvoiceNumber(context.Background(), tenantID, day)
		require.NoError(t, err)
		assert.Equal(t, "INV-20260501-0018", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second register creating the row gets the following number", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		// both registers saw no row and seeded 0004; the other one inserted first
		mock.ExpectQuery(bump).WillReturnRows(sqlmock.NewRows([]string{"last"}))
		mock.ExpectQuery(`SELECT "invoice_number" FROM "sales"`).
			WillReturnRows(sqlmock.NewRows([]string{"invoice_number"}).AddRow("INV-20260501-0003"))
		mock.ExpectQuery(insert).
			WithArgs(tenantID, sales.InvoicePrefix, "20260501", 4).
			WillReturnRows(sqlmock.NewRows([]string{"last"}).AddRow(5))

		number, err := repo.NextInvoiceNumber(context.Background(), tenantID, day)
		require.NoError(t, err)
		assert.Equal(t, "INV-20260501-0005", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(bump).WillReturnError(errors.New("connection reset"))

		_, err := repo.NextInvoiceNumber(context.Background(), tenantID, day)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
