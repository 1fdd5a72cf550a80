package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func errCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

type saleFixture struct {
	db        *store
	tx        *fakeTx
	sales     *SaleService
	returns   *ReturnService
	tenantID  uuid.UUID
	cashierID uuid.UUID
	kopi      uuid.UUID
	roti      uuid.UUID
	milk      uuid.UUID
}

// newSaleFixture stocks a coffee (recipe: 150 ml milk) and a bread
func newSaleFixture(t *testing.T, tax decimal.Decimal) *saleFixture {
	t.Helper()
	f := &saleFixture{db: newStore(), tenantID: uuid.New(), cashierID: uuid.New()}
	f.tx = &fakeTx{db: f.db}

	milk, err := catalog.NewRawMaterial(f.tenantID, "Susu", "ml", dec("20"))
	require.NoError(t, err)
	require.NoError(t, milk.SetStock(dec("1000")))
	f.db.materials[milk.ID] = *milk
	f.milk = milk.ID

	kopi, err := catalog.NewProduct(f.tenantID, "KOPI-01", "Kopi Susu", "cup", dec("18000"), dec("7000"))
	require.NoError(t, err)
	require.NoError(t, kopi.SetStock(10))
	recipe, err := catalog.NewProductMaterial(f.tenantID, kopi.ID, milk.ID, dec("150"))
	require.NoError(t, err)
	kopi.Materials = []catalog.ProductMaterial{recipe}
	f.db.products[kopi.ID] = *kopi
	f.kopi = kopi.ID

	roti, err := catalog.NewProduct(f.tenantID, "ROTI-01", "Roti Bakar", "pcs", dec("12000"), dec("5000"))
	require.NoError(t, err)
	require.NoError(t, roti.SetStock(5))
	f.db.products[roti.ID] = *roti
	f.roti = roti.ID

	jakarta := time.FixedZone("WIB", 7*3600)
	fixed := func() time.Time { return time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC) }
	f.sales = NewSaleService(f.tx, SaleRepositories{
		Sales:        fakeSales{f.db},
		Returns:      fakeReturns{f.db},
		Products:     fakeProducts{f.db},
		Materials:    fakeMaterials{f.db},
		Customers:    fakeCustomers{f.db},
		Employees:    fakeEmployees{f.db},
		ProfitShares: fakeShares{f.db},
	}, fixedSettings{tax: tax}, nil, jakarta, zap.NewNop())
	f.sales.now = fixed
	f.returns = NewReturnService(f.tx, fakeSales{f.db}, fakeReturns{f.db}, fakeProducts{f.db}, nil, jakarta, zap.NewNop())
	f.returns.now = fixed
	return f
}

func (f *saleFixture) addEmployee(t *testing.T, percent string) uuid.UUID {
	t.Helper()
	e, err := hr.NewEmployee(f.tenantID, hr.EmployeeDetails{Name: "Andi", ProfitSharePercent: dec(percent)})
	require.NoError(t, err)
	f.db.employees[e.ID] = *e
	return e.ID
}

// registerSale is 2 coffees and 1 bread, 2000 packaging, 10% off, 11% tax, paid 50000 cash
func (f *saleFixture) registerSale(t *testing.T, employeeID *uuid.UUID) *SaleResponse {
	t.Helper()
	resp, err := f.sales.CreateSale(context.Background(), f.tenantID, f.cashierID, CreateSaleRequest{
		Items: []SaleLineRequest{
			{ProductID: f.kopi, Quantity: 2},
			{ProductID: f.roti, Quantity: 1},
		},
		CustomCosts:     []CustomCostRequest{{Name: "Packaging", Amount: dec("2000")}},
		EmployeeID:      employeeID,
		PaymentMethod:   sales.PaymentMethodCash,
		DiscountPercent: dec("10"),
		TaxPercent:      decPtr("11"),
		PaidAmount:      decPtr("50000"),
	})
	require.NoError(t, err)
	return resp
}

func TestSaleService_CreateSale(t *testing.T) {
	f := newSaleFixture(t, decimal.Zero)
	employeeID := f.addEmployee(t, "10")

	resp := f.registerSale(t, &employeeID)

	assert.Equal(t, "INV-20260501-0001", resp.InvoiceNumber)
	assert.True(t, resp.Subtotal.Equal(dec("48000")))
	assert.True(t, resp.DiscountAmount.Equal(dec("4800")))
	assert.True(t, resp.TaxAmount.Equal(dec("4752")))
	assert.True(t, resp.Total.Equal(dec("47952")))
	assert.True(t, resp.ChangeAmount.Equal(dec("2048")))
	assert.Equal(t, sales.PaymentStatusPaid, resp.PaymentStatus)
	require.Len(t, resp.Items, 2)

	hppExtra := resp.Items[0].HPPExtra.Add(resp.Items[1].HPPExtra)
	assert.True(t, hppExtra.Equal(dec("2000")), "custom costs are fully prorated, got %s", hppExtra)

	assert.Equal(t, int64(8), f.db.products[f.kopi].Stock)
	assert.Equal(t, int64(4), f.db.products[f.roti].Stock)
	assert.True(t, f.db.materials[f.milk].Stock.Equal(dec("700")))

	require.Len(t, f.db.shares, 1)
	for _, share := range f.db.shares {
		// profit = 48000 - 19000 cogs - 2000 custom - 4800 discount
		assert.True(t, share.BaseProfit.Equal(dec("22200")))
		assert.True(t, share.Amount.Equal(dec("2220")))
		assert.Equal(t, hr.ProfitShareUnpaid, share.Status)
	}
	assert.Equal(t, 1, f.tx.calls)
}

func TestSaleService_CreateSale_UsesDefaultTax(t *testing.T) {
	f := newSaleFixture(t, dec("11"))

	resp, err := f.sales.CreateSale(context.Background(), f.tenantID, f.cashierID, CreateSaleRequest{
		Items:         []SaleLineRequest{{ProductID: f.roti, Quantity: 1}},
		PaymentMethod: sales.PaymentMethodQRIS,
	})
	require.NoError(t, err)
	assert.True(t, resp.TaxAmount.Equal(dec("1320")))
	assert.True(t, resp.Total.Equal(dec("13320")))
	assert.Equal(t, sales.PaymentStatusPaid, resp.PaymentStatus)
	assert.Empty(t, f.db.shares)
}

func TestSaleService_CreateSale_Rollback(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient raw material aborts the whole sale", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		milk := f.db.materials[f.milk]
		milk.Stock = dec("200")
		f.db.materials[f.milk] = milk

		_, err := f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
			Items:         []SaleLineRequest{{ProductID: f.kopi, Quantity: 2}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Empty(t, f.db.sales)
		assert.Equal(t, int64(10), f.db.products[f.kopi].Stock)
		assert.True(t, f.db.materials[f.milk].Stock.Equal(dec("200")))
	})

	t.Run("insufficient product stock counts repeated lines", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		_, err := f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
			Items: []SaleLineRequest{
				{ProductID: f.roti, Quantity: 3},
				{ProductID: f.roti, Quantity: 3},
			},
			PaymentMethod: sales.PaymentMethodCash,
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(5), f.db.products[f.roti].Stock)
	})

	t.Run("product of another tenant is rejected", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		foreign, err := catalog.NewProduct(uuid.New(), "X-1", "Foreign", "pcs", dec("1000"), dec("0"))
		require.NoError(t, err)
		f.db.products[foreign.ID] = *foreign

		_, err = f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
			Items:         []SaleLineRequest{{ProductID: foreign.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		assert.Equal(t, "INVALID_PRODUCT", errCode(err))
		assert.Empty(t, f.db.sales)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		customerID := uuid.New()
		_, err := f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
			Items:         []SaleLineRequest{{ProductID: f.roti, Quantity: 1}},
			CustomerID:    &customerID,
			PaymentMethod: sales.PaymentMethodCash,
		})
		assert.Equal(t, "INVALID_CUSTOMER", errCode(err))
	})

	t.Run("non-cash overpayment is rejected", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		_, err := f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
			Items:         []SaleLineRequest{{ProductID: f.roti, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCard,
			PaidAmount:    decPtr("20000"),
		})
		assert.Equal(t, "INVALID_PAID_AMOUNT", errCode(err))
		assert.Equal(t, int64(5), f.db.products[f.roti].Stock)
	})
}

func TestSaleService_SettlePayment(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, decimal.Zero)

	sale, err := f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
		Items:         []SaleLineRequest{{ProductID: f.roti, Quantity: 1}},
		PaymentMethod: sales.PaymentMethodTransfer,
		PaidAmount:    decPtr("0"),
	})
	require.NoError(t, err)
	assert.Equal(t, sales.PaymentStatusUnpaid, sale.PaymentStatus)

	resp, err := f.sales.SettlePayment(ctx, f.tenantID, sale.ID, PaymentRequest{Amount: dec("5000")})
	require.NoError(t, err)
	assert.Equal(t, sales.PaymentStatusPartial, resp.PaymentStatus)
	assert.True(t, resp.Outstanding.Equal(dec("7000")))

	resp, err = f.sales.SettlePayment(ctx, f.tenantID, sale.ID, PaymentRequest{Amount: dec("7000")})
	require.NoError(t, err)
	assert.Equal(t, sales.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, sales.PaymentStatusPaid, f.db.sales[sale.ID].PaymentStatus)

	_, err = f.sales.SettlePayment(ctx, f.tenantID, sale.ID, PaymentRequest{Amount: dec("1")})
	assert.Equal(t, "ALREADY_PAID", errCode(err))

	_, err = f.sales.SettlePayment(ctx, uuid.New(), sale.ID, PaymentRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSaleService_DeleteSale(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock and drops unpaid shares", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		employeeID := f.addEmployee(t, "10")
		sale := f.registerSale(t, &employeeID)

		require.NoError(t, f.sales.DeleteSale(ctx, f.tenantID, sale.ID))
		assert.Empty(t, f.db.sales)
		assert.Empty(t, f.db.shares)
		assert.Equal(t, int64(10), f.db.products[f.kopi].Stock)
		assert.Equal(t, int64(5), f.db.products[f.roti].Stock)
		assert.True(t, f.db.materials[f.milk].Stock.Equal(dec("1000")))
	})

	t.Run("refuses a sale with returns", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		sale := f.registerSale(t, nil)
		_, err := f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeLoss,
			Items: []ReturnLineRequest{{SaleItemID: sale.Items[1].ID, Quantity: 1}},
		})
		require.NoError(t, err)

		err = f.sales.DeleteSale(ctx, f.tenantID, sale.ID)
		assert.ErrorIs(t, err, ErrSaleHasReturns)
		assert.Len(t, f.db.sales, 1)
	})
}

func TestSaleService_List(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, decimal.Zero)
	f.registerSale(t, nil)

	page, err := f.sales.List(ctx, f.tenantID, SaleListFilter{PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = f.sales.List(ctx, f.tenantID, SaleListFilter{ListFilter: ListFilter{From: "2026-05-02", To: "2026-05-01"}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
