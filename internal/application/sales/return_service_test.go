package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnService_CreateReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("stock return refunds pro rata and restocks", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		sale := f.registerSale(t, nil)
		kopiLine := sale.Items[0]

		ret, err := f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeStock, Reason: "Salah pesan",
			Items: []ReturnLineRequest{{SaleItemID: kopiLine.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, "RET-20260501-0001", ret.ReturnNumber)
		// 18000 × 47952 / 48000
		assert.True(t, ret.RefundAmount.Equal(dec("17982")), "got %s", ret.RefundAmount)
		assert.True(t, ret.LossAmount.IsZero())

		assert.Equal(t, int64(9), f.db.products[f.kopi].Stock)
		assert.True(t, f.db.materials[f.milk].Stock.Equal(dec("700")), "raw materials are not given back")
		assert.Equal(t, int64(1), f.db.sales[sale.ID].Items[0].ReturnedQuantity)
	})

	t.Run("loss return books the cost and keeps stock", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		sale := f.registerSale(t, nil)

		ret, err := f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeLoss,
			Items: []ReturnLineRequest{{SaleItemID: sale.Items[1].ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.True(t, ret.LossAmount.Equal(dec("5000")))
		assert.Equal(t, int64(4), f.db.products[f.roti].Stock)
	})

	t.Run("return from an unpaid sale clears the receivable instead of refunding", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		sale, err := f.sales.CreateSale(ctx, f.tenantID, f.cashierID, CreateSaleRequest{
			Items:         []SaleLineRequest{{ProductID: f.kopi, Quantity: 2}},
			PaymentMethod: sales.PaymentMethodTransfer,
			TaxPercent:    decPtr("0"),
			PaidAmount:    decPtr("0"),
		})
		require.NoError(t, err)
		require.Equal(t, sales.PaymentStatusUnpaid, sale.PaymentStatus)

		ret, err := f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeStock,
			Items: []ReturnLineRequest{{SaleItemID: sale.Items[0].ID, Quantity: 2}},
		})
		require.NoError(t, err)
		assert.True(t, ret.RefundAmount.IsZero(), "got %s", ret.RefundAmount)
		assert.True(t, ret.CreditAmount.Equal(dec("36000")))

		stored := f.db.sales[sale.ID]
		assert.Equal(t, sales.PaymentStatusPaid, stored.PaymentStatus)
		assert.True(t, stored.PaidAmount.IsZero())
		assert.True(t, stored.CreditedAmount.Equal(dec("36000")))
		assert.True(t, stored.Outstanding().IsZero())
		assert.Equal(t, int64(10), f.db.products[f.kopi].Stock)
	})

	t.Run("cannot return more than sold", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		sale := f.registerSale(t, nil)
		line := sale.Items[0]

		_, err := f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeStock,
			Items: []ReturnLineRequest{{SaleItemID: line.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeStock,
			Items: []ReturnLineRequest{{SaleItemID: line.ID, Quantity: 2}},
		})
		assert.Equal(t, "RETURN_QUANTITY_EXCEEDED", errCode(err))
		assert.Len(t, f.db.returns, 1)
		assert.Equal(t, int64(9), f.db.products[f.kopi].Stock)
		assert.Equal(t, int64(1), f.db.sales[sale.ID].Items[0].ReturnedQuantity)
	})

	t.Run("sale of another tenant is not found", func(t *testing.T) {
		f := newSaleFixture(t, decimal.Zero)
		sale := f.registerSale(t, nil)

		_, err := f.returns.CreateReturn(ctx, uuid.New(), f.cashierID, CreateReturnRequest{
			SaleID: sale.ID, Type: sales.ReturnTypeStock,
			Items: []ReturnLineRequest{{SaleItemID: sale.Items[0].ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReturnService_GetAndList(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, decimal.Zero)
	sale := f.registerSale(t, nil)
	ret, err := f.returns.CreateReturn(ctx, f.tenantID, f.cashierID, CreateReturnRequest{
		SaleID: sale.ID, Type: sales.ReturnTypeLoss,
		Items: []ReturnLineRequest{{SaleItemID: sale.Items[1].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := f.returns.GetByID(ctx, f.tenantID, ret.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Roti Bakar", got.Items[0].ProductName)

	page, err := f.returns.List(ctx, f.tenantID, ReturnListFilter{SaleID: sale.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
