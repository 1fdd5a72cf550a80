package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	coffeeID = uuid.MustParse("00000000-0000-0000-0000-00000000c0fe")
	breadID  = uuid.MustParse("00000000-0000-0000-0000-00000000b4ed")
	drinks   = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	day1     = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	day2     = time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
)

type fixture struct {
	lines   []SaleLine
	returns []ReturnLine
	paidID  uuid.UUID
}

// newFixture builds three sales:
//   - paid register sale on day 1: 2 coffee + 1 bread, 10% discount, 5% tax, Rp1,000 custom cost
//   - unpaid transfer sale on day 2: 1 coffee
//   - partial cash sale on day 2: 1 bread, Rp2,000 paid
//
// and a loss return of the paid sale's bread on day 2.
func newFixture() fixture {
	paid, unpaid, partial := uuid.New(), uuid.New(), uuid.New()
	sale := func(id uuid.UUID, at time.Time, status sales.PaymentStatus, method sales.PaymentMethod, subtotal, discount, tax, total, paidAmount string) SaleLine {
		return SaleLine{
			SaleID: id, SoldAt: at, PaymentStatus: status, PaymentMethod: method,
			SaleSubtotal: d(subtotal), SaleDiscount: d(discount), SaleTax: d(tax),
			SaleTotal: d(total), SalePaidAmount: d(paidAmount), HPPExtra: decimal.Zero,
		}
	}
	withItem := func(l SaleLine, product uuid.UUID, name string, qty int64, price, cost, extra string) SaleLine {
		l.ProductID = product
		l.ProductName = name
		l.CategoryID = &drinks
		if product == breadID {
			l.CategoryID = nil
		}
		l.Quantity = qty
		l.UnitPrice = d(price)
		l.ItemSubtotal = d(price).Mul(decimal.NewFromInt(qty))
		l.Cost = d(cost)
		l.HPPExtra = d(extra)
		return l
	}

	p := sale(paid, day1, sales.PaymentStatusPaid, sales.PaymentMethodCash, "25000", "2500", "1125", "23625", "23625")
	u := sale(unpaid, day2, sales.PaymentStatusUnpaid, sales.PaymentMethodTransfer, "10000", "0", "0", "10000", "0")
	pt := sale(partial, day2, sales.PaymentStatusPartial, sales.PaymentMethodCash, "5000", "0", "0", "5000", "2000")

	return fixture{
		paidID: paid,
		lines: []SaleLine{
			withItem(p, coffeeID, "Kopi", 2, "10000", "6000", "800"),
			withItem(p, breadID, "Roti", 1, "5000", "2000", "200"),
			withItem(u, coffeeID, "Kopi", 1, "10000", "6000", "0"),
			withItem(pt, breadID, "Roti", 1, "5000", "2000", "0"),
		},
		returns: []ReturnLine{{
			ReturnID: uuid.New(), SaleID: paid, ReturnedAt: day2, Type: sales.ReturnTypeLoss,
			PaymentStatus: sales.PaymentStatusPaid, PaymentMethod: sales.PaymentMethodCash,
			ProductID: breadID, Quantity: 1, Amount: d("5000"), Cost: d("2000"),
			SaleSubtotal: d("25000"), SaleTotal: d("23625"), ReturnRefund: d("4725"),
		}},
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestCompute(t *testing.T) {
	f := newFixture()
	s := Compute(f.lines, f.returns, Filter{})

	assertAmount(t, "25000", s.Revenue, "revenue")
	assertAmount(t, "14000", s.COGS, "cogs")
	assertAmount(t, "11000", s.GrossProfit, "gross profit")
	assertAmount(t, "1000", s.CustomCosts, "custom costs")
	assertAmount(t, "2500", s.Discounts, "discounts")
	assertAmount(t, "1125", s.Tax, "tax")
	assertAmount(t, "2000", s.ReturnLoss, "return loss")
	assertAmount(t, "5500", s.NetProfit, "net profit")
	assertAmount(t, "44", s.GrossMargin, "gross margin")
	assertAmount(t, "22", s.NetMargin, "net margin")

	assertAmount(t, "38625", s.GrossSales, "gross sales")
	assertAmount(t, "25625", s.CashIn, "cash in")
	assertAmount(t, "4725", s.Refunds, "refunds")
	assertAmount(t, "20900", s.NetCashIn, "net cash in")
	assertAmount(t, "13000", s.Receivables, "receivables")
	assertAmount(t, "12875", s.AverageTicket, "average ticket")

	assert.Equal(t, int64(3), s.Transactions)
	assert.Equal(t, int64(1), s.PaidTransactions)
	assert.Equal(t, int64(1), s.Returns)
	assert.Equal(t, int64(5), s.ItemsSold)

	require.Len(t, s.ByPaymentMethod, 2)
	assert.Equal(t, sales.PaymentMethodCash, s.ByPaymentMethod[0].Method)
	assert.Equal(t, int64(2), s.ByPaymentMethod[0].Transactions)
	assertAmount(t, "28625", s.ByPaymentMethod[0].Total, "cash total")
	assertAmount(t, "25625", s.ByPaymentMethod[0].Paid, "cash paid")
	assert.Equal(t, sales.PaymentMethodTransfer, s.ByPaymentMethod[1].Method)
}

func TestCompute_ReturnCreditedAgainstUnpaidSale(t *testing.T) {
	f := newFixture()
	unpaid := f.lines[2]
	// the unpaid coffee comes back: its whole value clears the balance
	unpaid.SaleCredited = d("10000")
	unpaid.PaymentStatus = sales.PaymentStatusPaid
	f.lines[2] = unpaid
	f.returns = append(f.returns, ReturnLine{
		ReturnID: uuid.New(), SaleID: unpaid.SaleID, ReturnedAt: day2, Type: sales.ReturnTypeStock,
		PaymentStatus: sales.PaymentStatusPaid, PaymentMethod: sales.PaymentMethodTransfer,
		ProductID: coffeeID, Quantity: 1, Amount: d("10000"), Cost: d("6000"),
		SaleSubtotal: d("10000"), SaleTotal: d("10000"), ReturnCredit: d("10000"),
	})

	s := Compute(f.lines, f.returns, Filter{})

	assertAmount(t, "3000", s.Receivables, "receivables")
	assertAmount(t, "4725", s.Refunds, "refunds")
	assertAmount(t, "20900", s.NetCashIn, "net cash in")
	assert.Equal(t, int64(2), s.Returns)
}

func TestCompute_PartialRefundSplitsLineValue(t *testing.T) {
	partialID := uuid.New()
	lines := []SaleLine{{
		SaleID: partialID, SoldAt: day1, PaymentStatus: sales.PaymentStatusPaid, PaymentMethod: sales.PaymentMethodCash,
		ProductID: breadID, Quantity: 2, UnitPrice: d("5000"), ItemSubtotal: d("10000"), Cost: d("2000"),
		SaleSubtotal: d("10000"), SaleTotal: d("10000"), SalePaidAmount: d("4000"), SaleCredited: d("6000"),
	}}
	// 2 breads back: 6000 cleared the balance, 4000 went back in cash
	returns := []ReturnLine{{
		ReturnID: uuid.New(), SaleID: partialID, ReturnedAt: day1, Type: sales.ReturnTypeStock,
		PaymentStatus: sales.PaymentStatusPaid, PaymentMethod: sales.PaymentMethodCash,
		ProductID: breadID, Quantity: 2, Amount: d("10000"), Cost: d("2000"),
		SaleSubtotal: d("10000"), SaleTotal: d("10000"), ReturnRefund: d("4000"), ReturnCredit: d("6000"),
	}}

	s := Compute(lines, returns, Filter{})

	assertAmount(t, "4000", s.CashIn, "cash in")
	assertAmount(t, "4000", s.Refunds, "refunds")
	assertAmount(t, "0", s.NetCashIn, "net cash in")
	assertAmount(t, "0", s.Receivables, "receivables")
}

func TestCompute_GrossProfitMatchesPaidLines(t *testing.T) {
	f := newFixture()
	s := Compute(f.lines, nil, Filter{})

	want := decimal.Zero
	for _, l := range f.lines {
		if l.PaymentStatus == sales.PaymentStatusPaid {
			want = want.Add(l.ItemSubtotal).Sub(l.Cost.Mul(decimal.NewFromInt(l.Quantity)))
		}
	}
	assert.True(t, want.Equal(s.GrossProfit))
}

func TestCompute_Idempotent(t *testing.T) {
	f := newFixture()
	status := sales.PaymentStatusPaid
	filter := Filter{PaymentStatus: &status}

	first := Compute(f.lines, f.returns, filter)
	second := Compute(f.lines, f.returns, filter)
	assert.Equal(t, first, second)
}

func TestCompute_Filters(t *testing.T) {
	f := newFixture()

	t.Run("product allocates sale amounts by subtotal share", func(t *testing.T) {
		s := Compute(f.lines, f.returns, Filter{ProductID: &coffeeID})
		assertAmount(t, "20000", s.Revenue, "revenue")
		assertAmount(t, "2000", s.Discounts, "discounts")
		assertAmount(t, "900", s.Tax, "tax")
		assertAmount(t, "800", s.CustomCosts, "custom costs")
		assertAmount(t, "0", s.ReturnLoss, "return loss")
		assertAmount(t, "10000", s.Receivables, "receivables")
	})

	t.Run("category excludes uncategorized lines", func(t *testing.T) {
		s := Compute(f.lines, f.returns, Filter{CategoryID: &drinks})
		assert.Equal(t, int64(3), s.ItemsSold)
	})

	t.Run("date range is half open", func(t *testing.T) {
		from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
		s := Compute(f.lines, f.returns, Filter{From: &from, To: &to})
		assert.Equal(t, int64(1), s.Transactions)
		assert.Equal(t, int64(0), s.Returns)
	})

	t.Run("payment method", func(t *testing.T) {
		m := sales.PaymentMethodTransfer
		s := Compute(f.lines, f.returns, Filter{PaymentMethod: &m})
		assert.Equal(t, int64(1), s.Transactions)
		assertAmount(t, "0", s.Revenue, "revenue")
	})

	t.Run("empty input", func(t *testing.T) {
		s := Compute(nil, nil, Filter{})
		assert.True(t, s.GrossMargin.IsZero())
		assert.True(t, s.AverageTicket.IsZero())
		assert.Empty(t, s.ByPaymentMethod)
	})
}

func TestDaily(t *testing.T) {
	f := newFixture()
	days := Daily(f.lines, f.returns, Filter{}, time.UTC)
	require.Len(t, days, 2)

	assert.Equal(t, "2026-05-01", days[0].Date)
	assertAmount(t, "25000", days[0].Revenue, "day 1 revenue")
	assert.Equal(t, int64(0), days[0].Returns)

	assert.Equal(t, "2026-05-02", days[1].Date)
	assert.Equal(t, int64(2), days[1].Transactions)
	assertAmount(t, "2000", days[1].ReturnLoss, "day 2 loss")

	// 09:00 UTC on day 1 is still the previous evening in Honolulu
	honolulu := time.FixedZone("HST", -10*3600)
	days = Daily(f.lines, nil, Filter{}, honolulu)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-04-30", days[0].Date)
}

func TestTopProducts(t *testing.T) {
	f := newFixture()

	byQty := TopProducts(f.lines, Filter{}, RankByQuantity, 10)
	require.Len(t, byQty, 2)
	assert.Equal(t, coffeeID, byQty[0].ProductID)
	assert.Equal(t, 1, byQty[0].Rank)
	assert.Equal(t, int64(3), byQty[0].Quantity)
	assert.Equal(t, int64(2), byQty[0].Transactions)
	assertAmount(t, "30000", byQty[0].Revenue, "coffee revenue")
	assertAmount(t, "12000", byQty[0].GrossProfit, "coffee profit")

	limited := TopProducts(f.lines, Filter{}, RankByRevenue, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "Kopi", limited[0].ProductName)
}
