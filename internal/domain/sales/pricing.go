package sales

import (
	"sort"

	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Totals is the discount/tax decomposition of a sale
type Totals struct {
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
}

// Taxable returns the amount tax is charged on
func (t Totals) Taxable() decimal.Decimal {
	return t.Subtotal.Sub(t.DiscountAmount)
}

// ComputeTotals applies the discount to the subtotal and the tax to what remains:
//
//	discount = subtotal × discount% / 100
//	tax      = (subtotal − discount) × tax% / 100
//	total    = subtotal − discount + tax
func ComputeTotals(subtotal, discountPercent, taxPercent decimal.Decimal) (Totals, error) {
	if subtotal.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_SUBTOTAL", "Subtotal cannot be negative")
	}
	if !shared.ValidPercent(discountPercent) {
		return Totals{}, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	if !shared.ValidPercent(taxPercent) {
		return Totals{}, shared.NewDomainError("INVALID_TAX", "Tax percent must be between 0 and 100")
	}

	subtotal = shared.RoundMoney(subtotal)
	discount := shared.Percent(subtotal, discountPercent)
	tax := shared.Percent(subtotal.Sub(discount), taxPercent)

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discount,
		TaxPercent:      taxPercent,
		TaxAmount:       tax,
		Total:           subtotal.Sub(discount).Add(tax),
	}, nil
}

var cents = decimal.NewFromInt(100)

// Prorate splits total across weights so the parts sum to total exactly.
// Parts are whole cents: each gets the floor of its exact share and the
// leftover cents go to the largest fractional remainders (earlier index wins ties).
// When all weights are zero the total is split evenly.
func Prorate(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	parts := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return parts
	}

	sum := decimal.Zero
	for _, w := range weights {
		if w.IsPositive() {
			sum = sum.Add(w)
		}
	}
	if sum.IsZero() {
		even := make([]decimal.Decimal, len(weights))
		for i := range even {
			even[i] = decimal.NewFromInt(1)
		}
		return Prorate(total, even)
	}

	totalCents := shared.RoundMoney(total).Mul(cents)
	type rem struct {
		idx  int
		frac decimal.Decimal
	}
	rems := make([]rem, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		if !w.IsPositive() {
			w = decimal.Zero
		}
		exact := totalCents.Mul(w).Div(sum)
		floor := exact.Floor()
		parts[i] = floor
		allocated = allocated.Add(floor)
		rems[i] = rem{idx: i, frac: exact.Sub(floor)}
	}

	sort.SliceStable(rems, func(a, b int) bool {
		return rems[a].frac.GreaterThan(rems[b].frac)
	})
	left := totalCents.Sub(allocated).IntPart()
	for i := 0; int64(i) < left && i < len(rems); i++ {
		parts[rems[i].idx] = parts[rems[i].idx].Add(decimal.NewFromInt(1))
	}

	for i := range parts {
		parts[i] = parts[i].Div(cents)
	}
	return parts
}

// ProrateCustomCosts spreads a sale's custom costs over its items into HPPExtra,
// weighted by item subtotal (by quantity when every subtotal is zero).
func ProrateCustomCosts(items []SaleItem, total decimal.Decimal) {
	if len(items) == 0 {
		return
	}
	weights := make([]decimal.Decimal, len(items))
	anySubtotal := false
	for i := range items {
		weights[i] = items[i].Subtotal
		if items[i].Subtotal.IsPositive() {
			anySubtotal = true
		}
	}
	if !anySubtotal {
		for i := range items {
			weights[i] = decimal.NewFromInt(items[i].Quantity)
		}
	}
	parts := Prorate(total, weights)
	for i := range items {
		items[i].HPPExtra = parts[i]
	}
}
