package billing

import (
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Plan is a subscription period
type Plan string

const (
	PlanMonthly    Plan = "monthly"
	PlanQuarterly  Plan = "quarterly"
	PlanSemiannual Plan = "semiannual"
	PlanAnnual     Plan = "annual"
)

// AllPlans lists plans in display order
var AllPlans = []Plan{PlanMonthly, PlanQuarterly, PlanSemiannual, PlanAnnual}

// IsValid checks if the plan is known
func (p Plan) IsValid() bool {
	return p.Months() > 0
}

// Months returns the length of the plan in months
func (p Plan) Months() int {
	switch p {
	case PlanMonthly:
		return 1
	case PlanQuarterly:
		return 3
	case PlanSemiannual:
		return 6
	case PlanAnnual:
		return 12
	}
	return 0
}

// PriceList maps plans to their IDR price
type PriceList map[Plan]decimal.Decimal

// DefaultPriceList is used for plans without a configured price
func DefaultPriceList() PriceList {
	return PriceList{
		PlanMonthly:    decimal.NewFromInt(99000),
		PlanQuarterly:  decimal.NewFromInt(270000),
		PlanSemiannual: decimal.NewFromInt(510000),
		PlanAnnual:     decimal.NewFromInt(960000),
	}
}

// Price returns the plan price
func (l PriceList) Price(p Plan) (decimal.Decimal, error) {
	if !p.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_PLAN", "Unknown plan: "+string(p))
	}
	if price, ok := l[p]; ok && price.IsPositive() {
		return price, nil
	}
	return DefaultPriceList()[p], nil
}

// PlanOffer is a plan with its price, as shown on the checkout page
type PlanOffer struct {
	Plan   Plan            `json:"plan"`
	Months int             `json:"months"`
	Price  decimal.Decimal `json:"price"`
}

// Offers returns every plan priced from the list
func (l PriceList) Offers() []PlanOffer {
	out := make([]PlanOffer, 0, len(AllPlans))
	for _, p := range AllPlans {
		price, _ := l.Price(p)
		out = append(out, PlanOffer{Plan: p, Months: p.Months(), Price: price})
	}
	return out
}
