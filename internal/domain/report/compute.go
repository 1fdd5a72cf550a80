package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MethodBreakdown totals the sales of one payment method
type MethodBreakdown struct {
	Method       sales.PaymentMethod `json:"method"`
	Transactions int64               `json:"transactions"`
	Total        decimal.Decimal     `json:"total"`
	Paid         decimal.Decimal     `json:"paid"`
}

// Summary is the profit and loss and cash flow view of a set of sales.
// Profit figures cover paid sales only; cash and activity figures cover
// every sale in the filter.
type Summary struct {
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	CustomCosts decimal.Decimal `json:"custom_costs"`
	Discounts   decimal.Decimal `json:"discounts"`
	Tax         decimal.Decimal `json:"tax"`
	ReturnLoss  decimal.Decimal `json:"return_loss"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
	NetMargin   decimal.Decimal `json:"net_margin"`

	GrossSales  decimal.Decimal `json:"gross_sales"`
	CashIn      decimal.Decimal `json:"cash_in"`
	Refunds     decimal.Decimal `json:"refunds"`
	NetCashIn   decimal.Decimal `json:"net_cash_in"`
	Receivables decimal.Decimal `json:"receivables"`

	Transactions     int64           `json:"transactions"`
	PaidTransactions int64           `json:"paid_transactions"`
	Returns          int64           `json:"returns"`
	ItemsSold        int64           `json:"items_sold"`
	AverageTicket    decimal.Decimal `json:"average_ticket"`

	ByPaymentMethod []MethodBreakdown `json:"by_payment_method"`
}

// DailySummary is the summary of one calendar day
type DailySummary struct {
	Date string `json:"date"`
	Summary
}

// RankBy selects the ordering of the product ranking
type RankBy string

const (
	RankByQuantity RankBy = "quantity"
	RankByRevenue  RankBy = "revenue"
)

// ProductPerformance is one row of the product ranking
type ProductPerformance struct {
	Rank         int             `json:"rank"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	Transactions int64           `json:"transactions"`
}

// Compute applies the filter and summarizes what is left
func Compute(lines []SaleLine, returns []ReturnLine, filter Filter) Summary {
	return summarize(filterSales(lines, filter), filterReturns(returns, filter))
}

// Daily summarizes each calendar day in loc, oldest first.
// Days with returns but no sales are included.
func Daily(lines []SaleLine, returns []ReturnLine, filter Filter, loc *time.Location) []DailySummary {
	if loc == nil {
		loc = time.UTC
	}
	saleDays := make(map[string][]SaleLine)
	returnDays := make(map[string][]ReturnLine)
	for _, l := range filterSales(lines, filter) {
		day := l.SoldAt.In(loc).Format(time.DateOnly)
		saleDays[day] = append(saleDays[day], l)
	}
	for _, r := range filterReturns(returns, filter) {
		day := r.ReturnedAt.In(loc).Format(time.DateOnly)
		returnDays[day] = append(returnDays[day], r)
	}

	days := make([]string, 0, len(saleDays)+len(returnDays))
	for day := range saleDays {
		days = append(days, day)
	}
	for day := range returnDays {
		if _, ok := saleDays[day]; !ok {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	out := make([]DailySummary, 0, len(days))
	for _, day := range days {
		out = append(out, DailySummary{Date: day, Summary: summarize(saleDays[day], returnDays[day])})
	}
	return out
}

// TopProducts ranks products over every sale in the filter.
// Ties are broken by product name, then id.
func TopProducts(lines []SaleLine, filter Filter, by RankBy, limit int) []ProductPerformance {
	index := make(map[uuid.UUID]int)
	seen := make(map[uuid.UUID]map[uuid.UUID]struct{})
	var rows []ProductPerformance
	for _, l := range filterSales(lines, filter) {
		i, ok := index[l.ProductID]
		if !ok {
			i = len(rows)
			index[l.ProductID] = i
			seen[l.ProductID] = make(map[uuid.UUID]struct{})
			rows = append(rows, ProductPerformance{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Revenue:     decimal.Zero,
				COGS:        decimal.Zero,
			})
		}
		row := &rows[i]
		row.Quantity += l.Quantity
		row.Revenue = row.Revenue.Add(l.ItemSubtotal)
		row.COGS = row.COGS.Add(l.Cost.Mul(decimal.NewFromInt(l.Quantity)))
		if _, dup := seen[l.ProductID][l.SaleID]; !dup {
			seen[l.ProductID][l.SaleID] = struct{}{}
			row.Transactions++
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if by == RankByRevenue {
			if c := ra.Revenue.Cmp(rb.Revenue); c != 0 {
				return c > 0
			}
		} else if ra.Quantity != rb.Quantity {
			return ra.Quantity > rb.Quantity
		}
		if ra.ProductName != rb.ProductName {
			return ra.ProductName < rb.ProductName
		}
		return ra.ProductID.String() < rb.ProductID.String()
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Revenue = shared.RoundMoney(rows[i].Revenue)
		rows[i].COGS = shared.RoundMoney(rows[i].COGS)
		rows[i].GrossProfit = rows[i].Revenue.Sub(rows[i].COGS)
	}
	return rows
}

func filterSales(lines []SaleLine, filter Filter) []SaleLine {
	out := make([]SaleLine, 0, len(lines))
	for _, l := range lines {
		if filter.MatchSale(l) {
			out = append(out, l)
		}
	}
	return out
}

func filterReturns(lines []ReturnLine, filter Filter) []ReturnLine {
	out := make([]ReturnLine, 0, len(lines))
	for _, l := range lines {
		if filter.MatchReturn(l) {
			out = append(out, l)
		}
	}
	return out
}

// share is the line's part of its sale, by subtotal
func share(itemSubtotal, saleSubtotal decimal.Decimal) decimal.Decimal {
	if !saleSubtotal.IsPositive() {
		return decimal.Zero
	}
	return itemSubtotal.Div(saleSubtotal)
}

func summarize(lines []SaleLine, returns []ReturnLine) Summary {
	s := Summary{
		Revenue:     decimal.Zero,
		COGS:        decimal.Zero,
		CustomCosts: decimal.Zero,
		Discounts:   decimal.Zero,
		Tax:         decimal.Zero,
		ReturnLoss:  decimal.Zero,
		GrossSales:  decimal.Zero,
		CashIn:      decimal.Zero,
		Refunds:     decimal.Zero,
		Receivables: decimal.Zero,
	}

	salesSeen := make(map[uuid.UUID]struct{})
	methods := make(map[sales.PaymentMethod]*MethodBreakdown)
	for _, l := range lines {
		part := share(l.ItemSubtotal, l.SaleSubtotal)
		total := l.SaleTotal.Mul(part)
		paid := l.SalePaidAmount.Mul(part)

		m, ok := methods[l.PaymentMethod]
		if !ok {
			m = &MethodBreakdown{Method: l.PaymentMethod, Total: decimal.Zero, Paid: decimal.Zero}
			methods[l.PaymentMethod] = m
		}
		m.Total = m.Total.Add(total)
		m.Paid = m.Paid.Add(paid)

		if _, dup := salesSeen[l.SaleID]; !dup {
			salesSeen[l.SaleID] = struct{}{}
			s.Transactions++
			m.Transactions++
			if l.PaymentStatus == sales.PaymentStatusPaid {
				s.PaidTransactions++
			}
		}

		s.ItemsSold += l.Quantity
		s.GrossSales = s.GrossSales.Add(total)
		s.CashIn = s.CashIn.Add(paid)
		if l.PaymentStatus != sales.PaymentStatusPaid {
			s.Receivables = s.Receivables.Add(total.Sub(paid).Sub(l.SaleCredited.Mul(part)))
			continue
		}

		s.Revenue = s.Revenue.Add(l.ItemSubtotal)
		s.COGS = s.COGS.Add(l.Cost.Mul(decimal.NewFromInt(l.Quantity)))
		s.CustomCosts = s.CustomCosts.Add(l.HPPExtra)
		s.Discounts = s.Discounts.Add(l.SaleDiscount.Mul(part))
		s.Tax = s.Tax.Add(l.SaleTax.Mul(part))
	}

	returnsSeen := make(map[uuid.UUID]struct{})
	for _, r := range returns {
		if _, dup := returnsSeen[r.ReturnID]; !dup {
			returnsSeen[r.ReturnID] = struct{}{}
			s.Returns++
		}
		// only the cash part of the line's value; the rest cleared a balance
		value := r.Amount.Mul(share(r.SaleTotal, r.SaleSubtotal))
		s.Refunds = s.Refunds.Add(value.Mul(share(r.ReturnRefund, r.ReturnRefund.Add(r.ReturnCredit))))
		if r.Type == sales.ReturnTypeLoss {
			s.ReturnLoss = s.ReturnLoss.Add(r.Cost.Mul(decimal.NewFromInt(r.Quantity)))
		}
	}

	s.Revenue = shared.RoundMoney(s.Revenue)
	s.COGS = shared.RoundMoney(s.COGS)
	s.CustomCosts = shared.RoundMoney(s.CustomCosts)
	s.Discounts = shared.RoundMoney(s.Discounts)
	s.Tax = shared.RoundMoney(s.Tax)
	s.ReturnLoss = shared.RoundMoney(s.ReturnLoss)
	s.GrossSales = shared.RoundMoney(s.GrossSales)
	s.CashIn = shared.RoundMoney(s.CashIn)
	s.Refunds = shared.RoundMoney(s.Refunds)
	s.Receivables = shared.RoundMoney(s.Receivables)

	s.GrossProfit = s.Revenue.Sub(s.COGS)
	s.NetProfit = s.GrossProfit.Sub(s.CustomCosts).Sub(s.Discounts).Sub(s.ReturnLoss)
	s.NetCashIn = s.CashIn.Sub(s.Refunds)
	s.GrossMargin = margin(s.GrossProfit, s.Revenue)
	s.NetMargin = margin(s.NetProfit, s.Revenue)
	s.AverageTicket = decimal.Zero
	if s.Transactions > 0 {
		s.AverageTicket = shared.RoundMoney(s.GrossSales.Div(decimal.NewFromInt(s.Transactions)))
	}

	s.ByPaymentMethod = make([]MethodBreakdown, 0, len(methods))
	for _, m := range methods {
		m.Total = shared.RoundMoney(m.Total)
		m.Paid = shared.RoundMoney(m.Paid)
		s.ByPaymentMethod = append(s.ByPaymentMethod, *m)
	}
	sort.Slice(s.ByPaymentMethod, func(a, b int) bool {
		return s.ByPaymentMethod[a].Method < s.ByPaymentMethod[b].Method
	})
	return s
}

// margin returns part / whole as a percentage with two decimals
func margin(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}
