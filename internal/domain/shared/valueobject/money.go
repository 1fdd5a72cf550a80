package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	IDR Currency = "IDR" // Indonesian Rupiah (default)
	USD Currency = "USD" // US Dollar
	SGD Currency = "SGD" // Singapore Dollar
	MYR Currency = "MYR" // Malaysian Ringgit
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = IDR

// ParseCurrency validates an ISO 4217 code
func ParseCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return Currency(unit.String()), nil
}

// Symbol returns the display symbol used on receipts
func (c Currency) Symbol() string {
	switch c {
	case IDR:
		return "Rp"
	case USD:
		return "$"
	case SGD:
		return "S$"
	case MYR:
		return "RM"
	default:
		return string(c)
	}
}

// DisplayDigits returns the number of fraction digits printed for the currency.
// Rupiah is printed without cents.
func (c Currency) DisplayDigits() int {
	if c == IDR {
		return 0
	}
	return 2
}

// Locale returns the language used for digit grouping
func (c Currency) Locale() language.Tag {
	switch c {
	case IDR:
		return language.Indonesian
	case MYR:
		return language.Malay
	default:
		return language.AmericanEnglish
	}
}

// Money is an immutable amount in a currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns m + other; currencies must match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Format renders the amount for receipts, e.g. "Rp 23.625"
func (m Money) Format() string {
	p := message.NewPrinter(m.currency.Locale())
	digits := m.currency.DisplayDigits()
	f, _ := m.amount.Round(int32(digits)).Float64()
	return p.Sprintf("%s %v", m.currency.Symbol(),
		number.Decimal(f, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
