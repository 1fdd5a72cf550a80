package printing

import (
	"time"

	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceiptLine is one printed item row; amounts are already formatted
type ReceiptLine struct {
	Name      string
	SKU       string
	Quantity  int64
	UnitPrice string
	Subtotal  string
}

// Receipt is everything a receipt template prints
type Receipt struct {
	Template  settings.ReceiptTemplate
	PaperSize PaperSize

	StoreName    string
	StoreAddress string
	StorePhone   string
	Footer       string

	InvoiceNumber string
	SoldAt        time.Time
	CashierName   string
	CustomerName  string
	PaymentMethod string
	PaymentStatus string
	Notes         string

	Lines []ReceiptLine

	Subtotal        string
	DiscountPercent string
	Discount        string
	TaxPercent      string
	Tax             string
	Total           string
	Paid            string
	Change          string
	Outstanding     string
	ShowDiscount    bool
	ShowTax         bool
	ShowOutstanding bool
}

// PaperFor maps a template to its paper
func PaperFor(t settings.ReceiptTemplate) PaperSize {
	switch t {
	case settings.TemplateCompact:
		return PaperSizeReceipt58MM
	case settings.TemplateDetailed:
		return PaperSizeA5
	default:
		return PaperSizeReceipt80MM
	}
}

// BuildReceipt lays a sale out with the tenant's store details and currency
func BuildReceipt(sale *sales.Sale, st *settings.TenantSettings, cashierName, customerName string) *Receipt {
	money := func(d decimal.Decimal) string {
		return valueobject.NewMoney(d, st.Currency).Format()
	}

	r := &Receipt{
		Template:        st.ReceiptTemplate,
		PaperSize:       PaperFor(st.ReceiptTemplate),
		StoreName:       st.StoreName,
		StoreAddress:    st.StoreAddress,
		StorePhone:      st.StorePhone,
		Footer:          st.ReceiptFooter,
		InvoiceNumber:   sale.InvoiceNumber,
		SoldAt:          sale.SoldAt,
		CashierName:     cashierName,
		CustomerName:    customerName,
		PaymentMethod:   string(sale.PaymentMethod),
		PaymentStatus:   string(sale.PaymentStatus),
		Notes:           sale.Notes,
		Subtotal:        money(sale.Subtotal),
		DiscountPercent: sale.DiscountPercent.String(),
		Discount:        money(sale.DiscountAmount),
		TaxPercent:      sale.TaxPercent.String(),
		Tax:             money(sale.TaxAmount),
		Total:           money(sale.Total),
		Paid:            money(sale.PaidAmount),
		Change:          money(sale.ChangeAmount),
		Outstanding:     money(sale.Outstanding()),
		ShowDiscount:    sale.DiscountAmount.IsPositive(),
		ShowTax:         sale.TaxAmount.IsPositive(),
		ShowOutstanding: sale.Outstanding().IsPositive(),
	}
	for _, item := range sale.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Name:      item.ProductName,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			Subtotal:  money(item.Subtotal),
		})
	}
	return r
}
