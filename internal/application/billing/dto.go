package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// NoSubscription is the status reported for a tenant that never checked out
const NoSubscription = "none"

// SubscriptionResponse is the tenant's current access together with the plans on offer
type SubscriptionResponse struct {
	Plan     billing.Plan        `json:"plan,omitempty"`
	Status   string              `json:"status"`
	Active   bool                `json:"active"`
	StartsAt *time.Time          `json:"starts_at,omitempty"`
	EndsAt   *time.Time          `json:"ends_at,omitempty"`
	DaysLeft int                 `json:"days_left"`
	Plans    []billing.PlanOffer `json:"plans"`
}

// CheckoutRequest starts a subscription payment
type CheckoutRequest struct {
	Plan          billing.Plan `json:"plan" binding:"required,oneof=monthly quarterly semiannual annual"`
	PaymentMethod string       `json:"payment_method" binding:"omitempty,max=20"`
	CustomerName  string       `json:"-"`
	Email         string       `json:"-"`
}

// CheckoutResponse is the payment session the owner is sent to
type CheckoutResponse struct {
	PaymentID       uuid.UUID       `json:"payment_id"`
	MerchantOrderID string          `json:"merchant_order_id"`
	Plan            billing.Plan    `json:"plan"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference"`
	PaymentURL      string          `json:"payment_url"`
	VANumber        string          `json:"va_number,omitempty"`
	QRString        string          `json:"qr_string,omitempty"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
}

// PaymentListFilter is the query of the payment history
type PaymentListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status   string `form:"status" binding:"omitempty,oneof=pending paid failed expired"`
}

func (f PaymentListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, "").With("status", f.Status)
}

// PaymentResponse represents a subscription payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID             `json:"id"`
	MerchantOrderID string                `json:"merchant_order_id"`
	Plan            billing.Plan          `json:"plan"`
	Amount          decimal.Decimal       `json:"amount"`
	PaymentMethod   string                `json:"payment_method,omitempty"`
	Status          billing.PaymentStatus `json:"status"`
	Reference       string                `json:"reference,omitempty"`
	PaymentURL      string                `json:"payment_url,omitempty"`
	FailureReason   string                `json:"failure_reason,omitempty"`
	ExpiresAt       *time.Time            `json:"expires_at,omitempty"`
	PaidAt          *time.Time            `json:"paid_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// ToPaymentResponse converts a domain payment. A pending payment past its
// expiry reads as expired.
func ToPaymentResponse(p *billing.Payment, now time.Time) PaymentResponse {
	status := p.Status
	if p.IsExpired(now) {
		status = billing.PaymentExpired
	}
	return PaymentResponse{
		ID:              p.ID,
		MerchantOrderID: p.MerchantOrderID,
		Plan:            p.Plan,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		Status:          status,
		Reference:       p.Reference,
		PaymentURL:      p.PaymentURL,
		FailureReason:   p.FailureReason,
		ExpiresAt:       p.ExpiresAt,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
	}
}
