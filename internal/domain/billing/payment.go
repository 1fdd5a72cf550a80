package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a subscription payment
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
	PaymentExpired PaymentStatus = "expired"
)

// IsFinal reports whether the payment can no longer change
func (s PaymentStatus) IsFinal() bool {
	return s != PaymentPending
}

// Payment is one checkout attempt for a subscription plan
type Payment struct {
	shared.TenantEntity
	SubscriptionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	MerchantOrderID string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Plan            Plan            `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(20)"`
	Status          PaymentStatus   `gorm:"type:varchar(20);not null;index"`
	Reference       string          `gorm:"type:varchar(100);index"`
	PaymentURL      string          `gorm:"type:varchar(500)"`
	FailureReason   string          `gorm:"type:text"`
	ExpiresAt       *time.Time
	PaidAt          *time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewMerchantOrderID builds the order id sent to the gateway, e.g. SUB-20260315-1A2B3C4D
func NewMerchantOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SUB-%s-%s", now.Format("20060102"), suffix)
}

// NewPayment creates a pending payment for a plan
func NewPayment(sub *Subscription, plan Plan, amount decimal.Decimal, method string, now time.Time) (*Payment, error) {
	if !plan.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Unknown plan: "+string(plan))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	return &Payment{
		TenantEntity:    shared.NewTenantEntity(sub.TenantID),
		SubscriptionID:  sub.ID,
		MerchantOrderID: NewMerchantOrderID(now),
		Plan:            plan,
		Amount:          amount,
		PaymentMethod:   strings.TrimSpace(method),
		Status:          PaymentPending,
	}, nil
}

// AttachSession stores what the gateway returned for the checkout
func (p *Payment) AttachSession(reference, paymentURL string, expiresAt *time.Time) {
	p.Reference = reference
	p.PaymentURL = paymentURL
	p.ExpiresAt = expiresAt
	p.Touch()
}

// MarkPaid settles the payment
func (p *Payment) MarkPaid(reference string, at time.Time) error {
	if p.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Payment is already %s", p.Status))
	}
	if reference != "" {
		p.Reference = reference
	}
	p.Status = PaymentPaid
	p.PaidAt = &at
	p.Touch()
	return nil
}

// MarkFailed records a declined or broken payment
func (p *Payment) MarkFailed(reason string) error {
	if p.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Payment is already %s", p.Status))
	}
	p.Status = PaymentFailed
	p.FailureReason = reason
	p.Touch()
	return nil
}

// IsExpired reports whether a pending payment is past its expiry
func (p *Payment) IsExpired(now time.Time) bool {
	return p.Status == PaymentPending && p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}
