package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// SubscriptionStatus is the lifecycle state of a tenant subscription
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the tenant's access to the service. There is one per tenant.
type Subscription struct {
	shared.TenantEntity
	Plan     Plan               `gorm:"type:varchar(20);not null"`
	Status   SubscriptionStatus `gorm:"type:varchar(20);not null;index"`
	StartsAt *time.Time
	EndsAt   *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a pending subscription for a tenant
func NewSubscription(tenantID uuid.UUID, plan Plan) (*Subscription, error) {
	if !plan.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Unknown plan: "+string(plan))
	}
	return &Subscription{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Plan:         plan,
		Status:       SubscriptionPending,
	}, nil
}

// IsActive reports whether the tenant has access at now
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionActive && s.EndsAt != nil && now.Before(*s.EndsAt)
}

// CurrentStatus returns the status as seen at now. An active subscription
// past its end date reads as expired.
func (s *Subscription) CurrentStatus(now time.Time) SubscriptionStatus {
	if s.Status == SubscriptionActive && !s.IsActive(now) {
		return SubscriptionExpired
	}
	return s.Status
}

// Activate starts or extends the subscription by plan's months.
// The new period begins at max(now, EndsAt), so paying early never loses days.
func (s *Subscription) Activate(plan Plan, now time.Time) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "Unknown plan: "+string(plan))
	}
	from := now
	if s.EndsAt != nil && s.EndsAt.After(now) && s.Status == SubscriptionActive {
		from = *s.EndsAt
	} else {
		start := now
		s.StartsAt = &start
	}
	end := from.AddDate(0, plan.Months(), 0)
	s.EndsAt = &end
	s.Plan = plan
	s.Status = SubscriptionActive
	s.Touch()
	return nil
}

// Cancel stops the subscription
func (s *Subscription) Cancel() error {
	if s.Status == SubscriptionCancelled {
		return shared.NewDomainError("INVALID_STATE", "Subscription is already cancelled")
	}
	s.Status = SubscriptionCancelled
	s.Touch()
	return nil
}

// DaysLeft returns whole days until the end date, zero when inactive
func (s *Subscription) DaysLeft(now time.Time) int {
	if !s.IsActive(now) {
		return 0
	}
	return int(s.EndsAt.Sub(now).Hours() / 24)
}
