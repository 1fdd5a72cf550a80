package billing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestPlan_Months(t *testing.T) {
	tests := []struct {
		plan   Plan
		months int
	}{
		{PlanMonthly, 1},
		{PlanQuarterly, 3},
		{PlanSemiannual, 6},
		{PlanAnnual, 12},
		{"weekly", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			assert.Equal(t, tt.months, tt.plan.Months())
			assert.Equal(t, tt.months > 0, tt.plan.IsValid())
		})
	}
}

func TestPriceList(t *testing.T) {
	prices := PriceList{PlanMonthly: decimal.NewFromInt(150000)}

	p, err := prices.Price(PlanMonthly)
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(150000)))

	p, err = prices.Price(PlanAnnual)
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(960000)))

	_, err = prices.Price("weekly")
	assert.Equal(t, "INVALID_PLAN", errCode(err))

	offers := prices.Offers()
	require.Len(t, offers, 4)
	assert.Equal(t, PlanMonthly, offers[0].Plan)
	assert.Equal(t, 12, offers[3].Months)
}

func TestSubscription_Activate(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	sub, err := NewSubscription(uuid.New(), PlanMonthly)
	require.NoError(t, err)
	assert.False(t, sub.IsActive(now))
	assert.Equal(t, SubscriptionPending, sub.CurrentStatus(now))

	require.NoError(t, sub.Activate(PlanMonthly, now))
	assert.True(t, sub.IsActive(now))
	assert.Equal(t, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC), *sub.EndsAt)
	assert.Equal(t, 31, sub.DaysLeft(now))

	// renewing early extends from the current end date
	early := now.AddDate(0, 0, 10)
	require.NoError(t, sub.Activate(PlanQuarterly, early))
	assert.Equal(t, time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC), *sub.EndsAt)
	assert.Equal(t, now, *sub.StartsAt)
	assert.Equal(t, PlanQuarterly, sub.Plan)
}

func TestSubscription_Lapsed(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	sub, err := NewSubscription(uuid.New(), PlanMonthly)
	require.NoError(t, err)
	require.NoError(t, sub.Activate(PlanMonthly, now))

	later := now.AddDate(0, 2, 0)
	assert.False(t, sub.IsActive(later))
	assert.Equal(t, SubscriptionExpired, sub.CurrentStatus(later))
	assert.Equal(t, 0, sub.DaysLeft(later))

	// a lapsed subscription restarts from now
	require.NoError(t, sub.Activate(PlanMonthly, later))
	assert.Equal(t, later, *sub.StartsAt)
	assert.Equal(t, later.AddDate(0, 1, 0), *sub.EndsAt)

	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsActive(later))
	assert.ErrorIs(t, sub.Cancel(), shared.ErrInvalidState)
}

func TestPayment_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	sub, err := NewSubscription(uuid.New(), PlanMonthly)
	require.NoError(t, err)

	_, err = NewPayment(sub, PlanMonthly, decimal.Zero, "", now)
	assert.Equal(t, "INVALID_AMOUNT", errCode(err))

	p, err := NewPayment(sub, PlanMonthly, decimal.NewFromInt(99000), "VC", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.MerchantOrderID, "SUB-20260315-"))
	assert.Len(t, p.MerchantOrderID, len("SUB-20260315-")+8)
	assert.Equal(t, sub.TenantID, p.TenantID)
	assert.Equal(t, PaymentPending, p.Status)

	expires := now.Add(time.Hour)
	p.AttachSession("DS1234", "https://pay.example/DS1234", &expires)
	assert.False(t, p.IsExpired(now))
	assert.True(t, p.IsExpired(expires))

	require.NoError(t, p.MarkPaid("", now))
	assert.Equal(t, "DS1234", p.Reference)
	assert.Equal(t, PaymentPaid, p.Status)
	assert.ErrorIs(t, p.MarkPaid("DS1234", now), shared.ErrInvalidState)
	assert.ErrorIs(t, p.MarkFailed("late"), shared.ErrInvalidState)
}

func TestCallback_Succeeded(t *testing.T) {
	assert.True(t, (&Callback{ResultCode: "00"}).Succeeded())
	assert.False(t, (&Callback{ResultCode: "01"}).Succeeded())
}
