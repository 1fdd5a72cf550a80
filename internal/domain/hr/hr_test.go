package hr

import (
	"errors"
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

func newEmployee(t *testing.T, percent string) *Employee {
	t.Helper()
	e, err := NewEmployee(uuid.New(), EmployeeDetails{
		Name:               " Budi ",
		Position:           "Barista",
		Email:              "Budi@Example.com",
		Salary:             decimal.NewFromInt(3000000),
		ProfitSharePercent: decimal.RequireFromString(percent),
	})
	require.NoError(t, err)
	return e
}

func TestNewEmployee(t *testing.T) {
	e := newEmployee(t, "10")
	assert.Equal(t, "Budi", e.Name)
	assert.Equal(t, "budi@example.com", e.Email)
	assert.True(t, e.Active)
	assert.False(t, e.JoinedAt.IsZero())
	assert.True(t, e.EarnsProfitShare())

	e.SetActive(false)
	assert.False(t, e.EarnsProfitShare())
}

func TestNewEmployee_Validation(t *testing.T) {
	tests := []struct {
		name    string
		details EmployeeDetails
		code    string
	}{
		{"empty name", EmployeeDetails{Name: " "}, "INVALID_NAME"},
		{"bad email", EmployeeDetails{Name: "A", Email: "nope"}, "INVALID_EMAIL"},
		{"negative salary", EmployeeDetails{Name: "A", Salary: decimal.NewFromInt(-1)}, "INVALID_SALARY"},
		{"percent over 100", EmployeeDetails{Name: "A", ProfitSharePercent: decimal.NewFromInt(101)}, "INVALID_PERCENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmployee(uuid.New(), tt.details)
			assert.Equal(t, tt.code, errCode(err))
		})
	}
}

func TestClockIn(t *testing.T) {
	e := newEmployee(t, "0")
	start, err := ParseClock("08:00")
	require.NoError(t, err)

	onTime := time.Date(2026, 3, 2, 7, 55, 0, 0, time.UTC)
	a, err := ClockIn(e, onTime, start, "")
	require.NoError(t, err)
	assert.Equal(t, AttendancePresent, a.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), a.Date)
	assert.Equal(t, e.TenantID, a.TenantID)

	late, err := ClockIn(e, onTime.Add(10*time.Minute), start, "macet")
	require.NoError(t, err)
	assert.Equal(t, AttendanceLate, late.Status)

	e.SetActive(false)
	_, err = ClockIn(e, onTime, start, "")
	assert.Equal(t, "EMPLOYEE_INACTIVE", errCode(err))
}

func TestClockOut(t *testing.T) {
	e := newEmployee(t, "0")
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	a, err := ClockIn(e, in, Clock{Hour: 8}, "")
	require.NoError(t, err)

	assert.Equal(t, "INVALID_TIME", errCode(a.ClockOut(in.Add(-time.Minute))))
	require.NoError(t, a.ClockOut(in.Add(8*time.Hour)))
	assert.Equal(t, 8*time.Hour, a.WorkedHours())
	assert.Equal(t, "ALREADY_CLOCKED_OUT", errCode(a.ClockOut(in.Add(9*time.Hour))))

	absent, err := NewDayRecord(e, in, AttendanceAbsent, "")
	require.NoError(t, err)
	assert.Equal(t, "NOT_CLOCKED_IN", errCode(absent.ClockOut(in)))

	_, err = NewDayRecord(e, in, AttendancePresent, "")
	assert.Equal(t, "INVALID_STATUS", errCode(err))
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("17:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 17, Minute: 30}, c)

	_, err = ParseClock("25:00")
	assert.Equal(t, "INVALID_TIME", errCode(err))
}

func TestLeaveRequest(t *testing.T) {
	e := newEmployee(t, "0")
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	_, err := NewLeaveRequest(e, LeaveAnnual, start, start.AddDate(0, 0, -1), "")
	assert.Equal(t, "INVALID_DATE_RANGE", errCode(err))
	_, err = NewLeaveRequest(e, "holiday", start, start, "")
	assert.Equal(t, "INVALID_LEAVE_TYPE", errCode(err))

	l, err := NewLeaveRequest(e, LeaveAnnual, start, start.AddDate(0, 0, 2), "mudik")
	require.NoError(t, err)
	assert.Equal(t, LeavePending, l.Status)
	assert.Equal(t, 3, l.Days())

	approver := uuid.New()
	require.NoError(t, l.Approve(approver, "ok"))
	assert.Equal(t, LeaveApproved, l.Status)
	assert.Equal(t, approver, *l.DecidedBy)
	assert.ErrorIs(t, l.Reject(approver, ""), shared.ErrInvalidState)
}

func TestLeaveRequest_Span(t *testing.T) {
	e := newEmployee(t, "0")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		wantDays int
		wantErr  string
	}{
		{"single day", start, 1, ""},
		{"2026 through new year's day is exactly the cap", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 366, ""},
		{"one day over the cap", time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), 0, "INVALID_DATE_RANGE"},
		{"far future", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), 0, "INVALID_DATE_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLeaveRequest(e, LeaveAnnual, start, tt.end, "")
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errCode(err))
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, l.Days())
		})
	}
}

func TestLeaveRequest_DaysAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("no tzdata")
	}
	e := newEmployee(t, "0")
	// clocks move forward on 2026-03-29
	l, err := NewLeaveRequest(e, LeaveSick, time.Date(2026, 3, 28, 0, 0, 0, 0, berlin), time.Date(2026, 3, 30, 0, 0, 0, 0, berlin), "")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Days())
}

func TestLeaveRequest_ApproveRejectsOverlongStoredRequest(t *testing.T) {
	e := newEmployee(t, "0")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// rows written before the cap existed
	l := &LeaveRequest{
		TenantEntity: shared.NewTenantEntity(e.TenantID),
		EmployeeID:   e.ID,
		Type:         LeaveAnnual,
		StartDate:    start,
		EndDate:      time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       LeavePending,
	}
	assert.Equal(t, 2912443, l.Days())
	assert.Equal(t, "INVALID_DATE_RANGE", errCode(l.Approve(uuid.New(), "")))
	assert.Equal(t, LeavePending, l.Status)
}

func TestProfitShare(t *testing.T) {
	e := newEmployee(t, "10")
	saleID := uuid.New()

	share := NewProfitShare(e, saleID, decimal.NewFromInt(7500))
	assert.True(t, share.Amount.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, ProfitShareUnpaid, share.Status)

	loss := NewProfitShare(e, saleID, decimal.NewFromInt(-500))
	assert.True(t, loss.Amount.IsZero())
	assert.True(t, loss.BaseProfit.IsZero())

	require.NoError(t, share.MarkPaid(time.Now()))
	assert.NotNil(t, share.PaidAt)
	assert.ErrorIs(t, share.MarkPaid(time.Now()), shared.ErrInvalidState)
}

func TestSummarize(t *testing.T) {
	a := newEmployee(t, "10")
	b := newEmployee(t, "5")

	s1 := NewProfitShare(a, uuid.New(), decimal.NewFromInt(1000))
	s2 := NewProfitShare(a, uuid.New(), decimal.NewFromInt(2000))
	s3 := NewProfitShare(b, uuid.New(), decimal.NewFromInt(2000))
	require.NoError(t, s2.MarkPaid(time.Now()))

	out := Summarize([]ProfitShare{*s1, *s2, *s3}, map[uuid.UUID]string{a.ID: "Budi"})
	require.Len(t, out, 2)
	assert.Equal(t, "Budi", out[0].EmployeeName)
	assert.Equal(t, int64(2), out[0].Count)
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(300)))
	assert.True(t, out[0].Paid.Equal(decimal.NewFromInt(200)))
	assert.True(t, out[0].Unpaid.Equal(decimal.NewFromInt(100)))
	assert.True(t, out[1].Unpaid.Equal(decimal.NewFromInt(100)))
}
