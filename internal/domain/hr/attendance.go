package hr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// AttendanceStatus is the outcome of a working day
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

// IsValid checks if the status is known
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

// Attendance is one employee's record for one day
type Attendance struct {
	shared.TenantEntity
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Date       time.Time        `gorm:"not null;index"`
	CheckIn    *time.Time       `gorm:""`
	CheckOut   *time.Time       `gorm:""`
	Status     AttendanceStatus `gorm:"type:varchar(20);not null"`
	Notes      string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Attendance) TableName() string {
	return "attendances"
}

// Clock is a wall-clock time of day
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM"
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return Clock{}, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid time %q, expected HH:MM", s))
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On returns the clock time on the day of t, in t's location
func (c Clock) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

// DayOf truncates t to midnight in its location
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClockIn opens the day's record. Arriving after workStart marks the day late.
func ClockIn(employee *Employee, at time.Time, workStart Clock, notes string) (*Attendance, error) {
	if !employee.Active {
		return nil, shared.NewDomainError("EMPLOYEE_INACTIVE", "Employee is not active")
	}
	status := AttendancePresent
	if at.After(workStart.On(at)) {
		status = AttendanceLate
	}
	a := &Attendance{
		TenantEntity: shared.NewTenantEntity(employee.TenantID),
		EmployeeID:   employee.ID,
		Date:         DayOf(at),
		CheckIn:      &at,
		Status:       status,
		Notes:        strings.TrimSpace(notes),
	}
	return a, nil
}

// NewDayRecord records a day without a clock-in (absence or leave)
func NewDayRecord(employee *Employee, day time.Time, status AttendanceStatus, notes string) (*Attendance, error) {
	if status != AttendanceAbsent && status != AttendanceLeave {
		return nil, shared.NewDomainError("INVALID_STATUS", "Only absent or leave days can be recorded without a clock-in")
	}
	return &Attendance{
		TenantEntity: shared.NewTenantEntity(employee.TenantID),
		EmployeeID:   employee.ID,
		Date:         DayOf(day),
		Status:       status,
		Notes:        strings.TrimSpace(notes),
	}, nil
}

// ClockOut closes the day's record
func (a *Attendance) ClockOut(at time.Time) error {
	if a.CheckIn == nil {
		return shared.NewDomainError("NOT_CLOCKED_IN", "Cannot clock out without a clock-in")
	}
	if a.CheckOut != nil {
		return shared.NewDomainError("ALREADY_CLOCKED_OUT", "Already clocked out")
	}
	if at.Before(*a.CheckIn) {
		return shared.NewDomainError("INVALID_TIME", "Clock-out cannot be before clock-in")
	}
	a.CheckOut = &at
	a.Touch()
	return nil
}

// WorkedHours returns the time between clock-in and clock-out
func (a *Attendance) WorkedHours() time.Duration {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn)
}
