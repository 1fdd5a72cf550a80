package hr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// LeaveType classifies a leave request
type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
	LeaveOther  LeaveType = "other"
)

// IsValid checks if the leave type is known
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveUnpaid, LeaveOther:
		return true
	}
	return false
}

// LeaveStatus is the decision state of a request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// MaxLeaveDays caps the days a single request may cover
const MaxLeaveDays = 366

// LeaveRequest asks for days off
type LeaveRequest struct {
	shared.TenantEntity
	EmployeeID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Type         LeaveType   `gorm:"type:varchar(20);not null"`
	StartDate    time.Time   `gorm:"not null"`
	EndDate      time.Time   `gorm:"not null"`
	Reason       string      `gorm:"type:text"`
	Status       LeaveStatus `gorm:"type:varchar(20);not null;index"`
	DecidedBy    *uuid.UUID  `gorm:"type:uuid"`
	DecidedAt    *time.Time
	DecisionNote string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// NewLeaveRequest creates a pending request
func NewLeaveRequest(employee *Employee, leaveType LeaveType, start, end time.Time, reason string) (*LeaveRequest, error) {
	if !leaveType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEAVE_TYPE", "Leave type must be annual, sick, unpaid or other")
	}
	start, end = DayOf(start), DayOf(end)
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	if calendarDays(start, end) > MaxLeaveDays {
		return nil, errLeaveTooLong
	}
	return &LeaveRequest{
		TenantEntity: shared.NewTenantEntity(employee.TenantID),
		EmployeeID:   employee.ID,
		Type:         leaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       strings.TrimSpace(reason),
		Status:       LeavePending,
	}, nil
}

var errLeaveTooLong = shared.NewDomainError("INVALID_DATE_RANGE",
	fmt.Sprintf("A leave request cannot cover more than %d days", MaxLeaveDays))

// Approve accepts the request
func (l *LeaveRequest) Approve(by uuid.UUID, note string) error {
	if l.Days() > MaxLeaveDays {
		return errLeaveTooLong
	}
	return l.decide(LeaveApproved, by, note)
}

// Reject declines the request
func (l *LeaveRequest) Reject(by uuid.UUID, note string) error {
	return l.decide(LeaveRejected, by, note)
}

func (l *LeaveRequest) decide(status LeaveStatus, by uuid.UUID, note string) error {
	if l.Status != LeavePending {
		return shared.NewDomainError("INVALID_STATE", "Only pending leave requests can be decided")
	}
	now := time.Now()
	l.Status = status
	l.DecidedBy = &by
	l.DecidedAt = &now
	l.DecisionNote = strings.TrimSpace(note)
	l.Touch()
	return nil
}

// Days returns the number of calendar days covered, both ends included
func (l *LeaveRequest) Days() int {
	return calendarDays(l.StartDate, l.EndDate)
}

// calendarDays counts the dates from start to end, both included. Dates are
// compared as civil days so DST shifts and far-off years count exactly.
func calendarDays(start, end time.Time) int {
	day := func(t time.Time) int64 {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
	}
	return int(day(end)-day(start)) + 1
}
