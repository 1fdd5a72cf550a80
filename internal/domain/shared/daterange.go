package shared

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted by list and report queries
const DateLayout = "2006-01-02"

// DayRange converts inclusive calendar dates into a [from, to) time range in loc.
// Empty bounds stay nil; "to" becomes midnight of the following day.
func DayRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	parse := func(s, field string) (*time.Time, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		t, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return nil, InvalidInput(field + " must be a date in YYYY-MM-DD format")
		}
		return &t, nil
	}
	start, err := parse(from, "from")
	if err != nil {
		return nil, nil, err
	}
	end, err := parse(to, "to")
	if err != nil {
		return nil, nil, err
	}
	if end != nil {
		next := end.AddDate(0, 0, 1)
		end = &next
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, InvalidInput("from must not be after to")
	}
	return start, end, nil
}
