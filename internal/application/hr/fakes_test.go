package hr

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployees struct {
	items map[uuid.UUID]*hr.Employee
}

func newFakeEmployees(employees ...*hr.Employee) *fakeEmployees {
	f := &fakeEmployees{items: make(map[uuid.UUID]*hr.Employee)}
	for _, e := range employees {
		f.items[e.ID] = e
	}
	return f
}

func (f *fakeEmployees) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*hr.Employee, error) {
	e, ok := f.items[id]
	if !ok || !e.BelongsTo(tenantID) {
		return nil, shared.NotFound("employee")
	}
	return e, nil
}

func (f *fakeEmployees) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]hr.Employee, error) {
	var out []hr.Employee
	for _, id := range ids {
		if e, ok := f.items[id]; ok && e.BelongsTo(tenantID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.Employee, int64, error) {
	var out []hr.Employee
	for _, e := range f.items {
		if !e.BelongsTo(tenantID) {
			continue
		}
		if active, ok := filter.Filters["active"].(bool); ok && e.Active != active {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (f *fakeEmployees) Save(_ context.Context, e *hr.Employee) error {
	f.items[e.ID] = e
	return nil
}

func (f *fakeEmployees) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeAttendance struct {
	items []*hr.Attendance
}

func (f *fakeAttendance) FindByEmployeeAndDate(_ context.Context, tenantID, employeeID uuid.UUID, day time.Time) (*hr.Attendance, error) {
	want := hr.DayOf(day)
	for _, a := range f.items {
		if a.BelongsTo(tenantID) && a.EmployeeID == employeeID && hr.DayOf(a.Date.In(day.Location())).Equal(want) {
			return a, nil
		}
	}
	return nil, shared.NotFound("attendance")
}

func (f *fakeAttendance) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.Attendance, int64, error) {
	var out []hr.Attendance
	for _, a := range f.items {
		if !a.BelongsTo(tenantID) {
			continue
		}
		if status, ok := filter.Filters["status"].(string); ok && string(a.Status) != status {
			continue
		}
		if from, ok := filter.Filters["from"].(time.Time); ok && a.Date.Before(from) {
			continue
		}
		if to, ok := filter.Filters["to"].(time.Time); ok && !a.Date.Before(to) {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendance) Save(_ context.Context, a *hr.Attendance) error {
	for i, existing := range f.items {
		if existing.ID == a.ID {
			f.items[i] = a
			return nil
		}
	}
	f.items = append(f.items, a)
	return nil
}

type fakeLeaves struct {
	items map[uuid.UUID]*hr.LeaveRequest
}

func (f *fakeLeaves) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*hr.LeaveRequest, error) {
	l, ok := f.items[id]
	if !ok || !l.BelongsTo(tenantID) {
		return nil, shared.NotFound("leave request")
	}
	return l, nil
}

func (f *fakeLeaves) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.LeaveRequest, int64, error) {
	var out []hr.LeaveRequest
	for _, l := range f.items {
		if !l.BelongsTo(tenantID) {
			continue
		}
		if status, ok := filter.Filters["status"].(string); ok && string(l.Status) != status {
			continue
		}
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaves) Save(_ context.Context, l *hr.LeaveRequest) error {
	f.items[l.ID] = l
	return nil
}

type fakeShares struct {
	items []*hr.ProfitShare
}

func (f *fakeShares) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*hr.ProfitShare, error) {
	for _, s := range f.items {
		if s.ID == id && s.BelongsTo(tenantID) {
			return s, nil
		}
	}
	return nil, shared.NotFound("profit share")
}

func (f *fakeShares) matching(tenantID uuid.UUID, filter shared.Filter) []hr.ProfitShare {
	var out []hr.ProfitShare
	for _, s := range f.items {
		if !s.BelongsTo(tenantID) {
			continue
		}
		if status, ok := filter.Filters["status"].(string); ok && string(s.Status) != status {
			continue
		}
		if emp, ok := filter.Filters["employee_id"].(string); ok && s.EmployeeID.String() != emp {
			continue
		}
		out = append(out, *s)
	}
	return out
}

func (f *fakeShares) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.ProfitShare, int64, error) {
	out := f.matching(tenantID, filter)
	return out, int64(len(out)), nil
}

func (f *fakeShares) FindForSummary(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hr.ProfitShare, error) {
	return f.matching(tenantID, filter), nil
}

func (f *fakeShares) Create(_ context.Context, s *hr.ProfitShare) error {
	f.items = append(f.items, s)
	return nil
}

func (f *fakeShares) Save(_ context.Context, _ *hr.ProfitShare) error {
	return nil
}

func (f *fakeShares) DeleteUnpaidBySale(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeShares) CountByEmployee(_ context.Context, tenantID, employeeID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range f.items {
		if s.BelongsTo(tenantID) && s.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

type fixedSettings struct {
	workStart string
}

func (f fixedSettings) Load(_ context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error) {
	s := settings.Defaults(tenantID)
	if f.workStart != "" {
		s.WorkStartTime = f.workStart
	}
	return s, nil
}
