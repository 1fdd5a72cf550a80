package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfitShareService lists, totals and pays out profit shares
type ProfitShareService struct {
	shareRepo    hr.ProfitShareRepository
	employeeRepo hr.EmployeeRepository
	location     *time.Location
	logger       *zap.Logger
	now          func() time.Time
}

// NewProfitShareService creates a new ProfitShareService
func NewProfitShareService(shareRepo hr.ProfitShareRepository, employeeRepo hr.EmployeeRepository, location *time.Location, logger *zap.Logger) *ProfitShareService {
	if location == nil {
		location = time.UTC
	}
	return &ProfitShareService{
		shareRepo:    shareRepo,
		employeeRepo: employeeRepo,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ProfitShareService) filter(filter ProfitShareListFilter) (shared.Filter, error) {
	from, to, err := shared.DayRange(filter.From, filter.To, s.location)
	if err != nil {
		return shared.Filter{}, err
	}
	return filter.toFilter().
		With("employee_id", filter.EmployeeID).
		With("sale_id", filter.SaleID).
		With("status", filter.Status).
		With("from", from).
		With("to", to), nil
}

// List retrieves profit shares with filtering and pagination
func (s *ProfitShareService) List(ctx context.Context, tenantID uuid.UUID, filter ProfitShareListFilter) (shared.Paginated[ProfitShareResponse], error) {
	f, err := s.filter(filter)
	if err != nil {
		return shared.Paginated[ProfitShareResponse]{}, err
	}
	shares, total, err := s.shareRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[ProfitShareResponse]{}, err
	}
	items := make([]ProfitShareResponse, len(shares))
	for i := range shares {
		items[i] = ToProfitShareResponse(&shares[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Summary totals the matching shares per employee
func (s *ProfitShareService) Summary(ctx context.Context, tenantID uuid.UUID, filter ProfitShareListFilter) ([]hr.ProfitShareSummary, error) {
	f, err := s.filter(filter)
	if err != nil {
		return nil, err
	}
	shares, err := s.shareRepo.FindForSummary(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, share := range shares {
		if !seen[share.EmployeeID] {
			seen[share.EmployeeID] = true
			ids = append(ids, share.EmployeeID)
		}
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		employees, err := s.employeeRepo.FindByIDsForTenant(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		for _, e := range employees {
			names[e.ID] = e.Name
		}
	}

	summary := hr.Summarize(shares, names)
	if summary == nil {
		summary = []hr.ProfitShareSummary{}
	}
	return summary, nil
}

// Pay marks a share as handed out
func (s *ProfitShareService) Pay(ctx context.Context, tenantID, id uuid.UUID) (*ProfitShareResponse, error) {
	share, err := s.shareRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := share.MarkPaid(s.now()); err != nil {
		return nil, err
	}
	if err := s.shareRepo.Save(ctx, share); err != nil {
		return nil, err
	}
	s.logger.Info("Profit share paid",
		zap.String("tenant_id", tenantID.String()),
		zap.String("share_id", share.ID.String()),
		zap.String("amount", share.Amount.StringFixed(2)),
	)
	resp := ToProfitShareResponse(share)
	return &resp, nil
}
