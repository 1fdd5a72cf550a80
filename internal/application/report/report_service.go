package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/report"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/retry"
	"go.uber.org/zap"
)

const defaultTopProducts = 10

// ReportService loads a tenant's sale and return lines and computes reports over them
type ReportService struct {
	lines    report.LineRepository
	retry    retry.Policy
	location *time.Location
	logger   *zap.Logger
}

// NewReportService creates a new ReportService. Line loading retries with the default policy.
func NewReportService(lines report.LineRepository, location *time.Location, logger *zap.Logger) *ReportService {
	if location == nil {
		location = time.UTC
	}
	policy := retry.Default()
	policy.Logger = logger
	policy.Retryable = isTransient
	return &ReportService{lines: lines, retry: policy, location: location, logger: logger}
}

// WithRetryPolicy replaces the retry policy
func (s *ReportService) WithRetryPolicy(p retry.Policy) *ReportService {
	s.retry = p
	return s
}

// Financial computes the profit and loss and cash flow summary
func (s *ReportService) Financial(ctx context.Context, tenantID uuid.UUID, q ReportQuery) (*FinancialReport, error) {
	filter, err := q.toFilter(s.location)
	if err != nil {
		return nil, err
	}
	sales, returns, err := s.load(ctx, tenantID, filter, true)
	if err != nil {
		return nil, err
	}
	return &FinancialReport{Filter: filter, Summary: report.Compute(sales, returns, filter)}, nil
}

// Daily computes the summary of every day in the filter
func (s *ReportService) Daily(ctx context.Context, tenantID uuid.UUID, q ReportQuery) (*DailyReport, error) {
	filter, err := q.toFilter(s.location)
	if err != nil {
		return nil, err
	}
	sales, returns, err := s.load(ctx, tenantID, filter, true)
	if err != nil {
		return nil, err
	}
	return &DailyReport{Filter: filter, Days: report.Daily(sales, returns, filter, s.location)}, nil
}

// TopProducts ranks products by quantity (default) or revenue
func (s *ReportService) TopProducts(ctx context.Context, tenantID uuid.UUID, q TopProductsQuery) (*TopProductsReport, error) {
	filter, err := q.toFilter(s.location)
	if err != nil {
		return nil, err
	}
	by := report.RankByQuantity
	if q.By == string(report.RankByRevenue) {
		by = report.RankByRevenue
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultTopProducts
	}
	sales, _, err := s.load(ctx, tenantID, filter, false)
	if err != nil {
		return nil, err
	}
	return &TopProductsReport{Filter: filter, By: by, Products: report.TopProducts(sales, filter, by, limit)}, nil
}

func (s *ReportService) load(ctx context.Context, tenantID uuid.UUID, filter report.Filter, withReturns bool) ([]report.SaleLine, []report.ReturnLine, error) {
	var sales []report.SaleLine
	var returns []report.ReturnLine
	err := retry.Do(ctx, s.retry, func(ctx context.Context) error {
		var err error
		if sales, err = s.lines.SaleLines(ctx, tenantID, filter); err != nil {
			return err
		}
		if withReturns {
			returns, err = s.lines.ReturnLines(ctx, tenantID, filter)
		}
		return err
	})
	if err != nil {
		s.logger.Error("Failed to load report lines", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, nil, err
	}
	return sales, returns, nil
}

// domain errors describe the request, not the store
func isTransient(err error) bool {
	var de *shared.DomainError
	return !errors.As(err, &de)
}
