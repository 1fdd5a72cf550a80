package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReturnService books returns against past sales
type ReturnService struct {
	tx          shared.TransactionManager
	saleRepo    sales.SaleRepository
	returnRepo  sales.ReturnRepository
	productRepo catalog.ProductRepository
	metrics     *telemetry.BusinessMetrics
	location    *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewReturnService creates a new ReturnService. metrics may be nil.
func NewReturnService(
	tx shared.TransactionManager,
	saleRepo sales.SaleRepository,
	returnRepo sales.ReturnRepository,
	productRepo catalog.ProductRepository,
	metrics *telemetry.BusinessMetrics,
	location *time.Location,
	logger *zap.Logger,
) *ReturnService {
	if location == nil {
		location = time.UTC
	}
	return &ReturnService{
		tx:          tx,
		saleRepo:    saleRepo,
		returnRepo:  returnRepo,
		productRepo: productRepo,
		metrics:     metrics,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateReturn records returned goods, bumps the returned quantities of the
// sale lines, credits the sale's balance and restocks the products of a
// stock return, in one transaction
func (s *ReturnService) CreateReturn(ctx context.Context, tenantID, processedBy uuid.UUID, req CreateReturnRequest) (*ReturnResponse, error) {
	var ret *sales.Return
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, req.SaleID)
		if err != nil {
			return err
		}
		number, err := s.returnRepo.NextReturnNumber(ctx, tenantID, s.now().In(s.location))
		if err != nil {
			return err
		}
		ret, err = sales.NewReturn(sale, number, req.Type, req.Reason, processedBy)
		if err != nil {
			return err
		}
		touched := make(map[uuid.UUID]bool, len(req.Items))
		for _, line := range req.Items {
			if err := ret.AddItem(sale, line.SaleItemID, line.Quantity); err != nil {
				return err
			}
			touched[line.SaleItemID] = true
		}
		if err := ret.Finalize(sale); err != nil {
			return err
		}

		changed := make([]sales.SaleItem, 0, len(touched))
		for _, item := range sale.Items {
			if touched[item.ID] {
				changed = append(changed, item)
			}
		}
		if err := s.saleRepo.UpdateReturnedQuantities(ctx, changed); err != nil {
			return err
		}
		if err := s.saleRepo.UpdatePayment(ctx, sale); err != nil {
			return err
		}
		if ret.RestocksGoods() {
			if err := s.restock(ctx, tenantID, ret); err != nil {
				return err
			}
		}
		return s.returnRepo.Create(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordReturn(ctx, string(ret.Type), ret.RefundAmount)
	}
	s.logger.Info("Return created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("return_number", ret.ReturnNumber),
		zap.String("type", string(ret.Type)),
		zap.String("refund", ret.RefundAmount.String()),
		zap.String("credit", ret.CreditAmount.String()))
	resp := ToReturnResponse(ret)
	return &resp, nil
}

// restock puts the returned units of tracked products back on the shelf.
// Products deleted since the sale are skipped.
func (s *ReturnService) restock(ctx context.Context, tenantID uuid.UUID, ret *sales.Return) error {
	units := make(map[uuid.UUID]int64)
	var ids []uuid.UUID
	for _, item := range ret.Items {
		if _, ok := units[item.ProductID]; !ok {
			ids = append(ids, item.ProductID)
		}
		units[item.ProductID] += item.Quantity
	}
	products, err := s.productRepo.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	for i := range products {
		p := &products[i]
		if !p.TrackStock {
			continue
		}
		if err := p.AdjustStock(units[p.ID]); err != nil {
			return err
		}
		if err := s.productRepo.UpdateStock(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a return with its lines
func (s *ReturnService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToReturnResponse(ret)
	return &resp, nil
}

// List retrieves returns with filtering and pagination
func (s *ReturnService) List(ctx context.Context, tenantID uuid.UUID, filter ReturnListFilter) (shared.Paginated[ReturnResponse], error) {
	f, err := filter.toFilter(s.location)
	if err != nil {
		return shared.Paginated[ReturnResponse]{}, err
	}
	f = f.With("sale_id", filter.SaleID).With("type", filter.Type)

	list, total, err := s.returnRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[ReturnResponse]{}, err
	}
	items := make([]ReturnResponse, len(list))
	for i := range list {
		items[i] = ToReturnResponse(&list[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}
