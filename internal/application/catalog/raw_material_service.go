package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RawMaterialService handles raw material operations
type RawMaterialService struct {
	materialRepo catalog.RawMaterialRepository
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewRawMaterialService creates a new RawMaterialService
func NewRawMaterialService(
	materialRepo catalog.RawMaterialRepository,
	supplierRepo partner.SupplierRepository,
	logger *zap.Logger,
) *RawMaterialService {
	return &RawMaterialService{
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create creates a new raw material
func (s *RawMaterialService) Create(ctx context.Context, tenantID uuid.UUID, req RawMaterialRequest) (*RawMaterialResponse, error) {
	if err := s.checkSupplier(ctx, tenantID, req.SupplierID); err != nil {
		return nil, err
	}
	material, err := catalog.NewRawMaterial(tenantID, req.Name, req.Unit, req.CostPerUnit)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		material.SetCreatedBy(*req.CreatedBy)
	}
	if err := material.SetStock(req.Stock); err != nil {
		return nil, err
	}
	if err := material.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}
	material.SetSupplier(req.SupplierID)

	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}
	resp := ToRawMaterialResponse(material)
	return &resp, nil
}

// GetByID retrieves a raw material
func (s *RawMaterialService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*RawMaterialResponse, error) {
	material, err := s.materialRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToRawMaterialResponse(material)
	return &resp, nil
}

// List retrieves raw materials with filtering and pagination
func (s *RawMaterialService) List(ctx context.Context, tenantID uuid.UUID, filter RawMaterialListFilter) (shared.Paginated[RawMaterialResponse], error) {
	f := filter.toFilter().With("supplier_id", filter.SupplierID)
	if filter.LowStock {
		f = f.With("low_stock", true)
	}
	materials, total, err := s.materialRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[RawMaterialResponse]{}, err
	}
	items := make([]RawMaterialResponse, len(materials))
	for i := range materials {
		items[i] = ToRawMaterialResponse(&materials[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Update changes the raw material details. Stock is changed through AdjustStock.
func (s *RawMaterialService) Update(ctx context.Context, tenantID, id uuid.UUID, req RawMaterialRequest) (*RawMaterialResponse, error) {
	material, err := s.materialRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSupplier(ctx, tenantID, req.SupplierID); err != nil {
		return nil, err
	}
	if err := material.Update(req.Name, req.Unit, req.CostPerUnit); err != nil {
		return nil, err
	}
	if err := material.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}
	material.SetSupplier(req.SupplierID)

	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}
	resp := ToRawMaterialResponse(material)
	return &resp, nil
}

// Delete removes a raw material that no recipe consumes
func (s *RawMaterialService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.materialRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	count, err := s.materialRepo.CountRecipeUsage(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", "Raw material is used by product recipes")
	}
	return s.materialRepo.DeleteForTenant(ctx, tenantID, id)
}

// AdjustStock sets or adds to the stock level
func (s *RawMaterialService) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, req RawMaterialStockRequest) (*RawMaterialResponse, error) {
	material, err := s.materialRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	before := material.Stock
	switch req.Mode {
	case StockModeSet:
		err = material.SetStock(req.Quantity)
	case StockModeAdd:
		err = material.AdjustStock(req.Quantity)
	default:
		err = shared.InvalidInput("Stock mode must be set or add")
	}
	if err != nil {
		return nil, err
	}
	if err := s.materialRepo.UpdateStock(ctx, material); err != nil {
		return nil, err
	}

	s.logger.Info("Raw material stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("raw_material_id", id.String()),
		zap.String("before", before.String()),
		zap.String("after", material.Stock.String()))
	resp := ToRawMaterialResponse(material)
	return &resp, nil
}

func (s *RawMaterialService) checkSupplier(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID) error {
	if supplierID == nil {
		return nil
	}
	if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *supplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
		}
		return err
	}
	return nil
}
