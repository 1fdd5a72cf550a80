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

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	supplierRepo partner.SupplierRepository
	materialRepo catalog.RawMaterialRepository
	images       *ProductImageService
	logger       *zap.Logger
}

// NewProductService creates a new ProductService. images may be nil when
// object storage is not configured.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	supplierRepo partner.SupplierRepository,
	materialRepo catalog.RawMaterialRepository,
	images *ProductImageService,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
		images:       images,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	if err := s.ensureSKUFree(ctx, tenantID, req.SKU, nil); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, tenantID, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name, req.Unit, req.Price, req.Cost)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		product.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.applyOptional(product, req); err != nil {
		return nil, err
	}
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.respond(ctx, product), nil
}

// GetByID retrieves a product with its recipe
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, product), nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	f := filter.toFilter().
		With("category_id", filter.CategoryID).
		With("supplier_id", filter.SupplierID).
		With("active", filter.Active)
	if filter.LowStock {
		f = f.With("low_stock", true)
	}

	products, total, err := s.productRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *s.respond(ctx, &products[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Update replaces the product details. Stock is changed through AdjustStock.
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSKUFree(ctx, tenantID, req.SKU, &id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, tenantID, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	if err := product.ChangeSKU(req.SKU); err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Unit, req.Price, req.Cost); err != nil {
		return nil, err
	}
	if err := s.applyOptional(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.respond(ctx, product), nil
}

// Delete removes a product and its recipe. Past sale lines keep their copy
// of the product name and price.
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if product.ImageKey != "" && s.images != nil {
		s.images.remove(ctx, product.ImageKey)
	}
	return nil
}

// AdjustStock sets or adds to the stock level (stock opname and restocking)
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, req ProductStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	before := product.Stock
	switch req.Mode {
	case StockModeSet:
		err = product.SetStock(req.Quantity)
	case StockModeAdd:
		err = product.AdjustStock(req.Quantity)
	default:
		err = shared.InvalidInput("Stock mode must be set or add")
	}
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStock(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", id.String()),
		zap.Int64("before", before),
		zap.Int64("after", product.Stock))
	return s.respond(ctx, product), nil
}

// SetMaterials replaces the recipe of a product
func (s *ProductService) SetMaterials(ctx context.Context, tenantID, id uuid.UUID, req ProductMaterialsRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(req.Materials))
	ids := make([]uuid.UUID, 0, len(req.Materials))
	for _, line := range req.Materials {
		if seen[line.RawMaterialID] {
			return nil, shared.InvalidInput("Each raw material can appear only once in a recipe")
		}
		seen[line.RawMaterialID] = true
		ids = append(ids, line.RawMaterialID)
	}
	found, err := s.materialRepo.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, shared.NewDomainError("INVALID_RAW_MATERIAL", "Raw material not found")
	}

	materials := make([]catalog.ProductMaterial, 0, len(req.Materials))
	for _, line := range req.Materials {
		pm, err := catalog.NewProductMaterial(tenantID, product.ID, line.RawMaterialID, line.Quantity)
		if err != nil {
			return nil, err
		}
		materials = append(materials, pm)
	}
	if err := s.productRepo.ReplaceMaterials(ctx, tenantID, product.ID, materials); err != nil {
		return nil, err
	}
	product.Materials = materials
	return s.respond(ctx, product), nil
}

// RequestImageUpload returns a presigned URL the client uploads the product image to
func (s *ProductService) RequestImageUpload(ctx context.Context, tenantID, id uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.images == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return nil, err
	}
	return s.images.uploadURL(ctx, tenantID, id, req.ContentType)
}

// ConfirmImage attaches an uploaded image to the product, replacing the previous one
func (s *ProductService) ConfirmImage(ctx context.Context, tenantID, id uuid.UUID, req ConfirmImageRequest) (*ProductResponse, error) {
	if s.images == nil {
		return nil, ErrStorageDisabled
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.images.confirm(ctx, tenantID, id, req.Key); err != nil {
		return nil, err
	}

	previous := product.ImageKey
	product.SetImage(req.Key)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if previous != "" && previous != req.Key {
		s.images.remove(ctx, previous)
	}
	return s.respond(ctx, product), nil
}

func (s *ProductService) applyOptional(product *catalog.Product, req ProductRequest) error {
	product.SetCategory(req.CategoryID)
	product.SetSupplier(req.SupplierID)
	if err := product.SetMinStock(req.MinStock); err != nil {
		return err
	}
	if req.TrackStock != nil {
		product.SetTrackStock(*req.TrackStock)
	}
	if req.Active != nil {
		product.SetActive(*req.Active)
	}
	return nil
}

func (s *ProductService) ensureSKUFree(ctx context.Context, tenantID uuid.UUID, sku string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, sku, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}
	return nil
}

func (s *ProductService) checkReferences(ctx context.Context, tenantID uuid.UUID, categoryID, supplierID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, *categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return err
		}
	}
	if supplierID != nil {
		if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *supplierID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
			}
			return err
		}
	}
	return nil
}

func (s *ProductService) respond(ctx context.Context, product *catalog.Product) *ProductResponse {
	resp := ToProductResponse(product)
	if product.ImageKey != "" && s.images != nil {
		resp.ImageURL = s.images.downloadURL(ctx, product.ImageKey)
	}
	return &resp
}
