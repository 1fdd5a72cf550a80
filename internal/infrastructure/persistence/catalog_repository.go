package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForTenant finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&category, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "category")
	}
	return &category, nil
}

// FindAllForTenant lists categories
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Category, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&catalog.Category{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "name"))
	return list[catalog.Category](q, filter, CategorySortFields, "name")
}

// ExistsByName checks the case-insensitive name uniqueness within a tenant
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := conn(ctx, r.db).Model(&catalog.Category{}).
		Scopes(tenantScope(tenantID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return conn(ctx, r.db).Save(category).Error
}

// DeleteForTenant deletes a category within a tenant
func (r *GormCategoryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteForTenant(ctx, r.db, &catalog.Category{}, tenantID, id, "category")
}

// CountProducts counts the products filed under a category
func (r *GormCategoryRepository) CountProducts(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&catalog.Product{}).
		Scopes(tenantScope(tenantID)).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product with its recipe
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).
		Preload("Materials").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "product")
	}
	return &product, nil
}

// FindByIDsForTenant loads products with their recipes. Inside a transaction
// the rows are locked so concurrent sales cannot oversell.
func (r *GormProductRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := conn(ctx, r.db).Scopes(tenantScope(tenantID)).Preload("Materials").Where("id IN ?", ids)
	if inTransaction(ctx) {
		q = forUpdate(q)
	}
	var products []catalog.Product
	if err := q.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllForTenant lists products; supports filters: category_id, supplier_id, active, low_stock
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&catalog.Product{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "name", "sku"))
	if id, ok := uuidFilter(filter, "category_id"); ok {
		q = q.Where("category_id = ?", id)
	}
	if id, ok := uuidFilter(filter, "supplier_id"); ok {
		q = q.Where("supplier_id = ?", id)
	}
	if active, ok := boolFilter(filter, "active"); ok {
		q = q.Where("active = ?", active)
	}
	if low, ok := boolFilter(filter, "low_stock"); ok && low {
		q = q.Where("track_stock = ? AND stock <= min_stock", true)
	}
	return list[catalog.Product](q, filter, ProductSortFields, "created_at")
}

// ExistsBySKU checks the case-insensitive SKU uniqueness within a tenant
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string, excludeID *uuid.UUID) (bool, error) {
	q := conn(ctx, r.db).Model(&catalog.Product{}).
		Scopes(tenantScope(tenantID)).
		Where("LOWER(sku) = ?", strings.ToLower(strings.TrimSpace(sku)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// Save creates or updates a product without touching its recipe
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return conn(ctx, r.db).Omit("Materials").Save(product).Error
}

// UpdateStock persists only the stock column
func (r *GormProductRepository) UpdateStock(ctx context.Context, product *catalog.Product) error {
	result := conn(ctx, r.db).Model(&catalog.Product{}).
		Scopes(tenantScope(product.TenantID)).
		Where("id = ?", product.ID).
		Updates(map[string]any{"stock": product.Stock, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("product")
	}
	return nil
}

// ReplaceMaterials replaces the recipe of a product
func (r *GormProductRepository) ReplaceMaterials(ctx context.Context, tenantID, productID uuid.UUID, materials []catalog.ProductMaterial) error {
	write := func(tx *gorm.DB) error {
		if err := tx.Scopes(tenantScope(tenantID)).
			Where("product_id = ?", productID).
			Delete(&catalog.ProductMaterial{}).Error; err != nil {
			return err
		}
		if len(materials) == 0 {
			return nil
		}
		return tx.Create(&materials).Error
	}
	if inTransaction(ctx) {
		return write(conn(ctx, r.db))
	}
	return conn(ctx, r.db).Transaction(write)
}

// DeleteForTenant deletes a product and its recipe
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	remove := func(tx *gorm.DB) error {
		if err := tx.Scopes(tenantScope(tenantID)).
			Where("product_id = ?", id).
			Delete(&catalog.ProductMaterial{}).Error; err != nil {
			return err
		}
		return deleteForTenant(ctx, tx, &catalog.Product{}, tenantID, id, "product")
	}
	if inTransaction(ctx) {
		return remove(conn(ctx, r.db))
	}
	return conn(ctx, r.db).Transaction(remove)
}

// GormRawMaterialRepository implements catalog.RawMaterialRepository using GORM
type GormRawMaterialRepository struct {
	db *gorm.DB
}

var _ catalog.RawMaterialRepository = (*GormRawMaterialRepository)(nil)

// NewGormRawMaterialRepository creates a new GormRawMaterialRepository
func NewGormRawMaterialRepository(db *gorm.DB) *GormRawMaterialRepository {
	return &GormRawMaterialRepository{db: db}
}

// FindByIDForTenant finds a raw material by ID within a tenant
func (r *GormRawMaterialRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.RawMaterial, error) {
	var material catalog.RawMaterial
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&material, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "raw material")
	}
	return &material, nil
}

// FindByIDsForTenant loads raw materials, locking them inside a transaction
func (r *GormRawMaterialRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.RawMaterial, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := conn(ctx, r.db).Scopes(tenantScope(tenantID)).Where("id IN ?", ids)
	if inTransaction(ctx) {
		q = forUpdate(q)
	}
	var materials []catalog.RawMaterial
	if err := q.Order("id").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// FindAllForTenant lists raw materials; supports filters: supplier_id, low_stock
func (r *GormRawMaterialRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.RawMaterial, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&catalog.RawMaterial{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "name"))
	if id, ok := uuidFilter(filter, "supplier_id"); ok {
		q = q.Where("supplier_id = ?", id)
	}
	if low, ok := boolFilter(filter, "low_stock"); ok && low {
		q = q.Where("stock <= min_stock")
	}
	return list[catalog.RawMaterial](q, filter, RawMaterialSortFields, "name")
}

// Save creates or updates a raw material
func (r *GormRawMaterialRepository) Save(ctx context.Context, material *catalog.RawMaterial) error {
	return conn(ctx, r.db).Save(material).Error
}

// UpdateStock persists only the stock column
func (r *GormRawMaterialRepository) UpdateStock(ctx context.Context, material *catalog.RawMaterial) error {
	result := conn(ctx, r.db).Model(&catalog.RawMaterial{}).
		Scopes(tenantScope(material.TenantID)).
		Where("id = ?", material.ID).
		Updates(map[string]any{"stock": material.Stock, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("raw material")
	}
	return nil
}

// DeleteForTenant deletes a raw material within a tenant
func (r *GormRawMaterialRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteForTenant(ctx, r.db, &catalog.RawMaterial{}, tenantID, id, "raw material")
}

// CountRecipeUsage counts the recipes that consume a raw material
func (r *GormRawMaterialRepository) CountRecipeUsage(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&catalog.ProductMaterial{}).
		Scopes(tenantScope(tenantID)).
		Where("raw_material_id = ?", id).
		Count(&count).Error
	return count, err
}
