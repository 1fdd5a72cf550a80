package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, category *Category) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountProducts(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	// FindByIDsForTenant loads products with their recipe lines
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error
	// UpdateStock persists only the stock column; used inside sale and return transactions
	UpdateStock(ctx context.Context, product *Product) error
	// ReplaceMaterials replaces the recipe of a product
	ReplaceMaterials(ctx context.Context, tenantID, productID uuid.UUID, materials []ProductMaterial) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// RawMaterialRepository defines the interface for raw material persistence
type RawMaterialRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RawMaterial, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]RawMaterial, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]RawMaterial, int64, error)
	Save(ctx context.Context, material *RawMaterial) error
	UpdateStock(ctx context.Context, material *RawMaterial) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountRecipeUsage(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}
