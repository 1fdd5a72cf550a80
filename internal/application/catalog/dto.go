package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Category DTOs
// =============================================================================

// CategoryRequest creates or updates a category
type CategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=1000"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ListFilter is the common list query
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
}

// =============================================================================
// Product DTOs
// =============================================================================

// ProductRequest creates or replaces a product
type ProductRequest struct {
	SKU        string          `json:"sku" binding:"required,min=1,max=50"`
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	CategoryID *uuid.UUID      `json:"category_id"`
	SupplierID *uuid.UUID      `json:"supplier_id"`
	Unit       string          `json:"unit" binding:"max=20"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int64           `json:"stock" binding:"min=0"`
	MinStock   int64           `json:"min_stock" binding:"min=0"`
	TrackStock *bool           `json:"track_stock"`
	Active     *bool           `json:"active"`
	CreatedBy  *uuid.UUID      `json:"-"`
}

// StockMode selects how a stock adjustment is applied
type StockMode string

const (
	StockModeSet StockMode = "set"
	StockModeAdd StockMode = "add"
)

// ProductStockRequest sets or adds product stock
type ProductStockRequest struct {
	Mode     StockMode `json:"mode" binding:"required,oneof=set add"`
	Quantity int64     `json:"quantity"`
}

// MaterialLine is one recipe line in a request
type MaterialLine struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ProductMaterialsRequest replaces a product's recipe
type ProductMaterialsRequest struct {
	Materials []MaterialLine `json:"materials" binding:"dive"`
}

// ImageUploadRequest asks for a presigned upload URL
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ImageUploadResponse is where the client PUTs the image
type ImageUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ConfirmImageRequest attaches an uploaded image to the product
type ConfirmImageRequest struct {
	Key string `json:"key" binding:"required"`
}

// ProductListFilter is the query of the product list
type ProductListFilter struct {
	ListFilter
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Active     *bool  `form:"active"`
	LowStock   bool   `form:"low_stock"`
}

// MaterialResponse is a recipe line in API responses
type MaterialResponse struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID          `json:"id"`
	SKU        string             `json:"sku"`
	Name       string             `json:"name"`
	CategoryID *uuid.UUID         `json:"category_id,omitempty"`
	SupplierID *uuid.UUID         `json:"supplier_id,omitempty"`
	Unit       string             `json:"unit"`
	Price      decimal.Decimal    `json:"price"`
	Cost       decimal.Decimal    `json:"cost"`
	Margin     decimal.Decimal    `json:"margin"`
	Stock      int64              `json:"stock"`
	MinStock   int64              `json:"min_stock"`
	TrackStock bool               `json:"track_stock"`
	LowStock   bool               `json:"low_stock"`
	Active     bool               `json:"active"`
	ImageKey   string             `json:"image_key,omitempty"`
	ImageURL   string             `json:"image_url,omitempty"`
	Materials  []MaterialResponse `json:"materials,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
		Unit:       p.Unit,
		Price:      p.Price,
		Cost:       p.Cost,
		Margin:     p.Margin(),
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		TrackStock: p.TrackStock,
		LowStock:   p.IsLowStock(),
		Active:     p.Active,
		ImageKey:   p.ImageKey,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, m := range p.Materials {
		resp.Materials = append(resp.Materials, MaterialResponse{RawMaterialID: m.RawMaterialID, Quantity: m.Quantity})
	}
	return resp
}

// =============================================================================
// Raw material DTOs
// =============================================================================

// RawMaterialRequest creates or updates a raw material
type RawMaterialRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Unit        string          `json:"unit" binding:"required,min=1,max=20"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// RawMaterialStockRequest sets or adds raw material stock
type RawMaterialStockRequest struct {
	Mode     StockMode       `json:"mode" binding:"required,oneof=set add"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RawMaterialListFilter is the query of the raw material list
type RawMaterialListFilter struct {
	ListFilter
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	LowStock   bool   `form:"low_stock"`
}

// RawMaterialResponse represents a raw material in API responses
type RawMaterialResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToRawMaterialResponse converts a domain raw material
func ToRawMaterialResponse(m *catalog.RawMaterial) RawMaterialResponse {
	return RawMaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Unit:        m.Unit,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		CostPerUnit: m.CostPerUnit,
		SupplierID:  m.SupplierID,
		LowStock:    m.IsLowStock(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
