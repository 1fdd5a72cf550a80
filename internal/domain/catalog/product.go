package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item.
// Cost is the per-unit HPP (cost of goods) captured on every sale line.
type Product struct {
	shared.TenantEntity
	SKU        string            `gorm:"column:sku;type:varchar(50);not null;index"`
	Name       string            `gorm:"type:varchar(200);not null"`
	CategoryID *uuid.UUID        `gorm:"type:uuid;index"`
	SupplierID *uuid.UUID        `gorm:"type:uuid;index"`
	Unit       string            `gorm:"type:varchar(20);not null;default:'pcs'"`
	Price      decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Cost       decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Stock      int64             `gorm:"not null;default:0"`
	MinStock   int64             `gorm:"not null;default:0"`
	TrackStock bool              `gorm:"not null;default:true"`
	Active     bool              `gorm:"not null;default:true"`
	ImageKey   string            `gorm:"type:varchar(500)"`
	Materials  []ProductMaterial `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, sku, name, unit string, price, cost decimal.Decimal) (*Product, error) {
	sku, err := validateSKU(sku)
	if err != nil {
		return nil, err
	}
	name, err = validateProductName(name)
	if err != nil {
		return nil, err
	}
	if err := validatePrices(price, cost); err != nil {
		return nil, err
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "pcs"
	}
	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		SKU:          sku,
		Name:         name,
		Unit:         unit,
		Price:        price,
		Cost:         cost,
		TrackStock:   true,
		Active:       true,
	}, nil
}

// Update changes the descriptive fields and prices
func (p *Product) Update(name, unit string, price, cost decimal.Decimal) error {
	name, err := validateProductName(name)
	if err != nil {
		return err
	}
	if err := validatePrices(price, cost); err != nil {
		return err
	}
	p.Name = name
	if unit = strings.TrimSpace(unit); unit != "" {
		p.Unit = unit
	}
	p.Price = price
	p.Cost = cost
	p.Touch()
	return nil
}

// ChangeSKU replaces the SKU
func (p *Product) ChangeSKU(sku string) error {
	sku, err := validateSKU(sku)
	if err != nil {
		return err
	}
	p.SKU = sku
	p.Touch()
	return nil
}

// SetCategory assigns or clears the category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// SetSupplier assigns or clears the supplier
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.Touch()
}

// SetMinStock sets the low-stock threshold
func (p *Product) SetMinStock(min int64) error {
	if min < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	p.MinStock = min
	p.Touch()
	return nil
}

// SetActive toggles availability at the register
func (p *Product) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// SetTrackStock toggles stock tracking (services and made-to-order items do not track stock)
func (p *Product) SetTrackStock(track bool) {
	p.TrackStock = track
	p.Touch()
}

// SetImage records the object storage key of the product image
func (p *Product) SetImage(key string) {
	p.ImageKey = strings.TrimSpace(key)
	p.Touch()
}

// SetStock overwrites the stock level (stock opname)
func (p *Product) SetStock(qty int64) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = qty
	p.Touch()
	return nil
}

// AdjustStock adds delta (negative to remove) to the stock level
func (p *Product) AdjustStock(delta int64) error {
	if p.Stock+delta < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for "+p.Name)
	}
	p.Stock += delta
	p.Touch()
	return nil
}

// CanSell reports whether qty units can be sold now
func (p *Product) CanSell(qty int64) error {
	if !p.Active {
		return shared.NewDomainError("PRODUCT_INACTIVE", p.Name+" is not available for sale")
	}
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.TrackStock && p.Stock < qty {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for "+p.Name)
	}
	return nil
}

// IsLowStock reports whether stock is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.TrackStock && p.Stock <= p.MinStock
}

// Margin returns price - cost per unit
func (p *Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

func validateSKU(sku string) (string, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return "", shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return "", shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return sku, nil
}

func validateProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return "", shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return name, nil
}

func validatePrices(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	return nil
}
