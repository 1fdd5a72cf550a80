package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RawMaterial is an ingredient or supply consumed when products are sold
type RawMaterial struct {
	shared.TenantEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Stock       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerUnit decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (RawMaterial) TableName() string {
	return "raw_materials"
}

// NewRawMaterial creates a new raw material
func NewRawMaterial(tenantID uuid.UUID, name, unit string, costPerUnit decimal.Decimal) (*RawMaterial, error) {
	m := &RawMaterial{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := m.Update(name, unit, costPerUnit); err != nil {
		return nil, err
	}
	return m, nil
}

// Update changes the descriptive fields
func (m *RawMaterial) Update(name, unit string, costPerUnit decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Raw material name cannot be empty")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if costPerUnit.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	m.Name = name
	m.Unit = unit
	m.CostPerUnit = costPerUnit
	m.Touch()
	return nil
}

// SetMinStock sets the low-stock threshold
func (m *RawMaterial) SetMinStock(min decimal.Decimal) error {
	if min.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	m.MinStock = min
	m.Touch()
	return nil
}

// SetSupplier assigns or clears the supplier
func (m *RawMaterial) SetSupplier(supplierID *uuid.UUID) {
	m.SupplierID = supplierID
	m.Touch()
}

// SetStock overwrites the stock level
func (m *RawMaterial) SetStock(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	m.Stock = qty
	m.Touch()
	return nil
}

// AdjustStock adds delta (negative to consume) to the stock level
func (m *RawMaterial) AdjustStock(delta decimal.Decimal) error {
	next := m.Stock.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock of raw material "+m.Name)
	}
	m.Stock = next
	m.Touch()
	return nil
}

// IsLowStock reports whether stock is at or below the threshold
func (m *RawMaterial) IsLowStock() bool {
	return m.Stock.LessThanOrEqual(m.MinStock)
}

// ProductMaterial is one line of a product recipe:
// selling one unit of the product consumes Quantity of the raw material.
type ProductMaterial struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductMaterial) TableName() string {
	return "product_materials"
}

// NewProductMaterial creates a recipe line
func NewProductMaterial(tenantID, productID, rawMaterialID uuid.UUID, qty decimal.Decimal) (ProductMaterial, error) {
	if !qty.IsPositive() {
		return ProductMaterial{}, shared.NewDomainError("INVALID_QUANTITY", "Recipe quantity must be positive")
	}
	return ProductMaterial{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ProductID:     productID,
		RawMaterialID: rawMaterialID,
		Quantity:      qty,
	}, nil
}

// Consumption returns the raw material quantity used by selling units of the product
func (pm ProductMaterial) Consumption(units int64) decimal.Decimal {
	return pm.Quantity.Mul(decimal.NewFromInt(units))
}
