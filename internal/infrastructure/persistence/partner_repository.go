package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&customer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "customer")
	}
	return &customer, nil
}

// FindAllForTenant lists customers, searching name, phone and email
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&partner.Customer{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "name", "phone", "email"))
	return list[partner.Customer](q, filter, CustomerSortFields, "created_at")
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return conn(ctx, r.db).Save(customer).Error
}

// DeleteForTenant deletes a customer within a tenant
func (r *GormCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteForTenant(ctx, r.db, &partner.Customer{}, tenantID, id, "customer")
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByIDForTenant finds a supplier by ID within a tenant
func (r *GormSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "supplier")
	}
	return &supplier, nil
}

// FindAllForTenant lists suppliers
func (r *GormSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&partner.Supplier{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "name", "contact_person", "phone", "email"))
	return list[partner.Supplier](q, filter, SupplierSortFields, "created_at")
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return conn(ctx, r.db).Save(supplier).Error
}

// DeleteForTenant deletes a supplier within a tenant
func (r *GormSupplierRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteForTenant(ctx, r.db, &partner.Supplier{}, tenantID, id, "supplier")
}
