package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// store is an in-memory database shared by the fake repositories.
// fakeTx snapshots it and restores the snapshot when the transaction fails.
type store struct {
	products  map[uuid.UUID]catalog.Product
	materials map[uuid.UUID]catalog.RawMaterial
	sales     map[uuid.UUID]sales.Sale
	returns   map[uuid.UUID]sales.Return
	customers map[uuid.UUID]partner.Customer
	employees map[uuid.UUID]hr.Employee
	shares    map[uuid.UUID]hr.ProfitShare
}

func newStore() *store {
	return &store{
		products:  map[uuid.UUID]catalog.Product{},
		materials: map[uuid.UUID]catalog.RawMaterial{},
		sales:     map[uuid.UUID]sales.Sale{},
		returns:   map[uuid.UUID]sales.Return{},
		customers: map[uuid.UUID]partner.Customer{},
		employees: map[uuid.UUID]hr.Employee{},
		shares:    map[uuid.UUID]hr.ProfitShare{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *store) snapshot() *store {
	return &store{
		products:  cloneMap(s.products),
		materials: cloneMap(s.materials),
		sales:     cloneMap(s.sales),
		returns:   cloneMap(s.returns),
		customers: cloneMap(s.customers),
		employees: cloneMap(s.employees),
		shares:    cloneMap(s.shares),
	}
}

func copySale(sale sales.Sale) sales.Sale {
	sale.Items = append([]sales.SaleItem(nil), sale.Items...)
	sale.CustomCosts = append([]sales.SaleCustomCost(nil), sale.CustomCosts...)
	return sale
}

type fakeTx struct {
	db    *store
	calls int
}

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	saved := t.db.snapshot()
	if err := fn(ctx); err != nil {
		*t.db = *saved
		return err
	}
	return nil
}

type fakeProducts struct{ db *store }

func (r fakeProducts) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.db.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.NotFound("product")
	}
	return &p, nil
}

func (r fakeProducts) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := r.db.products[id]; ok && p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakeProducts) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]catalog.Product, int64, error) {
	return nil, 0, nil
}

func (r fakeProducts) ExistsBySKU(context.Context, uuid.UUID, string, *uuid.UUID) (bool, error) {
	return false, nil
}

func (r fakeProducts) Save(_ context.Context, p *catalog.Product) error {
	r.db.products[p.ID] = *p
	return nil
}

func (r fakeProducts) UpdateStock(_ context.Context, p *catalog.Product) error {
	stored := r.db.products[p.ID]
	stored.Stock = p.Stock
	r.db.products[p.ID] = stored
	return nil
}

func (r fakeProducts) ReplaceMaterials(_ context.Context, _, productID uuid.UUID, materials []catalog.ProductMaterial) error {
	stored := r.db.products[productID]
	stored.Materials = materials
	r.db.products[productID] = stored
	return nil
}

func (r fakeProducts) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(r.db.products, id)
	return nil
}

type fakeMaterials struct{ db *store }

func (r fakeMaterials) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.RawMaterial, error) {
	m, ok := r.db.materials[id]
	if !ok || m.TenantID != tenantID {
		return nil, shared.NotFound("raw material")
	}
	return &m, nil
}

func (r fakeMaterials) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.RawMaterial, error) {
	var out []catalog.RawMaterial
	for _, id := range ids {
		if m, ok := r.db.materials[id]; ok && m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r fakeMaterials) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]catalog.RawMaterial, int64, error) {
	return nil, 0, nil
}

func (r fakeMaterials) Save(_ context.Context, m *catalog.RawMaterial) error {
	r.db.materials[m.ID] = *m
	return nil
}

func (r fakeMaterials) UpdateStock(_ context.Context, m *catalog.RawMaterial) error {
	stored := r.db.materials[m.ID]
	stored.Stock = m.Stock
	r.db.materials[m.ID] = stored
	return nil
}

func (r fakeMaterials) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(r.db.materials, id)
	return nil
}

func (r fakeMaterials) CountRecipeUsage(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeSales struct{ db *store }

func (r fakeSales) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	s, ok := r.db.sales[id]
	if !ok || s.TenantID != tenantID {
		return nil, shared.NotFound("sale")
	}
	s = copySale(s)
	return &s, nil
}

func (r fakeSales) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, int64, error) {
	var out []sales.Sale
	for _, s := range r.db.sales {
		if s.TenantID != tenantID {
			continue
		}
		if status, ok := filter.Filters["payment_status"]; ok && string(s.PaymentStatus) != status {
			continue
		}
		s.Items = nil
		s.CustomCosts = nil
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r fakeSales) Create(_ context.Context, sale *sales.Sale) error {
	r.db.sales[sale.ID] = copySale(*sale)
	return nil
}

func (r fakeSales) UpdatePayment(_ context.Context, sale *sales.Sale) error {
	stored := r.db.sales[sale.ID]
	stored.PaidAmount = sale.PaidAmount
	stored.ChangeAmount = sale.ChangeAmount
	stored.CreditedAmount = sale.CreditedAmount
	stored.RefundedAmount = sale.RefundedAmount
	stored.PaymentStatus = sale.PaymentStatus
	r.db.sales[sale.ID] = stored
	return nil
}

func (r fakeSales) UpdateReturnedQuantities(_ context.Context, items []sales.SaleItem) error {
	for _, changed := range items {
		stored := copySale(r.db.sales[changed.SaleID])
		for i := range stored.Items {
			if stored.Items[i].ID == changed.ID {
				stored.Items[i].ReturnedQuantity = changed.ReturnedQuantity
			}
		}
		r.db.sales[changed.SaleID] = stored
	}
	return nil
}

func (r fakeSales) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	if s, ok := r.db.sales[id]; !ok || s.TenantID != tenantID {
		return shared.NotFound("sale")
	}
	delete(r.db.sales, id)
	return nil
}

func (r fakeSales) NextInvoiceNumber(_ context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	n := 0
	for _, s := range r.db.sales {
		if s.TenantID == tenantID {
			n++
		}
	}
	return sales.FormatNumber(sales.InvoicePrefix, at, n+1), nil
}

type fakeReturns struct{ db *store }

func (r fakeReturns) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*sales.Return, error) {
	ret, ok := r.db.returns[id]
	if !ok || ret.TenantID != tenantID {
		return nil, shared.NotFound("return")
	}
	return &ret, nil
}

func (r fakeReturns) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]sales.Return, int64, error) {
	var out []sales.Return
	for _, ret := range r.db.returns {
		if ret.TenantID == tenantID {
			out = append(out, ret)
		}
	}
	return out, int64(len(out)), nil
}

func (r fakeReturns) Create(_ context.Context, ret *sales.Return) error {
	r.db.returns[ret.ID] = *ret
	return nil
}

func (r fakeReturns) CountBySale(_ context.Context, tenantID, saleID uuid.UUID) (int64, error) {
	var n int64
	for _, ret := range r.db.returns {
		if ret.TenantID == tenantID && ret.SaleID == saleID {
			n++
		}
	}
	return n, nil
}

func (r fakeReturns) NextReturnNumber(_ context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	n := 0
	for _, ret := range r.db.returns {
		if ret.TenantID == tenantID {
			n++
		}
	}
	return sales.FormatNumber(sales.ReturnPrefix, at, n+1), nil
}

type fakeCustomers struct{ db *store }

func (r fakeCustomers) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	c, ok := r.db.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.NotFound("customer")
	}
	return &c, nil
}

func (r fakeCustomers) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]partner.Customer, int64, error) {
	return nil, 0, nil
}

func (r fakeCustomers) Save(_ context.Context, c *partner.Customer) error {
	r.db.customers[c.ID] = *c
	return nil
}

func (r fakeCustomers) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(r.db.customers, id)
	return nil
}

type fakeEmployees struct{ db *store }

func (r fakeEmployees) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*hr.Employee, error) {
	e, ok := r.db.employees[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.NotFound("employee")
	}
	return &e, nil
}

func (r fakeEmployees) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]hr.Employee, error) {
	var out []hr.Employee
	for _, id := range ids {
		if e, ok := r.db.employees[id]; ok && e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r fakeEmployees) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]hr.Employee, int64, error) {
	return nil, 0, nil
}

func (r fakeEmployees) Save(_ context.Context, e *hr.Employee) error {
	r.db.employees[e.ID] = *e
	return nil
}

func (r fakeEmployees) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(r.db.employees, id)
	return nil
}

type fakeShares struct{ db *store }

func (r fakeShares) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*hr.ProfitShare, error) {
	s, ok := r.db.shares[id]
	if !ok || s.TenantID != tenantID {
		return nil, shared.NotFound("profit share")
	}
	return &s, nil
}

func (r fakeShares) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]hr.ProfitShare, int64, error) {
	return nil, 0, nil
}

func (r fakeShares) FindForSummary(context.Context, uuid.UUID, shared.Filter) ([]hr.ProfitShare, error) {
	return nil, nil
}

func (r fakeShares) Create(_ context.Context, s *hr.ProfitShare) error {
	r.db.shares[s.ID] = *s
	return nil
}

func (r fakeShares) Save(_ context.Context, s *hr.ProfitShare) error {
	r.db.shares[s.ID] = *s
	return nil
}

func (r fakeShares) DeleteUnpaidBySale(_ context.Context, tenantID, saleID uuid.UUID) (int64, error) {
	var n int64
	for id, s := range r.db.shares {
		if s.TenantID == tenantID && s.SaleID == saleID && s.Status == hr.ProfitShareUnpaid {
			delete(r.db.shares, id)
			n++
		}
	}
	return n, nil
}

func (r fakeShares) CountByEmployee(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

type fixedSettings struct{ tax decimal.Decimal }

func (f fixedSettings) Load(_ context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error) {
	st := settings.Defaults(tenantID)
	st.DefaultTaxPercent = f.tax
	return st, nil
}
