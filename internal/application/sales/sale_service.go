package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrSaleHasReturns is returned when deleting a sale that has returns booked against it
var ErrSaleHasReturns = shared.NewDomainError("INVALID_STATE", "Sale has returns and cannot be deleted")

// SettingsLoader returns a tenant's settings, falling back to the defaults
type SettingsLoader interface {
	Load(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error)
}

// SaleRepositories groups the stores a sale touches
type SaleRepositories struct {
	Sales        sales.SaleRepository
	Returns      sales.ReturnRepository
	Products     catalog.ProductRepository
	Materials    catalog.RawMaterialRepository
	Customers    partner.CustomerRepository
	Employees    hr.EmployeeRepository
	ProfitShares hr.ProfitShareRepository
}

// SaleService rings up, settles and voids sales
type SaleService struct {
	tx       shared.TransactionManager
	repos    SaleRepositories
	settings SettingsLoader
	metrics  *telemetry.BusinessMetrics
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewSaleService creates a new SaleService. metrics may be nil.
func NewSaleService(
	tx shared.TransactionManager,
	repos SaleRepositories,
	settingsLoader SettingsLoader,
	metrics *telemetry.BusinessMetrics,
	location *time.Location,
	logger *zap.Logger,
) *SaleService {
	if location == nil {
		location = time.UTC
	}
	return &SaleService{
		tx:       tx,
		repos:    repos,
		settings: settingsLoader,
		metrics:  metrics,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSale validates stock, books the sale and moves stock in one transaction
func (s *SaleService) CreateSale(ctx context.Context, tenantID, cashierID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	taxPercent, err := s.taxPercent(ctx, tenantID, req.TaxPercent)
	if err != nil {
		return nil, err
	}

	var sale *sales.Sale
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		demand, order := aggregateLines(req.Items)
		products, err := s.loadProducts(ctx, tenantID, order)
		if err != nil {
			return err
		}
		for _, id := range order {
			if err := products[id].CanSell(demand[id]); err != nil {
				return err
			}
		}
		if err := s.checkCustomer(ctx, tenantID, req.CustomerID); err != nil {
			return err
		}
		employee, err := s.loadEmployee(ctx, tenantID, req.EmployeeID)
		if err != nil {
			return err
		}

		now := s.now().In(s.location)
		invoice, err := s.repos.Sales.NextInvoiceNumber(ctx, tenantID, now)
		if err != nil {
			return err
		}
		sale, err = sales.NewSale(tenantID, cashierID, invoice, req.PaymentMethod)
		if err != nil {
			return err
		}
		sale.SoldAt = now
		for _, line := range req.Items {
			p := products[line.ProductID]
			item, err := sales.NewSaleItem(p.ID, p.Name, p.SKU, line.Quantity, p.Price, p.Cost)
			if err != nil {
				return err
			}
			sale.AddItem(item)
		}
		for _, c := range req.CustomCosts {
			if err := sale.AddCustomCost(c.Name, c.Amount); err != nil {
				return err
			}
		}
		sale.SetCustomer(req.CustomerID)
		sale.SetEmployee(req.EmployeeID)
		sale.SetNotes(req.Notes)
		if err := sale.Finalize(req.DiscountPercent, taxPercent, req.PaidAmount); err != nil {
			return err
		}

		if err := s.repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		if err := s.moveStock(ctx, tenantID, products, order, demand, -1); err != nil {
			return err
		}

		if employee != nil && employee.EarnsProfitShare() {
			share := hr.NewProfitShare(employee, sale.ID, sale.Profit())
			share.SetCreatedBy(cashierID)
			if err := s.repos.ProfitShares.Create(ctx, share); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordSale(ctx, string(sale.PaymentMethod), string(sale.PaymentStatus), sale.Total, sale.ItemCount())
	}
	s.logger.Info("Sale created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice", sale.InvoiceNumber),
		zap.String("total", sale.Total.String()),
		zap.String("payment_status", string(sale.PaymentStatus)))
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetByID retrieves a sale with its lines
func (s *SaleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.repos.Sales.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Sale returns the domain sale, for receipt rendering
func (s *SaleService) Sale(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	return s.repos.Sales.FindByIDForTenant(ctx, tenantID, id)
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter SaleListFilter) (shared.Paginated[SaleResponse], error) {
	f, err := filter.toFilter(s.location)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}
	f = f.With("payment_status", filter.PaymentStatus).
		With("payment_method", filter.PaymentMethod).
		With("customer_id", filter.CustomerID).
		With("employee_id", filter.EmployeeID).
		With("cashier_id", filter.CashierID)

	list, total, err := s.repos.Sales.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}
	items := make([]SaleResponse, len(list))
	for i := range list {
		items[i] = ToSaleResponse(&list[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// SettlePayment records a payment against an unpaid or partial sale
func (s *SaleService) SettlePayment(ctx context.Context, tenantID, id uuid.UUID, req PaymentRequest) (*SaleResponse, error) {
	var sale *sales.Sale
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.repos.Sales.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := sale.Pay(req.Amount); err != nil {
			return err
		}
		return s.repos.Sales.UpdatePayment(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale payment settled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice", sale.InvoiceNumber),
		zap.String("amount", req.Amount.String()),
		zap.String("payment_status", string(sale.PaymentStatus)))
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// DeleteSale voids a sale: stock and raw materials go back and unpaid
// profit shares are dropped. Sales with returns cannot be voided.
func (s *SaleService) DeleteSale(ctx context.Context, tenantID, id uuid.UUID) error {
	var invoice string
	var removedShares int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.repos.Sales.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		invoice = sale.InvoiceNumber
		returns, err := s.repos.Returns.CountBySale(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if returns > 0 || sale.HasReturns() {
			return ErrSaleHasReturns
		}

		demand := make(map[uuid.UUID]int64)
		var order []uuid.UUID
		for _, item := range sale.Items {
			if _, ok := demand[item.ProductID]; !ok {
				order = append(order, item.ProductID)
			}
			demand[item.ProductID] += item.Quantity
		}
		found, err := s.repos.Products.FindByIDsForTenant(ctx, tenantID, order)
		if err != nil {
			return err
		}
		products := make(map[uuid.UUID]*catalog.Product, len(found))
		for i := range found {
			products[found[i].ID] = &found[i]
		}
		// Products deleted since the sale have nothing to restore
		present := order[:0:0]
		for _, pid := range order {
			if _, ok := products[pid]; ok {
				present = append(present, pid)
			}
		}
		if err := s.moveStock(ctx, tenantID, products, present, demand, 1); err != nil {
			return err
		}

		removedShares, err = s.repos.ProfitShares.DeleteUnpaidBySale(ctx, tenantID, id)
		if err != nil {
			return err
		}
		return s.repos.Sales.DeleteForTenant(ctx, tenantID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Sale deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice", invoice),
		zap.Int64("profit_shares_removed", removedShares))
	return nil
}

func (s *SaleService) taxPercent(ctx context.Context, tenantID uuid.UUID, requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	if s.settings == nil {
		return decimal.Zero, nil
	}
	st, err := s.settings.Load(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}
	return st.DefaultTaxPercent, nil
}

// aggregateLines sums the quantity per product, keeping first-seen order
func aggregateLines(lines []SaleLineRequest) (map[uuid.UUID]int64, []uuid.UUID) {
	demand := make(map[uuid.UUID]int64, len(lines))
	order := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := demand[line.ProductID]; !ok {
			order = append(order, line.ProductID)
		}
		demand[line.ProductID] += line.Quantity
	}
	return demand, order
}

func (s *SaleService) loadProducts(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "Sale must have at least one item")
	}
	found, err := s.repos.Products.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		if found[i].TenantID != tenantID {
			continue
		}
		products[found[i].ID] = &found[i]
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product "+id.String()+" not found")
		}
	}
	return products, nil
}

func (s *SaleService) checkCustomer(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID) error {
	if customerID == nil {
		return nil
	}
	if _, err := s.repos.Customers.FindByIDForTenant(ctx, tenantID, *customerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
		}
		return err
	}
	return nil
}

func (s *SaleService) loadEmployee(ctx context.Context, tenantID uuid.UUID, employeeID *uuid.UUID) (*hr.Employee, error) {
	if employeeID == nil {
		return nil, nil
	}
	employee, err := s.repos.Employees.FindByIDForTenant(ctx, tenantID, *employeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee not found")
		}
		return nil, err
	}
	return employee, nil
}

// moveStock applies direction × demand to the tracked products and
// direction × recipe consumption to their raw materials. Going below
// zero aborts with an insufficient stock error.
func (s *SaleService) moveStock(
	ctx context.Context,
	tenantID uuid.UUID,
	products map[uuid.UUID]*catalog.Product,
	order []uuid.UUID,
	demand map[uuid.UUID]int64,
	direction int64,
) error {
	consumption := make(map[uuid.UUID]decimal.Decimal)
	var materialIDs []uuid.UUID
	for _, id := range order {
		p := products[id]
		units := demand[id]
		if p.TrackStock {
			if err := p.AdjustStock(direction * units); err != nil {
				return err
			}
			if err := s.repos.Products.UpdateStock(ctx, p); err != nil {
				return err
			}
		}
		for _, pm := range p.Materials {
			if _, ok := consumption[pm.RawMaterialID]; !ok {
				materialIDs = append(materialIDs, pm.RawMaterialID)
				consumption[pm.RawMaterialID] = decimal.Zero
			}
			consumption[pm.RawMaterialID] = consumption[pm.RawMaterialID].Add(pm.Consumption(units))
		}
	}
	if len(materialIDs) == 0 {
		return nil
	}

	materials, err := s.repos.Materials.FindByIDsForTenant(ctx, tenantID, materialIDs)
	if err != nil {
		return err
	}
	for i := range materials {
		m := &materials[i]
		delta := consumption[m.ID]
		if direction < 0 {
			delta = delta.Neg()
		}
		if err := m.AdjustStock(delta); err != nil {
			return err
		}
		if err := s.repos.Materials.UpdateStock(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
