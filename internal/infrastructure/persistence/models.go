package persistence

import (
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/settings"
)

// Models lists every persisted entity in dependency order
func Models() []any {
	return []any{
		&identity.User{},
		&catalog.Category{},
		&partner.Supplier{},
		&partner.Customer{},
		&catalog.Product{},
		&catalog.RawMaterial{},
		&catalog.ProductMaterial{},
		&hr.Employee{},
		&sales.Sale{},
		&sales.SaleItem{},
		&sales.SaleCustomCost{},
		&sales.Return{},
		&sales.ReturnItem{},
		&documentSequence{},
		&hr.Attendance{},
		&hr.LeaveRequest{},
		&hr.ProfitShare{},
		&billing.Subscription{},
		&billing.Payment{},
		&settings.TenantSettings{},
	}
}
