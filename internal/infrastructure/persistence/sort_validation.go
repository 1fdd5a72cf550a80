package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func withCommon(fields ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// Allowed sort fields per table
var (
	UserSortFields        = withCommon("name", "email", "role", "last_login_at")
	CategorySortFields    = withCommon("name")
	ProductSortFields     = withCommon("sku", "name", "price", "cost", "stock", "min_stock")
	RawMaterialSortFields = withCommon("name", "stock", "cost_per_unit")
	CustomerSortFields    = withCommon("name", "phone", "email")
	SupplierSortFields    = withCommon("name", "contact_person")
	SaleSortFields        = withCommon("invoice_number", "sold_at", "total", "paid_amount", "payment_status", "payment_method")
	ReturnSortFields      = withCommon("return_number", "refund_amount", "loss_amount", "type")
	EmployeeSortFields    = withCommon("name", "position", "joined_at", "salary")
	AttendanceSortFields  = withCommon("date", "check_in", "status")
	LeaveSortFields       = withCommon("start_date", "end_date", "status", "type")
	ProfitShareSortFields = withCommon("amount", "status", "paid_at")
	PaymentSortFields     = withCommon("amount", "status", "paid_at", "plan")
)
