package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tenantScope restricts a query to one tenant's rows
func tenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// searchScope matches term case-insensitively against any of columns.
// LOWER(...) LIKE works on both PostgreSQL and sqlite.
func searchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			conds[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// pageScope applies the white-listed ordering and the page window
func pageScope(filter shared.Filter, allowed map[string]bool, defaultField string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := ValidateSortField(filter.OrderBy, allowed, defaultField)
		dir := ValidateSortOrder(filter.OrderDir)
		return db.Order(field + " " + dir).Offset(filter.Offset()).Limit(filter.PageSize)
	}
}

// forUpdate locks the selected rows until the surrounding transaction ends.
// sqlite has no row locks and serializes writers already.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// notFound maps gorm.ErrRecordNotFound to a domain not-found error
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound(resource)
	}
	return err
}

// stringFilter reads a non-empty string filter value
func stringFilter(filter shared.Filter, key string) (string, bool) {
	v, ok := filter.Filters[key]
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	return s, s != ""
}

// list counts and fetches one page of T
func list[T any](q *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) ([]T, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []T
	if err := q.Scopes(pageScope(filter, allowed, defaultField)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// uuidFilter reads a UUID filter value given as uuid.UUID or string
func uuidFilter(filter shared.Filter, key string) (uuid.UUID, bool) {
	switch v := filter.Filters[key].(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, false
		}
		return *v, *v != uuid.Nil
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	}
	return uuid.Nil, false
}

// timeFilter reads a time filter value given as time.Time, *time.Time or RFC 3339 string
func timeFilter(filter shared.Filter, key string) (time.Time, bool) {
	switch v := filter.Filters[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		t, err := time.Parse(time.RFC3339, v)
		return t, err == nil
	}
	return time.Time{}, false
}

// boolFilter reads a boolean filter value given as bool or string
func boolFilter(filter shared.Filter, key string) (bool, bool) {
	switch v := filter.Filters[key].(type) {
	case bool:
		return v, true
	case *bool:
		if v == nil {
			return false, false
		}
		return *v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	return false, false
}

// rangeScope applies an inclusive from and exclusive to bound on column
func rangeScope(filter shared.Filter, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from, ok := timeFilter(filter, "from"); ok {
			db = db.Where(column+" >= ?", from)
		}
		if to, ok := timeFilter(filter, "to"); ok {
			db = db.Where(column+" < ?", to)
		}
		return db
	}
}

// deleteForTenant deletes one tenant row and reports not-found when nothing matched
func deleteForTenant(ctx context.Context, db *gorm.DB, model any, tenantID, id uuid.UUID, resource string) error {
	result := conn(ctx, db).Scopes(tenantScope(tenantID)).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resource)
	}
	return nil
}
