package settings

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/hr"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceiptTemplate selects the receipt layout
type ReceiptTemplate string

const (
	TemplateClassic  ReceiptTemplate = "classic"
	TemplateCompact  ReceiptTemplate = "compact"
	TemplateDetailed ReceiptTemplate = "detailed"
)

// IsValid checks if the template is known
func (t ReceiptTemplate) IsValid() bool {
	switch t {
	case TemplateClassic, TemplateCompact, TemplateDetailed:
		return true
	}
	return false
}

// ReceiptType is a channel a receipt can be delivered through
type ReceiptType string

const (
	ReceiptPrint    ReceiptType = "print"
	ReceiptPDF      ReceiptType = "pdf"
	ReceiptEmail    ReceiptType = "email"
	ReceiptWhatsApp ReceiptType = "whatsapp"
)

// IsValid checks if the receipt type is known
func (t ReceiptType) IsValid() bool {
	switch t {
	case ReceiptPrint, ReceiptPDF, ReceiptEmail, ReceiptWhatsApp:
		return true
	}
	return false
}

// ReceiptTypes is stored as a JSON array
type ReceiptTypes []ReceiptType

// Value implements driver.Valuer interface for GORM to store as JSON
func (r ReceiptTypes) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for GORM to read from JSON
func (r *ReceiptTypes) Scan(value interface{}) error {
	if value == nil {
		*r = ReceiptTypes{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ReceiptTypes: unsupported type")
	}
	if len(bytes) == 0 {
		*r = ReceiptTypes{}
		return nil
	}
	return json.Unmarshal(bytes, r)
}

// Has reports whether t is enabled
func (r ReceiptTypes) Has(t ReceiptType) bool {
	for _, v := range r {
		if v == t {
			return true
		}
	}
	return false
}

// TenantSettings holds the per-store preferences shared by every device of a tenant
type TenantSettings struct {
	shared.TenantEntity
	StoreName           string               `gorm:"type:varchar(200)"`
	StoreAddress        string               `gorm:"type:text"`
	StorePhone          string               `gorm:"type:varchar(50)"`
	ReceiptTemplate     ReceiptTemplate      `gorm:"type:varchar(20);not null;default:'classic'"`
	ReceiptFooter       string               `gorm:"type:text"`
	EnabledReceiptTypes ReceiptTypes         `gorm:"type:text"`
	Currency            valueobject.Currency `gorm:"type:varchar(3);not null;default:'IDR'"`
	DefaultTaxPercent   decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	WorkStartTime       string               `gorm:"type:varchar(5);not null;default:'08:00'"`
}

// TableName returns the table name for GORM
func (TenantSettings) TableName() string {
	return "tenant_settings"
}

// Defaults returns the settings a tenant has before saving any
func Defaults(tenantID uuid.UUID) *TenantSettings {
	return &TenantSettings{
		TenantEntity:        shared.NewTenantEntity(tenantID),
		ReceiptTemplate:     TemplateClassic,
		ReceiptFooter:       "Terima kasih atas kunjungan Anda",
		EnabledReceiptTypes: ReceiptTypes{ReceiptPrint},
		Currency:            valueobject.DefaultCurrency,
		DefaultTaxPercent:   decimal.Zero,
		WorkStartTime:       "08:00",
	}
}

// Update carries the editable settings
type Update struct {
	StoreName           string
	StoreAddress        string
	StorePhone          string
	ReceiptTemplate     ReceiptTemplate
	ReceiptFooter       string
	EnabledReceiptTypes []ReceiptType
	Currency            string
	DefaultTaxPercent   decimal.Decimal
	WorkStartTime       string
}

// Apply validates and applies an update. Empty template, currency or work
// start keep their current value.
func (s *TenantSettings) Apply(u Update) error {
	template := s.ReceiptTemplate
	if u.ReceiptTemplate != "" {
		if !u.ReceiptTemplate.IsValid() {
			return shared.NewDomainError("INVALID_TEMPLATE", "Receipt template must be classic, compact or detailed")
		}
		template = u.ReceiptTemplate
	}

	types := ReceiptTypes{}
	for _, t := range u.EnabledReceiptTypes {
		if !t.IsValid() {
			return shared.NewDomainError("INVALID_RECEIPT_TYPE", "Unknown receipt type: "+string(t))
		}
		if !types.Has(t) {
			types = append(types, t)
		}
	}

	currency := s.Currency
	if code := strings.TrimSpace(u.Currency); code != "" {
		c, err := valueobject.ParseCurrency(strings.ToUpper(code))
		if err != nil {
			return shared.NewDomainError("INVALID_CURRENCY", err.Error())
		}
		currency = c
	}

	if !shared.ValidPercent(u.DefaultTaxPercent) {
		return shared.NewDomainError("INVALID_TAX", "Tax percent must be between 0 and 100")
	}

	workStart := s.WorkStartTime
	if u.WorkStartTime != "" {
		if _, err := hr.ParseClock(u.WorkStartTime); err != nil {
			return err
		}
		workStart = strings.TrimSpace(u.WorkStartTime)
	}

	s.StoreName = strings.TrimSpace(u.StoreName)
	s.StoreAddress = strings.TrimSpace(u.StoreAddress)
	s.StorePhone = strings.TrimSpace(u.StorePhone)
	s.ReceiptTemplate = template
	s.ReceiptFooter = strings.TrimSpace(u.ReceiptFooter)
	s.EnabledReceiptTypes = types
	s.Currency = currency
	s.DefaultTaxPercent = u.DefaultTaxPercent
	s.WorkStartTime = workStart
	s.Touch()
	return nil
}

// WorkStart returns the parsed work start time, falling back to 08:00
func (s *TenantSettings) WorkStart() hr.Clock {
	c, err := hr.ParseClock(s.WorkStartTime)
	if err != nil {
		return hr.Clock{Hour: 8}
	}
	return c
}
