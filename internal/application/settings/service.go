package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettingsRequest replaces the store settings
type SettingsRequest struct {
	StoreName           string                   `json:"store_name" binding:"max=200"`
	StoreAddress        string                   `json:"store_address"`
	StorePhone          string                   `json:"store_phone" binding:"max=50"`
	ReceiptTemplate     settings.ReceiptTemplate `json:"receipt_template" binding:"omitempty,oneof=classic compact detailed"`
	ReceiptFooter       string                   `json:"receipt_footer"`
	EnabledReceiptTypes []settings.ReceiptType   `json:"enabled_receipt_types" binding:"dive,oneof=print pdf email whatsapp"`
	Currency            string                   `json:"currency" binding:"omitempty,len=3"`
	DefaultTaxPercent   decimal.Decimal          `json:"default_tax_percent"`
	WorkStartTime       string                   `json:"work_start_time"`
}

// SettingsResponse represents the store settings in API responses
type SettingsResponse struct {
	StoreName           string                   `json:"store_name"`
	StoreAddress        string                   `json:"store_address"`
	StorePhone          string                   `json:"store_phone"`
	ReceiptTemplate     settings.ReceiptTemplate `json:"receipt_template"`
	ReceiptFooter       string                   `json:"receipt_footer"`
	EnabledReceiptTypes []settings.ReceiptType   `json:"enabled_receipt_types"`
	Currency            string                   `json:"currency"`
	DefaultTaxPercent   decimal.Decimal          `json:"default_tax_percent"`
	WorkStartTime       string                   `json:"work_start_time"`
	UpdatedAt           *time.Time               `json:"updated_at,omitempty"`
}

func toResponse(s *settings.TenantSettings, saved bool) SettingsResponse {
	resp := SettingsResponse{
		StoreName:           s.StoreName,
		StoreAddress:        s.StoreAddress,
		StorePhone:          s.StorePhone,
		ReceiptTemplate:     s.ReceiptTemplate,
		ReceiptFooter:       s.ReceiptFooter,
		EnabledReceiptTypes: append([]settings.ReceiptType{}, s.EnabledReceiptTypes...),
		Currency:            string(s.Currency),
		DefaultTaxPercent:   s.DefaultTaxPercent,
		WorkStartTime:       s.WorkStartTime,
	}
	if saved {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// Service reads and writes the per-tenant settings
type Service struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewService creates a new settings Service
func NewService(repo settings.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Load returns the tenant's settings, or the defaults when none were saved.
// Other services use it to read the tax default, work start and receipt options.
func (s *Service) Load(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error) {
	st, _, err := s.load(ctx, tenantID)
	return st, err
}

func (s *Service) load(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, bool, error) {
	st, err := s.repo.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return settings.Defaults(tenantID), false, nil
		}
		return nil, false, err
	}
	return st, true, nil
}

// Get returns the settings of the tenant
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (*SettingsResponse, error) {
	st, saved, err := s.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(st, saved)
	return &resp, nil
}

// Update validates and saves the settings of the tenant
func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, req SettingsRequest) (*SettingsResponse, error) {
	st, _, err := s.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := st.Apply(settings.Update{
		StoreName:           req.StoreName,
		StoreAddress:        req.StoreAddress,
		StorePhone:          req.StorePhone,
		ReceiptTemplate:     req.ReceiptTemplate,
		ReceiptFooter:       req.ReceiptFooter,
		EnabledReceiptTypes: req.EnabledReceiptTypes,
		Currency:            req.Currency,
		DefaultTaxPercent:   req.DefaultTaxPercent,
		WorkStartTime:       req.WorkStartTime,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("Settings updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("template", string(st.ReceiptTemplate)))
	resp := toResponse(st, true)
	return &resp, nil
}
