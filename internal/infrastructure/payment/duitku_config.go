package payment

import (
	"errors"
	"time"

	"github.com/idcashier/backend/internal/infrastructure/config"
)

const (
	duitkuSandboxBaseURL    = "https://sandbox.duitku.com"
	duitkuProductionBaseURL = "https://passport.duitku.com"
	duitkuInquiryPath       = "/webapi/api/merchant/v2/inquiry"
)

// DuitkuConfig contains configuration for the Duitku gateway
type DuitkuConfig struct {
	MerchantCode  string
	MerchantKey   string
	IsProduction  bool
	CallbackURL   string
	ReturnURL     string
	ExpiryMinutes int
	Timeout       time.Duration

	// BaseURL overrides the environment URL, used by tests
	BaseURL string
}

// Errors for configuration validation
var (
	ErrDuitkuMissingMerchantCode = errors.New("duitku: missing merchant code")
	ErrDuitkuMissingMerchantKey  = errors.New("duitku: missing merchant key")
	ErrDuitkuMissingCallbackURL  = errors.New("duitku: missing callback URL")
	ErrDuitkuInvalidExpiry       = errors.New("duitku: expiry minutes must be positive")
)

// NewDuitkuConfig maps the application payment settings
func NewDuitkuConfig(cfg config.PaymentConfig) *DuitkuConfig {
	return &DuitkuConfig{
		MerchantCode:  cfg.MerchantCode,
		MerchantKey:   cfg.MerchantKey,
		IsProduction:  cfg.IsProduction(),
		CallbackURL:   cfg.CallbackURL,
		ReturnURL:     cfg.ReturnURL,
		ExpiryMinutes: cfg.ExpiryMinutes,
		Timeout:       cfg.Timeout,
	}
}

// Validate validates the configuration
func (c *DuitkuConfig) Validate() error {
	if c.MerchantCode == "" {
		return ErrDuitkuMissingMerchantCode
	}
	if c.MerchantKey == "" {
		return ErrDuitkuMissingMerchantKey
	}
	if c.CallbackURL == "" {
		return ErrDuitkuMissingCallbackURL
	}
	if c.ExpiryMinutes <= 0 {
		return ErrDuitkuInvalidExpiry
	}
	return nil
}

// GetBaseURL returns the gateway base URL for the environment
func (c *DuitkuConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.IsProduction {
		return duitkuProductionBaseURL
	}
	return duitkuSandboxBaseURL
}
