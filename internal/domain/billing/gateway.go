package billing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway errors
var (
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayUnavailable     = errors.New("payment: gateway temporarily unavailable")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrInvalidSignature       = errors.New("payment: invalid callback signature")
	ErrMerchantMismatch       = errors.New("payment: callback merchant code mismatch")
)

// Gateway result codes carried by callbacks
const (
	ResultCodeSuccess = "00"
	ResultCodeFailed  = "01"
)

// InvoiceRequest asks the gateway to open a payment session
type InvoiceRequest struct {
	MerchantOrderID string
	Amount          decimal.Decimal
	ProductDetails  string
	CustomerName    string
	Email           string
	PaymentMethod   string
}

// InvoiceResponse is the session the customer is redirected to
type InvoiceResponse struct {
	Reference  string
	PaymentURL string
	VANumber   string
	QRString   string
	ExpiresAt  *time.Time
}

// Callback is the gateway's notification about a payment.
// Amount is kept as sent since it is part of the signed string.
type Callback struct {
	MerchantCode    string
	Amount          string
	MerchantOrderID string
	ResultCode      string
	Reference       string
	PaymentCode     string
	Signature       string
}

// Succeeded reports whether the gateway settled the payment
func (c *Callback) Succeeded() bool {
	return c.ResultCode == ResultCodeSuccess
}

// PaymentGateway opens payment sessions and authenticates callbacks
type PaymentGateway interface {
	// CreateInvoice opens a payment session
	CreateInvoice(ctx context.Context, req *InvoiceRequest) (*InvoiceResponse, error)

	// VerifyCallback checks the callback signature and merchant code
	VerifyCallback(cb *Callback) error
}
