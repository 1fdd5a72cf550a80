package payment

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/infrastructure/retry"
	"go.uber.org/zap"
)

// DuitkuAdapter implements billing.PaymentGateway for Duitku
type DuitkuAdapter struct {
	config     *DuitkuConfig
	httpClient *http.Client
	retry      retry.Policy
	logger     *zap.Logger
	now        func() time.Time
}

var _ billing.PaymentGateway = (*DuitkuAdapter)(nil)

// NewDuitkuAdapter creates a new Duitku adapter
func NewDuitkuAdapter(config *DuitkuConfig, logger *zap.Logger) (*DuitkuAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	policy := retry.Default()
	policy.Retryable = isTransient
	policy.Logger = logger

	return &DuitkuAdapter{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		retry:      policy,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// CreateInvoice opens a payment session through the inquiry API
func (a *DuitkuAdapter) CreateInvoice(ctx context.Context, req *billing.InvoiceRequest) (*billing.InvoiceResponse, error) {
	if req.MerchantOrderID == "" || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: merchant order id and a positive amount are required", billing.ErrGatewayRequestFailed)
	}

	// Rupiah amounts are sent as whole numbers
	amount := req.Amount.Round(0).IntPart()
	body := duitkuInquiryRequest{
		MerchantCode:    a.config.MerchantCode,
		PaymentAmount:   amount,
		PaymentMethod:   req.PaymentMethod,
		MerchantOrderID: req.MerchantOrderID,
		ProductDetails:  req.ProductDetails,
		Email:           req.Email,
		CustomerVaName:  req.CustomerName,
		CallbackURL:     a.config.CallbackURL,
		ReturnURL:       a.config.ReturnURL,
		Signature:       a.inquirySignature(req.MerchantOrderID, amount),
		ExpiryPeriod:    a.config.ExpiryMinutes,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("duitku: failed to marshal inquiry: %w", err)
	}

	var resp duitkuInquiryResponse
	err = retry.Do(ctx, a.retry, func(ctx context.Context) error {
		return a.doRequest(ctx, duitkuInquiryPath, payload, &resp)
	})
	if err != nil {
		a.logger.Error("Duitku inquiry failed",
			zap.String("merchant_order_id", req.MerchantOrderID),
			zap.Error(err))
		return nil, err
	}

	if resp.StatusCode != duitkuStatusSuccess {
		return nil, fmt.Errorf("%w: %s %s", billing.ErrGatewayRequestFailed, resp.StatusCode, resp.StatusMessage)
	}
	if resp.Reference == "" || resp.PaymentURL == "" {
		return nil, billing.ErrGatewayInvalidResponse
	}

	expiresAt := a.now().Add(time.Duration(a.config.ExpiryMinutes) * time.Minute)
	return &billing.InvoiceResponse{
		Reference:  resp.Reference,
		PaymentURL: resp.PaymentURL,
		VANumber:   resp.VANumber,
		QRString:   resp.QRString,
		ExpiresAt:  &expiresAt,
	}, nil
}

// VerifyCallback checks the merchant code and the callback signature
func (a *DuitkuAdapter) VerifyCallback(cb *billing.Callback) error {
	if cb.MerchantCode != a.config.MerchantCode {
		return billing.ErrMerchantMismatch
	}
	expected := CallbackSignature(cb.MerchantCode, cb.Amount, cb.MerchantOrderID, a.config.MerchantKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(cb.Signature)) != 1 {
		return billing.ErrInvalidSignature
	}
	return nil
}

func (a *DuitkuAdapter) inquirySignature(merchantOrderID string, amount int64) string {
	return md5Hex(fmt.Sprintf("%s%s%d%s", a.config.MerchantCode, merchantOrderID, amount, a.config.MerchantKey))
}

// CallbackSignature computes MD5(merchantCode + amount + merchantOrderId + merchantKey)
func CallbackSignature(merchantCode, amount, merchantOrderID, merchantKey string) string {
	return md5Hex(merchantCode + amount + merchantOrderID + merchantKey)
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// doRequest posts JSON to the gateway and decodes a 200 reply into out.
// 5xx and transport errors are transient; 4xx are not.
func (a *DuitkuAdapter) doRequest(ctx context.Context, path string, payload []byte, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.GetBaseURL()+path, bytes.NewReader(payload))
	if err != nil {
		return retry.Permanent(fmt.Errorf("duitku: failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return &transientError{fmt.Errorf("%w: %v", billing.ErrGatewayUnavailable, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &transientError{fmt.Errorf("%w: failed to read response: %v", billing.ErrGatewayUnavailable, err)}
	}

	switch {
	case resp.StatusCode >= 500:
		return &transientError{fmt.Errorf("%w: status %d", billing.ErrGatewayUnavailable, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		var e duitkuErrorResponse
		_ = json.Unmarshal(body, &e)
		return fmt.Errorf("%w: status %d %s", billing.ErrGatewayRequestFailed, resp.StatusCode, e.Message)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", billing.ErrGatewayInvalidResponse, err)
	}
	return nil
}

type transientError struct{ err error }

func (t *transientError) Error() string { return t.err.Error() }
func (t *transientError) Unwrap() error { return t.err }

func isTransient(err error) bool {
	_, ok := err.(*transientError)
	return ok
}

// DisabledGateway is used when no gateway is configured
type DisabledGateway struct{}

var _ billing.PaymentGateway = DisabledGateway{}

// CreateInvoice always fails with ErrGatewayNotConfigured
func (DisabledGateway) CreateInvoice(context.Context, *billing.InvoiceRequest) (*billing.InvoiceResponse, error) {
	return nil, billing.ErrGatewayNotConfigured
}

// VerifyCallback always fails with ErrGatewayNotConfigured
func (DisabledGateway) VerifyCallback(*billing.Callback) error {
	return billing.ErrGatewayNotConfigured
}
