package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDuitkuConfig(baseURL string) *DuitkuConfig {
	return &DuitkuConfig{
		MerchantCode:  "D0001",
		MerchantKey:   "secret-merchant-key",
		CallbackURL:   "https://api.example.com/api/v1/payments/callback",
		ReturnURL:     "https://app.example.com/subscription",
		ExpiryMinutes: 60,
		Timeout:       5 * time.Second,
		BaseURL:       baseURL,
	}
}

func newTestAdapter(t *testing.T, baseURL string) *DuitkuAdapter {
	t.Helper()
	a, err := NewDuitkuAdapter(createTestDuitkuConfig(baseURL), nil)
	require.NoError(t, err)
	a.retry.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return a
}

func TestDuitkuConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *DuitkuConfig)
		wantErr error
	}{
		{name: "valid config", mutate: func(c *DuitkuConfig) {}},
		{name: "missing merchant code", mutate: func(c *DuitkuConfig) { c.MerchantCode = "" }, wantErr: ErrDuitkuMissingMerchantCode},
		{name: "missing merchant key", mutate: func(c *DuitkuConfig) { c.MerchantKey = "" }, wantErr: ErrDuitkuMissingMerchantKey},
		{name: "missing callback", mutate: func(c *DuitkuConfig) { c.CallbackURL = "" }, wantErr: ErrDuitkuMissingCallbackURL},
		{name: "zero expiry", mutate: func(c *DuitkuConfig) { c.ExpiryMinutes = 0 }, wantErr: ErrDuitkuInvalidExpiry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestDuitkuConfig("")
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDuitkuConfig_GetBaseURL(t *testing.T) {
	c := NewDuitkuConfig(config.PaymentConfig{Environment: "sandbox"})
	assert.Equal(t, "https://sandbox.duitku.com", c.GetBaseURL())

	c = NewDuitkuConfig(config.PaymentConfig{Environment: "production"})
	assert.Equal(t, "https://passport.duitku.com", c.GetBaseURL())
}

func TestDuitkuAdapter_CreateInvoice(t *testing.T) {
	var received duitkuInquiryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webapi/api/merchant/v2/inquiry", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(duitkuInquiryResponse{
			MerchantCode:  "D0001",
			Reference:     "DK-REF-1",
			PaymentURL:    "https://sandbox.duitku.com/pay/DK-REF-1",
			StatusCode:    "00",
			StatusMessage: "SUCCESS",
		})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	resp, err := a.CreateInvoice(context.Background(), &billing.InvoiceRequest{
		MerchantOrderID: "SUB-20260501-0001",
		Amount:          decimal.NewFromInt(99000),
		ProductDetails:  "idCashier monthly",
		Email:           "owner@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "DK-REF-1", resp.Reference)
	assert.Equal(t, "https://sandbox.duitku.com/pay/DK-REF-1", resp.PaymentURL)
	require.NotNil(t, resp.ExpiresAt)

	assert.Equal(t, "D0001", received.MerchantCode)
	assert.Equal(t, int64(99000), received.PaymentAmount)
	assert.Equal(t, 60, received.ExpiryPeriod)
	assert.Equal(t, md5Hex("D0001"+"SUB-20260501-0001"+"99000"+"secret-merchant-key"), received.Signature)
}

func TestDuitkuAdapter_CreateInvoice_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(duitkuInquiryResponse{Reference: "R", PaymentURL: "https://pay", StatusCode: "00"})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	resp, err := a.CreateInvoice(context.Background(), &billing.InvoiceRequest{MerchantOrderID: "O-1", Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.Equal(t, "R", resp.Reference)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDuitkuAdapter_CreateInvoice_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	_, err := a.CreateInvoice(context.Background(), &billing.InvoiceRequest{MerchantOrderID: "O-1", Amount: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, billing.ErrGatewayUnavailable)
	assert.Equal(t, int32(4), calls.Load())
}

func TestDuitkuAdapter_CreateInvoice_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Message":"Wrong signature"}`))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	_, err := a.CreateInvoice(context.Background(), &billing.InvoiceRequest{MerchantOrderID: "O-1", Amount: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, billing.ErrGatewayRequestFailed)
	assert.Contains(t, err.Error(), "Wrong signature")
	assert.Equal(t, int32(1), calls.Load())
}

func TestDuitkuAdapter_CreateInvoice_RejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(duitkuInquiryResponse{StatusCode: "01", StatusMessage: "Payment channel not available"})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	_, err := a.CreateInvoice(context.Background(), &billing.InvoiceRequest{MerchantOrderID: "O-1", Amount: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, billing.ErrGatewayRequestFailed)
}

func TestDuitkuAdapter_CreateInvoice_InvalidRequest(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:0")
	_, err := a.CreateInvoice(context.Background(), &billing.InvoiceRequest{MerchantOrderID: "O-1", Amount: decimal.Zero})
	assert.ErrorIs(t, err, billing.ErrGatewayRequestFailed)
}

func TestDuitkuAdapter_VerifyCallback(t *testing.T) {
	a := newTestAdapter(t, "")
	valid := &billing.Callback{
		MerchantCode:    "D0001",
		Amount:          "99000",
		MerchantOrderID: "SUB-20260501-0001",
		ResultCode:      "00",
		Signature:       CallbackSignature("D0001", "99000", "SUB-20260501-0001", "secret-merchant-key"),
	}

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, a.VerifyCallback(valid))
	})

	t.Run("tampered amount", func(t *testing.T) {
		cb := *valid
		cb.Amount = "1000"
		assert.ErrorIs(t, a.VerifyCallback(&cb), billing.ErrInvalidSignature)
	})

	t.Run("inquiry ordering is not accepted", func(t *testing.T) {
		cb := *valid
		cb.Signature = md5Hex("D0001" + "SUB-20260501-0001" + "99000" + "secret-merchant-key")
		assert.ErrorIs(t, a.VerifyCallback(&cb), billing.ErrInvalidSignature)
	})

	t.Run("other merchant", func(t *testing.T) {
		cb := *valid
		cb.MerchantCode = "D9999"
		assert.ErrorIs(t, a.VerifyCallback(&cb), billing.ErrMerchantMismatch)
	})
}

func TestDisabledGateway(t *testing.T) {
	var g billing.PaymentGateway = DisabledGateway{}
	_, err := g.CreateInvoice(context.Background(), &billing.InvoiceRequest{})
	assert.ErrorIs(t, err, billing.ErrGatewayNotConfigured)
	assert.ErrorIs(t, g.VerifyCallback(&billing.Callback{}), billing.ErrGatewayNotConfigured)
}
