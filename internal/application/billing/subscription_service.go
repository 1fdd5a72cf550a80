package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Checkout errors
var (
	ErrPaymentDisabled = shared.NewDomainError("PAYMENT_DISABLED", "Online payment is not configured")
	ErrGatewayFailed   = shared.NewDomainError("PAYMENT_GATEWAY_ERROR", "Payment gateway could not open a session")
)

// SubscriptionService shows the tenant's subscription and opens checkouts
type SubscriptionService struct {
	subRepo     billing.SubscriptionRepository
	paymentRepo billing.PaymentRepository
	gateway     billing.PaymentGateway
	prices      billing.PriceList
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewSubscriptionService creates a new SubscriptionService. metrics may be nil.
func NewSubscriptionService(
	subRepo billing.SubscriptionRepository,
	paymentRepo billing.PaymentRepository,
	gateway billing.PaymentGateway,
	prices billing.PriceList,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *SubscriptionService {
	if prices == nil {
		prices = billing.DefaultPriceList()
	}
	return &SubscriptionService{
		subRepo:     subRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		prices:      prices,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Get returns the tenant's subscription as of now
func (s *SubscriptionService) Get(ctx context.Context, tenantID uuid.UUID) (*SubscriptionResponse, error) {
	resp := &SubscriptionResponse{Status: NoSubscription, Plans: s.prices.Offers()}
	sub, err := s.subRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}

	now := s.now()
	resp.Plan = sub.Plan
	resp.Status = string(sub.CurrentStatus(now))
	resp.Active = sub.IsActive(now)
	resp.StartsAt = sub.StartsAt
	resp.EndsAt = sub.EndsAt
	resp.DaysLeft = sub.DaysLeft(now)
	return resp, nil
}

// Checkout records a pending payment for the plan and opens a gateway session for it
func (s *SubscriptionService) Checkout(ctx context.Context, tenantID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	amount, err := s.prices.Price(req.Plan)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.FindByTenant(ctx, tenantID)
	if errors.Is(err, shared.ErrNotFound) {
		if sub, err = billing.NewSubscription(tenantID, req.Plan); err == nil {
			err = s.subRepo.Save(ctx, sub)
		}
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	payment, err := billing.NewPayment(sub, req.Plan, amount, req.PaymentMethod, now)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	invoice, err := s.gateway.CreateInvoice(ctx, &billing.InvoiceRequest{
		MerchantOrderID: payment.MerchantOrderID,
		Amount:          amount,
		ProductDetails:  fmt.Sprintf("idCashier %s subscription", req.Plan),
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		s.logger.Error("Checkout failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("merchant_order_id", payment.MerchantOrderID),
			zap.Error(err))
		if markErr := payment.MarkFailed(err.Error()); markErr == nil {
			if saveErr := s.paymentRepo.Save(ctx, payment); saveErr != nil {
				s.logger.Warn("Failed to record failed checkout", zap.Error(saveErr))
			}
		}
		if s.metrics != nil {
			s.metrics.RecordSubscriptionPayment(ctx, string(req.Plan), string(billing.PaymentFailed))
		}
		if errors.Is(err, billing.ErrGatewayNotConfigured) {
			return nil, ErrPaymentDisabled
		}
		return nil, ErrGatewayFailed
	}

	payment.AttachSession(invoice.Reference, invoice.PaymentURL, invoice.ExpiresAt)
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSubscriptionPayment(ctx, string(req.Plan), string(billing.PaymentPending))
	}

	s.logger.Info("Checkout opened",
		zap.String("tenant_id", tenantID.String()),
		zap.String("merchant_order_id", payment.MerchantOrderID),
		zap.String("plan", string(req.Plan)),
		zap.String("reference", invoice.Reference))

	return &CheckoutResponse{
		PaymentID:       payment.ID,
		MerchantOrderID: payment.MerchantOrderID,
		Plan:            payment.Plan,
		Amount:          payment.Amount,
		Reference:       invoice.Reference,
		PaymentURL:      invoice.PaymentURL,
		VANumber:        invoice.VANumber,
		QRString:        invoice.QRString,
		ExpiresAt:       invoice.ExpiresAt,
	}, nil
}

// ListPayments returns the tenant's payment history
func (s *SubscriptionService) ListPayments(ctx context.Context, tenantID uuid.UUID, filter PaymentListFilter) (shared.Paginated[PaymentResponse], error) {
	f := filter.toFilter()
	payments, total, err := s.paymentRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	now := s.now()
	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i], now)
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}
