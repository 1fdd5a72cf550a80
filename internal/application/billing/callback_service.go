package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CallbackAck is the body the gateway expects once a callback is accepted
const CallbackAck = "SUCCESS"

// ErrInvalidCallback is returned for callbacks that fail authentication
var ErrInvalidCallback = shared.NewDomainError("INVALID_CALLBACK", "Payment callback could not be verified")

// CallbackService applies payment gateway notifications
type CallbackService struct {
	tx          shared.TransactionManager
	subRepo     billing.SubscriptionRepository
	paymentRepo billing.PaymentRepository
	gateway     billing.PaymentGateway
	idempotency shared.IdempotencyStore
	ttl         time.Duration
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// CallbackServiceConfig contains the dependencies of CallbackService
type CallbackServiceConfig struct {
	TxManager      shared.TransactionManager
	SubRepo        billing.SubscriptionRepository
	PaymentRepo    billing.PaymentRepository
	Gateway        billing.PaymentGateway
	Idempotency    shared.IdempotencyStore
	IdempotencyTTL time.Duration
	Metrics        *telemetry.BusinessMetrics
	Logger         *zap.Logger
}

// NewCallbackService creates a new CallbackService
func NewCallbackService(cfg CallbackServiceConfig) *CallbackService {
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &CallbackService{
		tx:          cfg.TxManager,
		subRepo:     cfg.SubRepo,
		paymentRepo: cfg.PaymentRepo,
		gateway:     cfg.Gateway,
		idempotency: cfg.Idempotency,
		ttl:         ttl,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// HandleCallback verifies and applies one notification. Redelivered callbacks
// are acknowledged without being applied again. When applying fails, the
// de-duplication key is released so the gateway's retry is processed.
func (s *CallbackService) HandleCallback(ctx context.Context, cb *billing.Callback) error {
	if err := s.gateway.VerifyCallback(cb); err != nil {
		s.logger.Warn("Rejected payment callback",
			zap.String("merchant_order_id", cb.MerchantOrderID),
			zap.Error(err))
		return ErrInvalidCallback
	}

	key := fmt.Sprintf("payment-callback:%s:%s", cb.MerchantOrderID, cb.ResultCode)
	fresh, err := s.idempotency.MarkProcessed(ctx, key, s.ttl)
	if err != nil {
		// payment state still guards against a double apply
		s.logger.Warn("Idempotency store unavailable", zap.Error(err))
		fresh = true
	}
	if !fresh {
		s.logger.Info("Duplicate payment callback ignored", zap.String("merchant_order_id", cb.MerchantOrderID))
		return nil
	}

	payment, err := s.apply(ctx, cb)
	if err != nil {
		if forgetErr := s.idempotency.Forget(ctx, key); forgetErr != nil {
			s.logger.Warn("Failed to release callback key", zap.String("key", key), zap.Error(forgetErr))
		}
		s.logger.Error("Failed to apply payment callback",
			zap.String("merchant_order_id", cb.MerchantOrderID),
			zap.Error(err))
		return err
	}

	if payment != nil {
		if s.metrics != nil {
			s.metrics.RecordSubscriptionPayment(ctx, string(payment.Plan), string(payment.Status))
		}
		s.logger.Info("Payment callback applied",
			zap.String("tenant_id", payment.TenantID.String()),
			zap.String("merchant_order_id", payment.MerchantOrderID),
			zap.String("status", string(payment.Status)))
	}
	return nil
}

// apply returns the updated payment, or nil when the payment was already final
func (s *CallbackService) apply(ctx context.Context, cb *billing.Callback) (*billing.Payment, error) {
	var updated *billing.Payment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.FindByMerchantOrderID(ctx, cb.MerchantOrderID)
		if err != nil {
			return err
		}
		if payment.Status.IsFinal() {
			return nil
		}
		if err := checkAmount(payment, cb.Amount); err != nil {
			return err
		}

		now := s.now()
		if !cb.Succeeded() {
			if err := payment.MarkFailed("gateway result code " + cb.ResultCode); err != nil {
				return err
			}
			updated = payment
			return s.paymentRepo.Save(ctx, payment)
		}

		if err := payment.MarkPaid(cb.Reference, now); err != nil {
			return err
		}
		sub, err := s.subRepo.FindByTenant(ctx, payment.TenantID)
		if err != nil {
			return err
		}
		if err := sub.Activate(payment.Plan, now); err != nil {
			return err
		}
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}
		if err := s.subRepo.Save(ctx, sub); err != nil {
			return err
		}
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func checkAmount(payment *billing.Payment, sent string) error {
	amount, err := decimal.NewFromString(sent)
	if err != nil || !amount.Equal(payment.Amount.Round(0)) {
		return shared.NewDomainError("AMOUNT_MISMATCH", "Callback amount does not match the payment")
	}
	return nil
}

// IsCallbackRejection reports whether err means the callback itself is bad
// rather than a processing failure the gateway should retry
func IsCallbackRejection(err error) bool {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case ErrInvalidCallback.Code, "AMOUNT_MISMATCH", shared.ErrNotFound.Code:
		return true
	}
	return false
}
