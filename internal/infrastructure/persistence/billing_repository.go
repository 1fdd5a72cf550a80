package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements billing.SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

var _ billing.SubscriptionRepository = (*GormSubscriptionRepository)(nil)

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByTenant returns the tenant's subscription, locked inside a transaction
func (r *GormSubscriptionRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*billing.Subscription, error) {
	q := conn(ctx, r.db).Scopes(tenantScope(tenantID))
	if inTransaction(ctx) {
		q = forUpdate(q)
	}
	var sub billing.Subscription
	if err := q.Order("created_at").First(&sub).Error; err != nil {
		return nil, notFound(err, "subscription")
	}
	return &sub, nil
}

func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *billing.Subscription) error {
	return conn(ctx, r.db).Save(sub).Error
}

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	var payment billing.Payment
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&payment, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	return &payment, nil
}

// FindByMerchantOrderID looks a payment up across tenants, locked inside a transaction
func (r *GormPaymentRepository) FindByMerchantOrderID(ctx context.Context, merchantOrderID string) (*billing.Payment, error) {
	q := conn(ctx, r.db)
	if inTransaction(ctx) {
		q = forUpdate(q)
	}
	var payment billing.Payment
	if err := q.Where("merchant_order_id = ?", merchantOrderID).First(&payment).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Payment, int64, error) {
	filter = filter.Normalize()
	q := conn(ctx, r.db).Model(&billing.Payment{}).
		Scopes(tenantScope(tenantID), searchScope(filter.Search, "merchant_order_id", "reference"))
	if status, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", status)
	}
	return list[billing.Payment](q, filter, PaymentSortFields, "created_at")
}

func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	return conn(ctx, r.db).Save(payment).Error
}
