package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.TenantSettings), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, s *settings.TenantSettings) error {
	return m.Called(ctx, s).Error(0)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("defaults when nothing saved", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByTenant", ctx, tenantID).Return(nil, shared.NotFound("settings"))

		resp, err := NewService(repo, zap.NewNop()).Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, settings.TemplateClassic, resp.ReceiptTemplate)
		assert.Equal(t, "IDR", resp.Currency)
		assert.Equal(t, "08:00", resp.WorkStartTime)
		assert.Nil(t, resp.UpdatedAt)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByTenant", ctx, tenantID).Return(nil, errors.New("connection refused"))

		_, err := NewService(repo, zap.NewNop()).Get(ctx, tenantID)
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("saves valid settings", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByTenant", ctx, tenantID).Return(nil, shared.NotFound("settings"))
		repo.On("Save", ctx, mock.AnythingOfType("*settings.TenantSettings")).Return(nil)

		resp, err := NewService(repo, zap.NewNop()).Update(ctx, tenantID, SettingsRequest{
			StoreName:           "Warung Kopi Senja",
			ReceiptTemplate:     settings.TemplateCompact,
			EnabledReceiptTypes: []settings.ReceiptType{settings.ReceiptPrint, settings.ReceiptPDF},
			Currency:            "usd",
			DefaultTaxPercent:   decimal.NewFromInt(11),
			WorkStartTime:       "07:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "USD", resp.Currency)
		assert.Equal(t, "07:30", resp.WorkStartTime)
		assert.Len(t, resp.EnabledReceiptTypes, 2)
		assert.NotNil(t, resp.UpdatedAt)
	})

	t.Run("rejects bad work start", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByTenant", ctx, tenantID).Return(settings.Defaults(tenantID), nil)

		_, err := NewService(repo, zap.NewNop()).Update(ctx, tenantID, SettingsRequest{WorkStartTime: "25:99"})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
