package identity

import (
	"context"
	"testing"

	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_CreateCashier(t *testing.T) {
	ctx := context.Background()
	owner, err := identity.NewOwner("Budi", "owner@warung.id", "rahasia123")
	require.NoError(t, err)
	tc := TenantContext{TenantID: owner.TenantID, UserID: owner.ID, Role: identity.RoleOwner}

	t.Run("attaches cashier to tenant", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDForTenant", ctx, owner.TenantID, owner.TenantID).Return(owner, nil)
		repo.On("ExistsByEmail", ctx, "sari@warung.id").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		dto, err := NewUserService(repo, zap.NewNop()).CreateCashier(ctx, tc, CreateCashierRequest{
			Name: "Sari", Email: "Sari@Warung.id", Password: "rahasia123",
		})
		require.NoError(t, err)
		assert.Equal(t, identity.RoleCashier, dto.Role)
		assert.Equal(t, owner.TenantID, dto.TenantID)
		assert.Equal(t, "sari@warung.id", dto.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDForTenant", ctx, owner.TenantID, owner.TenantID).Return(owner, nil)
		repo.On("ExistsByEmail", ctx, "sari@warung.id").Return(true, nil)

		_, err := NewUserService(repo, zap.NewNop()).CreateCashier(ctx, tc, CreateCashierRequest{
			Name: "Sari", Email: "sari@warung.id", Password: "rahasia123",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	owner, err := identity.NewOwner("Budi", "owner@warung.id", "rahasia123")
	require.NoError(t, err)
	cashier, err := identity.NewCashier(owner, "Sari", "sari@warung.id", "rahasia123")
	require.NoError(t, err)

	t.Run("deactivates cashier", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDForTenant", ctx, owner.TenantID, cashier.ID).Return(cashier, nil)
		repo.On("Save", ctx, cashier).Return(nil)

		inactive := false
		name := "Sari Dewi"
		dto, err := NewUserService(repo, zap.NewNop()).UpdateCashier(ctx, owner.TenantID, cashier.ID,
			UpdateCashierRequest{Name: &name, Active: &inactive})
		require.NoError(t, err)
		assert.False(t, dto.Active)
		assert.Equal(t, "Sari Dewi", dto.Name)
	})

	t.Run("owner cannot be managed", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDForTenant", ctx, owner.TenantID, owner.ID).Return(owner, nil)
		svc := NewUserService(repo, zap.NewNop())

		_, err := svc.UpdateCashier(ctx, owner.TenantID, owner.ID, UpdateCashierRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteCashier(ctx, owner.TenantID, owner.ID), shared.ErrForbidden)
		repo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes cashier", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByIDForTenant", ctx, owner.TenantID, cashier.ID).Return(cashier, nil)
		repo.On("DeleteForTenant", ctx, owner.TenantID, cashier.ID).Return(nil)

		require.NoError(t, NewUserService(repo, zap.NewNop()).DeleteCashier(ctx, owner.TenantID, cashier.ID))
		repo.AssertExpectations(t)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	owner, err := identity.NewOwner("Budi", "owner@warung.id", "rahasia123")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindAllForTenant", ctx, owner.TenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Filters["role"] == "cashier"
	})).Return([]identity.User{*owner}, int64(1), nil)

	page, err := NewUserService(repo, zap.NewNop()).List(ctx, owner.TenantID, UserListFilter{Role: "cashier"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 1)
}
