package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("ExistsByName", ctx, tenantID, "Minuman", mock.Anything).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := NewCategoryService(repo).Create(ctx, tenantID, CategoryRequest{Name: "Minuman"})
		require.NoError(t, err)
		assert.Equal(t, "Minuman", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("ExistsByName", ctx, tenantID, "Minuman", mock.Anything).Return(true, nil)

		_, err := NewCategoryService(repo).Create(ctx, tenantID, CategoryRequest{Name: "Minuman"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	category, err := catalog.NewCategory(tenantID, "Makanan", "")
	require.NoError(t, err)

	t.Run("refuses while products use it", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		repo.On("CountProducts", ctx, tenantID, category.ID).Return(int64(3), nil)

		err := NewCategoryService(repo).Delete(ctx, tenantID, category.ID)
		assert.ErrorIs(t, err, shared.ErrInUse)
		repo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes unused category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		repo.On("CountProducts", ctx, tenantID, category.ID).Return(int64(0), nil)
		repo.On("DeleteForTenant", ctx, tenantID, category.ID).Return(nil)

		require.NoError(t, NewCategoryService(repo).Delete(ctx, tenantID, category.ID))
		repo.AssertExpectations(t)
	})

	t.Run("other tenant sees not found", func(t *testing.T) {
		other := uuid.New()
		repo := new(MockCategoryRepository)
		repo.On("FindByIDForTenant", ctx, other, category.ID).Return(nil, shared.NotFound("category"))

		err := NewCategoryService(repo).Delete(ctx, other, category.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
