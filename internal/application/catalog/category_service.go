package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/catalog"
	"github.com/idcashier/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category; names are unique per tenant, ignoring case
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	if err := s.ensureNameFree(ctx, tenantID, req.Name, nil); err != nil {
		return nil, err
	}
	category, err := catalog.NewCategory(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		category.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category
func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves categories with search and pagination
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (shared.Paginated[CategoryResponse], error) {
	f := filter.toFilter()
	categories, total, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}
	items := make([]CategoryResponse, len(categories))
	for i := range categories {
		items[i] = ToCategoryResponse(&categories[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, tenantID, req.Name, &id); err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category that no product uses
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", "Category still has products")
	}
	return s.categoryRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *CategoryService) ensureNameFree(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, tenantID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}
	return nil
}
