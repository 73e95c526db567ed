package finance

import (
	"context"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category CRUD for a farm's chart of
// income/expense categories.
type CategoryService struct {
	categoryRepo finance.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo finance.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a category. The (name, type) pair is unique per farm, so
// "Feed" can exist once as income and once as expense.
func (s *CategoryService) Create(ctx context.Context, farmID, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByNameAndType(ctx, farmID, req.Name, req.Type)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name and type already exists")
	}

	category, err := finance.NewCategory(farmID, req.Name, req.Type)
	if err != nil {
		return nil, err
	}
	category.SetCreatedBy(userID)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Get retrieves a category by ID
func (s *CategoryService) Get(ctx context.Context, farmID, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForFarm(ctx, farmID, categoryID)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List lists a farm's categories, optionally restricted to one type
func (s *CategoryService) List(ctx context.Context, farmID uuid.UUID, categoryType *finance.CategoryType, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForFarm(ctx, farmID, categoryType, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToCategoryResponse(&categories[i]))
	}
	return items, nil
}

// Rename changes a category name. The type is fixed at creation.
func (s *CategoryService) Rename(ctx context.Context, farmID, categoryID uuid.UUID, req RenameCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForFarm(ctx, farmID, categoryID)
	if err != nil {
		return nil, err
	}

	if category.Name != req.Name {
		exists, err := s.categoryRepo.ExistsByNameAndType(ctx, farmID, req.Name, category.Type)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name and type already exists")
		}
	}

	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. The persistence layer restricts deletion
// while movements still reference it.
func (s *CategoryService) Delete(ctx context.Context, farmID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForFarm(ctx, farmID, categoryID); err != nil {
		return err
	}
	return s.categoryRepo.DeleteForFarm(ctx, farmID, categoryID)
}
