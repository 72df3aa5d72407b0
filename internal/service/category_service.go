package service

import (
	"context"
	"strings"

	"wellspring/internal/models"
	"wellspring/internal/repository"
)

// CategoryService provides category business logic.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService returns a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns active categories with their published-session counts.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get returns one category by ID.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// Create adds a new category. Names collide case-insensitively.
func (s *CategoryService) Create(ctx context.Context, name, description, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}
	if len(name) > 50 {
		return nil, models.NewValidationError("Category name must not exceed 50 characters")
	}

	category := &models.Category{
		Name:        name,
		Description: description,
		Icon:        icon,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
