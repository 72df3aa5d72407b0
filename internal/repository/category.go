package repository

import (
	"context"
	"errors"

	"wellspring/internal/cache"
	"wellspring/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Upsert(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns active categories with the count of published public sessions
// in each, cached under a single key.
func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		if err := r.db.WithContext(ctx).
			Select("categories.*, "+
				"(SELECT COUNT(*) FROM sessions WHERE sessions.category_id = categories.id "+
				"AND sessions.status = ? AND sessions.privacy = ? AND sessions.deleted_at IS NULL) as session_count",
				models.SessionStatusPublished, models.SessionPrivacyPublic).
			Where("is_active = ?", true).
			Order("name ASC").
			Find(&categories).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

// Create inserts a new category. Names are unique case-insensitively, so
// "Yoga" and "yoga" collide.
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	var existing int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", category.Name).
		Count(&existing).Error; err != nil {
		return models.NewInternalError(err)
	}
	if existing > 0 {
		return models.NewConflictError("Category already exists")
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Category already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return nil
}

// Upsert creates the category if no active row shares its name. Used by seeding.
func (r *categoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	var existing models.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", category.Name).First(&existing).Error
	if err == nil {
		category.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}
	return r.Create(ctx, category)
}
