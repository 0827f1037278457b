package repository

import (
	"context"
	"errors"
	"fmt"

	categoryPkg "github.com/dustin/jearn-categorizer/internal/category"
	"github.com/dustin/jearn-categorizer/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCategoryRepository implements the category.Repository interface with GORM
type gormCategoryRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMCategoryRepository creates a new GORM-based category repository
func NewGORMCategoryRepository(db *gorm.DB, log *logger.Logger) categoryPkg.Repository {
	return &gormCategoryRepository{
		db:     db,
		logger: log.WithComponent("gorm-category-repository"),
	}
}

// FindAll is the single unconditional read used on every categorize request
func (r *gormCategoryRepository) FindAll(ctx context.Context) ([]*categoryPkg.Category, error) {
	var categories []*categoryPkg.Category

	err := r.db.WithContext(ctx).
		Select("id", "name", "jname", "myname", "created_at", "updated_at").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		r.logger.Error("Database error listing categories: " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	r.logger.Debug("Found " + fmt.Sprintf("%d", len(categories)) + " categories")

	return categories, nil
}

func (r *gormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*categoryPkg.Category, error) {
	var category categoryPkg.Category

	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Info("Category not found: " + id.String())
			return nil, categoryPkg.ErrCategoryNotFound
		}

		r.logger.Error("Database error finding category " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &category, nil
}

// FindByName matches case-insensitively, like classifier labels
func (r *gormCategoryRepository) FindByName(ctx context.Context, name string) (*categoryPkg.Category, error) {
	var category categoryPkg.Category

	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", categoryPkg.NormalizeName(name)).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoryPkg.ErrCategoryNotFound
		}

		r.logger.Error("Database error finding category by name " + name + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &category, nil
}

func (r *gormCategoryRepository) Create(ctx context.Context, category *categoryPkg.Category) error {
	r.logger.Info("Creating category " + category.ID.String() + " named " + category.Name)

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return categoryPkg.ErrCategoryExists
		}
		r.logger.Error("Failed to create category " + category.Name + ": " + err.Error())
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *gormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.logger.Info("Deleting category: " + id.String())

	result := r.db.WithContext(ctx).Delete(&categoryPkg.Category{}, "id = ?", id)
	if err := result.Error; err != nil {
		r.logger.Error("Failed to delete category " + id.String() + ": " + err.Error())
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("No category found to delete: " + id.String())
		return categoryPkg.ErrCategoryNotFound
	}

	return nil
}
