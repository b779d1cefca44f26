package repository

import (
	"context"
	"errors"
	"strings"

	"ladle/internal/cache"
	"ladle/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository defines the interface for ingredient reference data operations.
type IngredientRepository interface {
	List(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id uint) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
	FirstOrCreate(ctx context.Context, ingredient *models.Ingredient) (bool, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// List returns ingredients, optionally filtered by a case-insensitive name prefix.
// Only the unfiltered list is cached; prefix searches hit the database.
func (r *ingredientRepository) List(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient

	if namePrefix == "" {
		err := cache.Aside(ctx, cache.IngredientsKey, &ingredients, cache.ReferenceTTL, func() error {
			return r.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error
		})
		return ingredients, err
	}

	// LOWER/LIKE instead of ILIKE so the query runs on both Postgres and SQLite.
	pattern := strings.ToLower(namePrefix) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// FirstOrCreate inserts the ingredient unless the (name, unit) pair exists.
// Returns true when a new row was created.
func (r *ingredientRepository) FirstOrCreate(ctx context.Context, ingredient *models.Ingredient) (bool, error) {
	var existing models.Ingredient
	err := r.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
		First(&existing).Error
	if err == nil {
		*ingredient = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return false, err
	}
	cache.InvalidateReferenceData(ctx)
	return true, nil
}
