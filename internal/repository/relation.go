package repository

import (
	"context"

	"ladle/internal/cache"
	"ladle/internal/models"

	"gorm.io/gorm"
)

// RelationRepository handles a (user, recipe) marker relation. Favorites and
// shopping cart entries share the same shape, so one implementation serves both.
type RelationRepository interface {
	Add(ctx context.Context, userID, recipeID uint) error
	// Remove deletes the pair and reports whether a row was actually removed.
	Remove(ctx context.Context, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
}

type relationKind int

const (
	relationFavorite relationKind = iota
	relationShoppingCart
)

type relationRepository struct {
	db   *gorm.DB
	kind relationKind
}

// NewFavoriteRepository creates a repository over the favorites relation.
func NewFavoriteRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db, kind: relationFavorite}
}

// NewShoppingCartRepository creates a repository over the shopping cart relation.
func NewShoppingCartRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db, kind: relationShoppingCart}
}

func (r *relationRepository) model(userID, recipeID uint) any {
	if r.kind == relationFavorite {
		return &models.Favorite{UserID: userID, RecipeID: recipeID}
	}
	return &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
}

func (r *relationRepository) emptyModel() any {
	if r.kind == relationFavorite {
		return &models.Favorite{}
	}
	return &models.ShoppingCart{}
}

// Add inserts the pair. The composite unique index backstops concurrent
// duplicate adds; callers translate the violation into a validation error.
func (r *relationRepository) Add(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).Create(r.model(userID, recipeID)).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return err
}

func (r *relationRepository) Remove(ctx context.Context, userID, recipeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(r.emptyModel())
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return res.RowsAffected > 0, nil
}

func (r *relationRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(r.emptyModel()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}
