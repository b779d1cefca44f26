package repository

import (
	"context"

	"ladle/internal/cache"
	"ladle/internal/models"

	"gorm.io/gorm"
)

// RecipeListFilter narrows recipe listings. Zero values mean "no filter".
type RecipeListFilter struct {
	TagSlugs    []string
	AuthorID    uint
	FavoritedBy uint // only recipes favorited by this user
	InCartOf    uint // only recipes in this user's shopping cart
}

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, ingredients []models.RecipeIngredient) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Recipe, error)
	List(ctx context.Context, f RecipeListFilter, limit, offset int, viewerID uint) ([]*models.Recipe, error)
	Count(ctx context.Context, f RecipeListFilter) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsByAuthorAndName(ctx context.Context, authorID uint, name string, excludeID uint) (bool, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyViewerFlags adds subqueries computing the per-viewer derived fields in a single query.
func (r *recipeRepository) applyViewerFlags(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select(
			"recipes.*, "+
				"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
				"EXISTS(SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?) AS is_in_shopping_cart",
			viewerID, viewerID,
		)
	}
	return db.Select("recipes.*, ? AS is_favorited, ? AS is_in_shopping_cart", false, false)
}

func (r *recipeRepository) preloadAll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

// Create persists the recipe together with its tag and ingredient composition.
// GORM wraps the association inserts in one transaction with the recipe row.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update replaces the recipe's scalar fields and its whole composition in a
// single transaction: the old ingredient rows and tag links are cleared and the
// new ones created, so readers never observe a half-replaced recipe.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, ingredients []models.RecipeIngredient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].RecipeID = recipe.ID
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err == nil {
		cache.InvalidateRecipe(ctx, recipe.ID)
	}
	return err
}

// Delete hard-deletes the recipe and every row referencing it.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err == nil {
		cache.InvalidateRecipe(ctx, id)
	}
	return err
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Recipe, error) {
	var recipe models.Recipe

	fetch := func() error {
		return r.preloadAll(
			r.applyViewerFlags(r.db.WithContext(ctx).Model(&models.Recipe{}), viewerID),
		).First(&recipe, id).Error
	}

	var err error
	if viewerID == 0 {
		// Anonymous detail is viewer-independent, so it is safe to cache.
		err = cache.Aside(ctx, cache.RecipeKey(id), &recipe, cache.RecipeTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) applyFilter(db *gorm.DB, f RecipeListFilter) *gorm.DB {
	if len(f.TagSlugs) > 0 {
		db = db.Where(
			"recipes.id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug IN ?)",
			f.TagSlugs,
		)
	}
	if f.AuthorID != 0 {
		db = db.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.FavoritedBy != 0 {
		db = db.Where("recipes.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", f.FavoritedBy)
	}
	if f.InCartOf != 0 {
		db = db.Where("recipes.id IN (SELECT recipe_id FROM shopping_carts WHERE user_id = ?)", f.InCartOf)
	}
	return db
}

func (r *recipeRepository) List(ctx context.Context, f RecipeListFilter, limit, offset int, viewerID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	q := r.applyViewerFlags(r.db.WithContext(ctx).Model(&models.Recipe{}), viewerID)
	q = r.applyFilter(q, f)
	err := r.preloadAll(q).
		Order("recipes.created_at DESC, recipes.name ASC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Count(ctx context.Context, f RecipeListFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Recipe{}), f).Count(&count).Error
	return count, err
}

// ListByAuthor returns the author's newest recipes for subscription previews.
func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, name ASC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *recipeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *recipeRepository) ExistsByAuthorAndName(ctx context.Context, authorID uint, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ? AND name = ?", authorID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
