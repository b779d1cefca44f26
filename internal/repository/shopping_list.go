package repository

import (
	"context"

	"ladle/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// ShoppingListItem is one aggregated line of a user's shopping list:
// an ingredient identity with the summed amount across all cart recipes.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// ShoppingListRepository aggregates a user's shopping cart into list items.
type ShoppingListRepository interface {
	Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error)
}

type shoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// Aggregate joins the user's cart to recipe compositions, groups by ingredient
// identity (name, unit) and sums the amounts. Ordering is summed amount
// descending with ingredient name ascending as the tie-break, which makes the
// rendered list deterministic.
func (r *shoppingListRepository) Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error) {
	span, ctx := observability.NewSpan(ctx, "repository.AggregateShoppingList")
	span.AddAttributes(attribute.Int("user.id", int(userID)))
	defer span.End()

	defer observability.TrackQuery("aggregate", "shopping_carts")()

	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("total DESC, name ASC").
		Scan(&items).Error
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return items, nil
}
