package models

import (
	"time"
)

// Recipe is the central entity: a dish published by an author with its
// ingredient composition, tags, image and cooking time in minutes.
// An author cannot have two recipes with the same name.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Name        string             `gorm:"size:200;not null;uniqueIndex:idx_recipes_author_name" json:"name"`
	AuthorID    uint               `gorm:"not null;index;uniqueIndex:idx_recipes_author_name" json:"author_id"`
	Author      User               `gorm:"foreignKey:AuthorID" json:"author"`
	Text        string             `gorm:"type:text;not null" json:"text"`
	Image       string             `json:"image"`
	CookingTime int                `gorm:"not null" json:"cooking_time"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	// IsFavorited indicates whether the current requesting user favorited this recipe (computed)
	IsFavorited bool `gorm:"->" json:"is_favorited"`
	// IsInShoppingCart indicates whether this recipe is in the requesting user's cart (computed)
	IsInShoppingCart bool      `gorm:"->" json:"is_in_shopping_cart"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RecipeIngredient links a recipe to an ingredient with the amount used.
// A recipe lists each ingredient at most once.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RecipeID     uint       `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Amount       int        `gorm:"not null" json:"amount"`
}
