package models

import (
	"time"
)

// Favorite marks a recipe as favorited by a user. One row per (user, recipe).
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ShoppingCart marks a recipe as queued for the user's shopping list.
// One row per (user, recipe).
type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_carts_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_carts_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription records that a user follows an author. Self-subscriptions are
// rejected at the service layer; one row per (user, author).
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_subscriptions_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_subscriptions_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
