package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	RecipeKeyPrefix = "recipe:%d"
	UserKeyPrefix   = "user:%d"
	TagsKey         = "tags:all"
	IngredientsKey  = "ingredients:all"
)

const (
	RecipeTTL = 30 * time.Minute
	// UserTTL is the only invalidation for cached profiles; user rows never
	// change after signup.
	UserTTL = 5 * time.Minute
	// ReferenceTTL covers tags and ingredients, which change only via import.
	ReferenceTTL = 10 * time.Minute
)

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

func InvalidateReferenceData(ctx context.Context) {
	Invalidate(ctx, TagsKey)
	Invalidate(ctx, IngredientsKey)
}
