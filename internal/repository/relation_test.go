package repository

import (
	"context"
	"testing"

	"ladle/internal/models"
	"ladle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func relationTestData(t *testing.T, db *gorm.DB) (userID, recipeID uint) {
	t.Helper()
	user := &models.User{Username: "eater", Email: "eater@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	author := &models.User{Username: "cook", Email: "cook@example.com", Password: "x"}
	require.NoError(t, db.Create(author).Error)
	recipe := &models.Recipe{Name: "Soup", AuthorID: author.ID, Text: "boil", CookingTime: 10}
	require.NoError(t, db.Create(recipe).Error)
	return user.ID, recipe.ID
}

func TestRelationRepository_AddRemoveExists(t *testing.T) {
	for _, tc := range []struct {
		name string
		ctor func(*gorm.DB) RelationRepository
	}{
		{"favorites", NewFavoriteRepository},
		{"shopping cart", NewShoppingCartRepository},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewTestDB(t)
			userID, recipeID := relationTestData(t, db)
			repo := tc.ctor(db)
			ctx := context.Background()

			exists, err := repo.Exists(ctx, userID, recipeID)
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, repo.Add(ctx, userID, recipeID))

			exists, err = repo.Exists(ctx, userID, recipeID)
			require.NoError(t, err)
			assert.True(t, exists)

			// Duplicate add hits the unique index.
			err = repo.Add(ctx, userID, recipeID)
			require.Error(t, err)
			assert.True(t, IsUniqueViolation(err))

			removed, err := repo.Remove(ctx, userID, recipeID)
			require.NoError(t, err)
			assert.True(t, removed)

			removed, err = repo.Remove(ctx, userID, recipeID)
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}
}

func TestRelationRepository_Isolation(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID, recipeID := relationTestData(t, db)
	ctx := context.Background()

	// The same pair may exist in favorites and in the cart independently.
	require.NoError(t, NewFavoriteRepository(db).Add(ctx, userID, recipeID))
	require.NoError(t, NewShoppingCartRepository(db).Add(ctx, userID, recipeID))

	removed, err := NewFavoriteRepository(db).Remove(ctx, userID, recipeID)
	require.NoError(t, err)
	assert.True(t, removed)

	inCart, err := NewShoppingCartRepository(db).Exists(ctx, userID, recipeID)
	require.NoError(t, err)
	assert.True(t, inCart)
}
