package repository

import (
	"context"
	"fmt"
	"testing"

	"ladle/internal/models"
	"ladle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	follower := &models.User{Username: "follower", Email: "f@example.com", Password: "x"}
	require.NoError(t, db.Create(follower).Error)

	var authorIDs []uint
	for i := 0; i < 3; i++ {
		author := &models.User{
			Username: fmt.Sprintf("author%d", i),
			Email:    fmt.Sprintf("a%d@example.com", i),
			Password: "x",
		}
		require.NoError(t, db.Create(author).Error)
		authorIDs = append(authorIDs, author.ID)
	}

	require.NoError(t, repo.Add(ctx, follower.ID, authorIDs[0]))
	require.NoError(t, repo.Add(ctx, follower.ID, authorIDs[1]))

	exists, err := repo.Exists(ctx, follower.ID, authorIDs[0])
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, follower.ID, authorIDs[2])
	require.NoError(t, err)
	assert.False(t, exists)

	// Duplicate subscribe hits the unique index.
	err = repo.Add(ctx, follower.ID, authorIDs[0])
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	count, err := repo.CountAuthors(ctx, follower.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	authors, err := repo.ListAuthors(ctx, follower.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, authors, 2)

	subscribed, err := repo.SubscribedAuthorIDs(ctx, follower.ID, authorIDs)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{authorIDs[0], authorIDs[1]}, subscribed)

	removed, err := repo.Remove(ctx, follower.ID, authorIDs[0])
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, follower.ID, authorIDs[0])
	require.NoError(t, err)
	assert.False(t, removed)
}
