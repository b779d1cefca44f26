package server

import (
	"fmt"
	"net/http"
	"testing"

	"ladle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "viewer")
	env.createUser(t, "other")

	resp, raw := env.request(t, http.MethodGet, "/api/users/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)

	page := decodeJSON[struct {
		Count   int64             `json:"count"`
		Results []models.UserView `json:"results"`
	}](t, raw)
	assert.EqualValues(t, 2, page.Count)
	assert.Len(t, page.Results, 2)
}

func TestGetUserProfile_SubscribedFlag(t *testing.T) {
	env := newTestEnv(t)
	viewer, token := env.createUser(t, "viewer")
	author, _ := env.createUser(t, "author")
	require.NoError(t, env.db.Create(&models.Subscription{UserID: viewer.ID, AuthorID: author.ID}).Error)

	resp, raw := env.request(t, http.MethodGet, fmt.Sprintf("/api/users/%d", author.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeJSON[models.UserView](t, raw)
	assert.True(t, view.IsSubscribed)

	resp, _ = env.request(t, http.MethodGet, "/api/users/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubscriptionFlow(t *testing.T) {
	env := newTestEnv(t)
	follower, token := env.createUser(t, "follower")
	author, _ := env.createUser(t, "author")
	tag := env.createTag(t, "Dinner", "dinner")
	salt := env.createIngredient(t, "salt", "g")
	for i := 0; i < 5; i++ {
		env.createRecipe(t, fmt.Sprintf("Recipe %d", i), author, tag, salt)
	}

	subscribeURL := fmt.Sprintf("/api/users/%d/subscribe", author.ID)

	// Subscribing to yourself is rejected.
	resp, _ := env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", follower.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Subscribing to a missing user is 404.
	resp, _ = env.request(t, http.MethodPost, "/api/users/9999/subscribe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw := env.request(t, http.MethodPost, subscribeURL, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	view := decodeJSON[models.SubscriptionView](t, raw)
	assert.Equal(t, "author", view.Username)
	assert.True(t, view.IsSubscribed)
	// The preview defaults to three recipes while the count is the full total.
	assert.Len(t, view.Recipes, 3)
	assert.EqualValues(t, 5, view.RecipesCount)

	// Subscribing twice is a client error.
	resp, _ = env.request(t, http.MethodPost, subscribeURL, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The subscription list honors recipes_limit.
	resp, raw = env.request(t, http.MethodGet, "/api/users/subscriptions?recipes_limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)
	page := decodeJSON[struct {
		Count   int64                      `json:"count"`
		Results []*models.SubscriptionView `json:"results"`
	}](t, raw)
	assert.EqualValues(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Len(t, page.Results[0].Recipes, 2)

	resp, _ = env.request(t, http.MethodDelete, subscribeURL, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Unsubscribing twice is a client error.
	resp, _ = env.request(t, http.MethodDelete, subscribeURL, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
