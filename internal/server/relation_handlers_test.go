package server

import (
	"fmt"
	"net/http"
	"testing"

	"ladle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggle(t *testing.T) {
	env := newTestEnv(t)
	author, _ := env.createUser(t, "author")
	_, token := env.createUser(t, "eater")
	tag := env.createTag(t, "Dinner", "dinner")
	salt := env.createIngredient(t, "salt", "g")
	recipe := env.createRecipe(t, "Stew", author, tag, salt)

	target := fmt.Sprintf("/api/recipes/%d/favorite", recipe.ID)

	resp, raw := env.request(t, http.MethodPost, target, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	short := decodeJSON[models.RecipeShort](t, raw)
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, "Stew", short.Name)

	// Adding twice is a client error.
	resp, _ = env.request(t, http.MethodPost, target, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The viewer-scoped flag shows up on the detail view.
	resp, raw = env.request(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeJSON[models.RecipeView](t, raw)
	assert.True(t, view.IsFavorited)

	resp, _ = env.request(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Removing what is not there is a client error.
	resp, _ = env.request(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartToggle(t *testing.T) {
	env := newTestEnv(t)
	author, _ := env.createUser(t, "author")
	_, token := env.createUser(t, "shopper")
	tag := env.createTag(t, "Dinner", "dinner")
	salt := env.createIngredient(t, "salt", "g")
	recipe := env.createRecipe(t, "Stew", author, tag, salt)

	target := fmt.Sprintf("/api/recipes/%d/shopping_cart", recipe.ID)

	resp, raw := env.request(t, http.MethodPost, target, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)

	resp, _ = env.request(t, http.MethodPost, target, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.request(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.request(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFavoriteToggle_MissingRecipe(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "eater")

	// A missing recipe is 404 even though the add would also be invalid.
	resp, _ := env.request(t, http.MethodPost, "/api/recipes/9999/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.request(t, http.MethodDelete, "/api/recipes/9999/shopping_cart", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
