package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ladle/internal/config"
	"ladle/internal/models"
	"ladle/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testEnv is a fully wired server over an in-memory database, without Redis.
type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		JWTSecret: "test_secret",
		Env:       "test",
		MediaDir:  t.TempDir(),
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testEnv{server: srv, app: app, db: db}
}

// createUser inserts a user directly and returns it with a valid token.
func (e *testEnv) createUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("kitchen42"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := e.server.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createTag(t *testing.T, name, slug string) *models.Tag {
	t.Helper()
	// Tag colors are unique across the table, so derive one per slug.
	color := fmt.Sprintf("#%06X", crc32.ChecksumIEEE([]byte(slug))&0xFFFFFF)
	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, e.db.Create(tag).Error)
	return tag
}

func (e *testEnv) createIngredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, e.db.Create(ingredient).Error)
	return ingredient
}

// createRecipe inserts a recipe with one composition row directly.
func (e *testEnv) createRecipe(t *testing.T, name string, author *models.User, tag *models.Tag, ingredient *models.Ingredient) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:        name,
		AuthorID:    author.ID,
		Text:        "cook it",
		Image:       "/media/" + name + ".jpg",
		CookingTime: 25,
		Ingredients: []models.RecipeIngredient{{IngredientID: ingredient.ID, Amount: 100}},
	}
	if tag != nil {
		recipe.Tags = []models.Tag{*tag}
	}
	require.NoError(t, e.db.Create(recipe).Error)
	return recipe
}

// request performs an HTTP request against the test app and decodes the JSON body.
func (e *testEnv) request(t *testing.T, method, target, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/recipes/"},
		{http.MethodGet, "/api/recipes/download_shopping_cart"},
		{http.MethodPost, "/api/recipes/1/favorite"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users/subscriptions"},
		{http.MethodPost, "/api/users/1/subscribe"},
	} {
		resp, _ := env.request(t, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			fmt.Sprintf("%s %s", route.method, route.path))
	}
}

func TestAuthRequired_RejectsForeignToken(t *testing.T) {
	env := newTestEnv(t)

	other, err := NewServerWithDeps(&config.Config{JWTSecret: "other_secret", Env: "test"}, env.db, nil)
	require.NoError(t, err)
	token, err := other.generateToken(1, "mallory")
	require.NoError(t, err)

	resp, _ := env.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
