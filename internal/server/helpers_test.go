package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name   string
		query  string
		expect Pagination
	}{
		{"defaults", "", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"explicit", "?page=3&limit=5", Pagination{Page: 3, Limit: 5, Offset: 10}},
		{"limit capped", "?limit=500", Pagination{Page: 1, Limit: 30, Offset: 0}},
		{"negative page", "?page=-2", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"garbage", "?page=abc&limit=xyz", Pagination{Page: 1, Limit: 10, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestParseRecipesLimit(t *testing.T) {
	app := fiber.New()
	var got int
	app.Get("/", func(c *fiber.Ctx) error {
		got = parseRecipesLimit(c)
		return c.SendStatus(http.StatusOK)
	})

	for query, expect := range map[string]int{
		"":                  0,
		"?recipes_limit=5":  5,
		"?recipes_limit=50": 50,
		"?recipes_limit=51": 0,
		"?recipes_limit=0":  0,
		"?recipes_limit=-1": 0,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+query, nil))
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, expect, got, "query %q", query)
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}
