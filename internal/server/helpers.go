// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"ladle/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 30
)

// parsePagination extracts page and limit query parameters. Pages are
// 1-based; out-of-range values fall back to the defaults.
func parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// parseRecipesLimit extracts the recipes_limit query parameter for
// subscription previews. Values outside 1..50 fall back to the default.
func parseRecipesLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("recipes_limit", 0)
	if limit < 1 || limit > 50 {
		return 0 // the service substitutes its default
	}
	return limit
}

// pageEnvelope wraps results in the standard list envelope with absolute
// next/previous page links.
func pageEnvelope(c *fiber.Ctx, p Pagination, count int64, results any) models.Page {
	pageURL := func(page int) *string {
		u := fmt.Sprintf("%s%s?page=%d&limit=%d", c.BaseURL(), c.Path(), page, p.Limit)
		return &u
	}

	var next, previous *string
	if int64(p.Page*p.Limit) < count {
		next = pageURL(p.Page + 1)
	}
	if p.Page > 1 {
		previous = pageURL(p.Page - 1)
	}

	return models.Page{
		Count:    count,
		Next:     next,
		Previous: previous,
		Results:  results,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// respondServiceError maps service and repository errors to HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", c.Params("id")))
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "FORBIDDEN":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// currentUserID returns the authenticated user ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
