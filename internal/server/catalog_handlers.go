// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"ladle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if tag == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Tag", id))
	}
	return c.JSON(tag)
}

// GetIngredients handles GET /api/ingredients with an optional ?name= prefix filter.
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := s.ingredientRepo.List(c.Context(), c.Query("name"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return c.JSON(ingredients)
}

// GetIngredient handles GET /api/ingredients/:id
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ingredient, err := s.ingredientRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if ingredient == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Ingredient", id))
	}
	return c.JSON(ingredient)
}
