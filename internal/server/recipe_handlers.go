// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"strings"

	"ladle/internal/models"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// recipeRequest is the JSON body of recipe create/update requests.
type recipeRequest struct {
	Name        string                          `json:"name"`
	Text        string                          `json:"text"`
	Image       string                          `json:"image"`
	CookingTime int                             `json:"cooking_time"`
	Tags        []uint                          `json:"tags"`
	Ingredients []service.RecipeIngredientInput `json:"ingredients"`
}

// GetRecipes handles GET /api/recipes
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	p := parsePagination(c)
	viewerID, _ := s.optionalUserID(c)

	in := service.ListRecipesInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: viewerID,
		AuthorID:      uint(c.QueryInt("author", 0)),
		OnlyFavorited: c.QueryBool("is_favorited", false),
		OnlyInCart:    c.QueryBool("is_in_shopping_cart", false),
	}
	if tags := c.Query("tags"); tags != "" {
		in.TagSlugs = strings.Split(tags, ",")
	}

	views, count, err := s.recipeService.ListRecipes(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pageEnvelope(c, p, count, views))
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	view, err := s.recipeService.GetRecipe(c.Context(), id, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.recipeService.CreateRecipe(c.Context(), service.CreateRecipeInput{
		AuthorID:    currentUserID(c),
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateRecipe handles PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.recipeService.UpdateRecipe(c.Context(), service.UpdateRecipeInput{
		UserID:      currentUserID(c),
		RecipeID:    id,
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	filename, content, err := s.shoppingListService.Generate(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(content)
}
