// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/recipes/:id/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	short, err := s.favoriteService.Add(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(short)
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.Remove(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddToCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddToCart(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	short, err := s.cartService.Add(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(short)
}

// RemoveFromCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveFromCart(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.cartService.Remove(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
