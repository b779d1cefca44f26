// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"ladle/internal/models"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c)

	users, count, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, models.NewUserView(u))
	}
	return c.JSON(pageEnvelope(c, p, count, views))
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetUser(c.Context(), userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.NewUserView(user))
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.NewUserView(user))
}

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	p := parsePagination(c)

	views, count, err := s.subscriptionService.ListSubscriptions(c.Context(), service.ListSubscriptionsInput{
		UserID:       currentUserID(c),
		Limit:        p.Limit,
		Offset:       p.Offset,
		RecipesLimit: parseRecipesLimit(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pageEnvelope(c, p, count, views))
}

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.subscriptionService.Subscribe(c.Context(), currentUserID(c), id, parseRecipesLimit(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.subscriptionService.Unsubscribe(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
