package service

import (
	"context"
	"fmt"
	"strings"

	"ladle/internal/models"
	"ladle/internal/observability"
	"ladle/internal/repository"
)

type ShoppingListService struct {
	listRepo repository.ShoppingListRepository
	userRepo repository.UserRepository
}

func NewShoppingListService(listRepo repository.ShoppingListRepository, userRepo repository.UserRepository) *ShoppingListService {
	return &ShoppingListService{listRepo: listRepo, userRepo: userRepo}
}

// Generate renders the user's aggregated shopping list as a plain text
// document and returns the suggested download filename alongside it. Amounts
// of the same ingredient (name and unit) are summed across every recipe in
// the cart. An empty cart still yields a document with just the header.
func (s *ShoppingListService) Generate(ctx context.Context, userID uint) (filename string, content string, err error) {
	span, ctx := observability.NewSpan(ctx, "service.GenerateShoppingList")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", models.NewNotFoundError("User", userID)
	}

	items, err := s.listRepo.Aggregate(ctx, userID)
	if err != nil {
		span.SetError(err)
		return "", "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for user: %s\n", user.Username)
	for _, it := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", it.Name, it.MeasurementUnit, it.Total)
	}

	observability.ShoppingListExports.Inc()
	return fmt.Sprintf("%s_shopping_list.txt", user.Username), b.String(), nil
}
