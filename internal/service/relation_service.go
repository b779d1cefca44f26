package service

import (
	"context"

	"ladle/internal/models"
	"ladle/internal/repository"

	"gorm.io/gorm"
)

// RelationService implements the favorite and shopping cart toggles. The two
// relations behave identically apart from wording, so one service configured
// with a label serves both.
type RelationService struct {
	relationRepo repository.RelationRepository
	recipeRepo   repository.RecipeRepository
	label        string // "favorites" or "shopping cart"
}

// NewFavoriteService creates the toggle service for favorites.
func NewFavoriteService(relationRepo repository.RelationRepository, recipeRepo repository.RecipeRepository) *RelationService {
	return &RelationService{relationRepo: relationRepo, recipeRepo: recipeRepo, label: "favorites"}
}

// NewCartService creates the toggle service for the shopping cart.
func NewCartService(relationRepo repository.RelationRepository, recipeRepo repository.RecipeRepository) *RelationService {
	return &RelationService{relationRepo: relationRepo, recipeRepo: recipeRepo, label: "shopping cart"}
}

// Add links the recipe to the user and returns the short recipe representation.
// A missing recipe is a not-found error; a pair that already exists is a
// validation error, in that order.
func (s *RelationService) Add(ctx context.Context, userID, recipeID uint) (*models.RecipeShort, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, 0)
	if err != nil {
		return nil, err
	}

	exists, err := s.relationRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("Recipe is already in " + s.label)
	}

	if err := s.relationRepo.Add(ctx, userID, recipeID); err != nil {
		// A concurrent add can slip past the Exists check; the unique
		// index reports it and it gets the same validation answer.
		if repository.IsUniqueViolation(err) {
			return nil, models.NewValidationError("Recipe is already in " + s.label)
		}
		return nil, err
	}
	return models.NewRecipeShort(recipe), nil
}

// Remove unlinks the recipe from the user. Removing a pair that does not exist
// is a validation error; a missing recipe is reported first as not found.
// Remove needs no recipe data for its response, so a bare existence check
// replaces the full fetch the add path does.
func (s *RelationService) Remove(ctx context.Context, userID, recipeID uint) error {
	exists, err := s.recipeRepo.Exists(ctx, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return gorm.ErrRecordNotFound
	}

	removed, err := s.relationRepo.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Recipe is not in " + s.label)
	}
	return nil
}
