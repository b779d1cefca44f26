package service

import (
	"context"

	"ladle/internal/models"
	"ladle/internal/repository"
)

const (
	// DefaultRecipesLimit is the preview size when recipes_limit is not given.
	DefaultRecipesLimit = 3
	// MaxRecipesLimit caps the preview size a client may request.
	MaxRecipesLimit = 50
)

type SubscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

type ListSubscriptionsInput struct {
	UserID       uint
	Limit        int
	Offset       int
	RecipesLimit int
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:    subRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe follows the author and returns their profile with a recipe preview.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*models.SubscriptionView, error) {
	if userID == authorID {
		return nil, models.NewValidationError("You cannot subscribe to yourself")
	}

	author, err := s.userRepo.GetByID(ctx, authorID, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", authorID)
	}

	exists, err := s.subRepo.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("You are already subscribed to this user")
	}

	if err := s.subRepo.Add(ctx, userID, authorID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewValidationError("You are already subscribed to this user")
		}
		return nil, err
	}

	author.IsSubscribed = true
	return s.buildView(ctx, author, recipesLimit)
}

// Unsubscribe removes the follow. A pair that does not exist is a validation
// error; a missing author is reported first as not found.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	author, err := s.userRepo.GetByID(ctx, authorID, userID)
	if err != nil {
		return err
	}
	if author == nil {
		return models.NewNotFoundError("User", authorID)
	}

	removed, err := s.subRepo.Remove(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("You are not subscribed to this user")
	}
	return nil
}

// ListSubscriptions returns the authors the user follows, each with a recipe preview.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, in ListSubscriptionsInput) ([]*models.SubscriptionView, int64, error) {
	authors, err := s.subRepo.ListAuthors(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.subRepo.CountAuthors(ctx, in.UserID)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.SubscriptionView, 0, len(authors))
	for _, author := range authors {
		// The listing is the set of followed authors, so the flag is known.
		author.IsSubscribed = true
		view, err := s.buildView(ctx, author, in.RecipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, count, nil
}

func normalizeRecipesLimit(limit int) int {
	if limit < 1 {
		return DefaultRecipesLimit
	}
	if limit > MaxRecipesLimit {
		return MaxRecipesLimit
	}
	return limit
}

func (s *SubscriptionService) buildView(ctx context.Context, author *models.User, recipesLimit int) (*models.SubscriptionView, error) {
	recipesLimit = normalizeRecipesLimit(recipesLimit)

	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	preview := make([]*models.RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		preview = append(preview, models.NewRecipeShort(r))
	}
	return &models.SubscriptionView{
		UserView:     models.NewUserView(author),
		Recipes:      preview,
		RecipesCount: total,
	}, nil
}
