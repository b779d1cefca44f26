package service

import (
	"context"
	"strings"

	"ladle/internal/models"
	"ladle/internal/observability"
	"ladle/internal/repository"
)

const (
	maxRecipeNameLen = 200
	maxRecipeTextLen = 10000
)

// ImageStore persists an image payload and returns its public URL.
type ImageStore interface {
	SaveDataURL(ctx context.Context, payload string) (string, error)
}

type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	subRepo        repository.SubscriptionRepository
	images         ImageStore
}

// RecipeIngredientInput is one composition row of a create/update payload.
type RecipeIngredientInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

type CreateRecipeInput struct {
	AuthorID    uint
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []uint
	Ingredients []RecipeIngredientInput
}

type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []uint
	Ingredients []RecipeIngredientInput
}

type ListRecipesInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	TagSlugs      []string
	AuthorID      uint
	OnlyFavorited bool
	OnlyInCart    bool
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	subRepo repository.SubscriptionRepository,
	images ImageStore,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		subRepo:        subRepo,
		images:         images,
	}
}

// validateComposition checks the shared create/update rules and resolves the
// referenced tags and ingredients.
func (s *RecipeService) validateComposition(ctx context.Context, tagIDs []uint, ingredients []RecipeIngredientInput) ([]models.Tag, []models.RecipeIngredient, error) {
	if len(tagIDs) == 0 {
		return nil, nil, models.NewValidationError("At least one tag is required")
	}
	if len(ingredients) == 0 {
		return nil, nil, models.NewValidationError("At least one ingredient is required")
	}

	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return nil, nil, models.NewValidationError("Duplicate tags are not allowed")
		}
		seenTags[id] = true
	}

	seenIngredients := make(map[uint]bool, len(ingredients))
	ingredientIDs := make([]uint, 0, len(ingredients))
	for _, in := range ingredients {
		if in.Amount < 1 {
			return nil, nil, models.NewValidationError("Ingredient amount must be at least 1")
		}
		if seenIngredients[in.ID] {
			return nil, nil, models.NewValidationError("Duplicate ingredients are not allowed")
		}
		seenIngredients[in.ID] = true
		ingredientIDs = append(ingredientIDs, in.ID)
	}

	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, models.NewValidationError("One or more tags do not exist")
	}

	found, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ingredientIDs) {
		return nil, nil, models.NewValidationError("One or more ingredients do not exist")
	}

	rows := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, in := range ingredients {
		rows = append(rows, models.RecipeIngredient{IngredientID: in.ID, Amount: in.Amount})
	}
	return tags, rows, nil
}

func validateRecipeFields(name, text string, cookingTime int) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if len(name) > maxRecipeNameLen {
		return models.NewValidationError("Name too long (max 200 characters)")
	}
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Description is required")
	}
	if len(text) > maxRecipeTextLen {
		return models.NewValidationError("Description too long (max 10000 characters)")
	}
	if cookingTime < 1 {
		return models.NewValidationError("Cooking time must be at least 1 minute")
	}
	return nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.RecipeView, error) {
	if err := validateRecipeFields(in.Name, in.Text, in.CookingTime); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Image) == "" {
		return nil, models.NewValidationError("Image is required")
	}

	tags, ingredients, err := s.validateComposition(ctx, in.TagIDs, in.Ingredients)
	if err != nil {
		return nil, err
	}

	taken, err := s.recipeRepo.ExistsByAuthorAndName(ctx, in.AuthorID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("You already have a recipe with this name")
	}

	imageURL := in.Image
	if s.images != nil {
		imageURL, err = s.images.SaveDataURL(ctx, in.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe := &models.Recipe{
		Name:        in.Name,
		AuthorID:    in.AuthorID,
		Text:        in.Text,
		Image:       imageURL,
		CookingTime: in.CookingTime,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewValidationError("You already have a recipe with this name")
		}
		return nil, err
	}
	observability.RecipeMutations.WithLabelValues("create").Inc()

	return s.GetRecipe(ctx, recipe.ID, in.AuthorID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	view := models.NewRecipeView(recipe)
	if err := s.enrichAuthorSubscriptions(ctx, currentUserID, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]*models.RecipeView, int64, error) {
	if err := s.validateTagSlugs(ctx, in.TagSlugs); err != nil {
		return nil, 0, err
	}

	filter := repository.RecipeListFilter{
		TagSlugs: in.TagSlugs,
		AuthorID: in.AuthorID,
	}
	// Favorited/cart filters only make sense for a logged-in viewer.
	if in.OnlyFavorited && in.CurrentUserID != 0 {
		filter.FavoritedBy = in.CurrentUserID
	}
	if in.OnlyInCart && in.CurrentUserID != 0 {
		filter.InCartOf = in.CurrentUserID
	}

	recipes, err := s.recipeRepo.List(ctx, filter, in.Limit, in.Offset, in.CurrentUserID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.recipeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views := models.NewRecipeViews(recipes)
	if err := s.enrichAuthorSubscriptions(ctx, in.CurrentUserID, views...); err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

// validateTagSlugs rejects filters naming tags that do not exist, so a typo in
// a tag filter reads as a client error rather than an empty result.
func (s *RecipeService) validateTagSlugs(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}
	tags, err := s.tagRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(tags))
	for _, tag := range tags {
		known[tag.Slug] = true
	}
	for _, slug := range slugs {
		if !known[slug] {
			return models.NewValidationError("Unknown tag: " + slug)
		}
	}
	return nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own recipes")
	}

	if err := validateRecipeFields(in.Name, in.Text, in.CookingTime); err != nil {
		return nil, err
	}
	tags, ingredients, err := s.validateComposition(ctx, in.TagIDs, in.Ingredients)
	if err != nil {
		return nil, err
	}

	taken, err := s.recipeRepo.ExistsByAuthorAndName(ctx, in.UserID, in.Name, in.RecipeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("You already have a recipe with this name")
	}

	imageURL := recipe.Image
	if strings.TrimSpace(in.Image) != "" {
		imageURL = in.Image
		if s.images != nil {
			imageURL, err = s.images.SaveDataURL(ctx, in.Image)
			if err != nil {
				return nil, err
			}
		}
	}

	recipe.Name = in.Name
	recipe.Text = in.Text
	recipe.Image = imageURL
	recipe.CookingTime = in.CookingTime
	if err := s.recipeRepo.Update(ctx, recipe, tags, ingredients); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewValidationError("You already have a recipe with this name")
		}
		return nil, err
	}
	observability.RecipeMutations.WithLabelValues("update").Inc()

	return s.GetRecipe(ctx, in.RecipeID, in.UserID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own recipes")
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}
	observability.RecipeMutations.WithLabelValues("delete").Inc()
	return nil
}

// enrichAuthorSubscriptions fills in the viewer's is_subscribed flag on recipe
// authors. Recipe queries compute favorite/cart flags in SQL, but the author
// rows come from a preload, so the flag is resolved here in one batch query.
func (s *RecipeService) enrichAuthorSubscriptions(ctx context.Context, viewerID uint, views ...*models.RecipeView) error {
	if viewerID == 0 || len(views) == 0 || s.subRepo == nil {
		return nil
	}

	authorIDs := make([]uint, 0, len(views))
	seen := make(map[uint]bool, len(views))
	for _, v := range views {
		if !seen[v.Author.ID] {
			seen[v.Author.ID] = true
			authorIDs = append(authorIDs, v.Author.ID)
		}
	}

	subscribed, err := s.subRepo.SubscribedAuthorIDs(ctx, viewerID, authorIDs)
	if err != nil {
		return err
	}
	subscribedMap := make(map[uint]bool, len(subscribed))
	for _, id := range subscribed {
		subscribedMap[id] = true
	}
	for _, v := range views {
		v.Author.IsSubscribed = subscribedMap[v.Author.ID]
	}
	return nil
}
