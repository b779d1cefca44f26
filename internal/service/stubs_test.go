package service

import (
	"context"
	"errors"
	"testing"

	"ladle/internal/models"
	"ladle/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn                func(context.Context, *models.Recipe) error
	updateFn                func(context.Context, *models.Recipe, []models.Tag, []models.RecipeIngredient) error
	deleteFn                func(context.Context, uint) error
	getByIDFn               func(context.Context, uint, uint) (*models.Recipe, error)
	listFn                  func(context.Context, repository.RecipeListFilter, int, int, uint) ([]*models.Recipe, error)
	countFn                 func(context.Context, repository.RecipeListFilter) (int64, error)
	listByAuthorFn          func(context.Context, uint, int) ([]*models.Recipe, error)
	countByAuthorFn         func(context.Context, uint) (int64, error)
	existsFn                func(context.Context, uint) (bool, error)
	existsByAuthorAndNameFn func(context.Context, uint, string, uint) (bool, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, recipe *models.Recipe) error {
	return s.createFn(ctx, recipe)
}
func (s *recipeRepoStub) Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, ingredients []models.RecipeIngredient) error {
	return s.updateFn(ctx, recipe, tags, ingredients)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *recipeRepoStub) List(ctx context.Context, f repository.RecipeListFilter, limit, offset int, viewerID uint) ([]*models.Recipe, error) {
	return s.listFn(ctx, f, limit, offset, viewerID)
}
func (s *recipeRepoStub) Count(ctx context.Context, f repository.RecipeListFilter) (int64, error) {
	return s.countFn(ctx, f)
}
func (s *recipeRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Recipe, error) {
	return s.listByAuthorFn(ctx, authorID, limit)
}
func (s *recipeRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *recipeRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *recipeRepoStub) ExistsByAuthorAndName(ctx context.Context, authorID uint, name string, excludeID uint) (bool, error) {
	return s.existsByAuthorAndNameFn(ctx, authorID, name, excludeID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn: func(_ context.Context, _ *models.Recipe) error { return nil },
		updateFn: func(_ context.Context, _ *models.Recipe, _ []models.Tag, _ []models.RecipeIngredient) error {
			return nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Recipe, error) {
			return &models.Recipe{}, nil
		},
		listFn: func(_ context.Context, _ repository.RecipeListFilter, _, _ int, _ uint) ([]*models.Recipe, error) {
			return nil, nil
		},
		countFn:         func(_ context.Context, _ repository.RecipeListFilter) (int64, error) { return 0, nil },
		listByAuthorFn:  func(_ context.Context, _ uint, _ int) ([]*models.Recipe, error) { return nil, nil },
		countByAuthorFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		existsFn:        func(_ context.Context, _ uint) (bool, error) { return true, nil },
		existsByAuthorAndNameFn: func(_ context.Context, _ uint, _ string, _ uint) (bool, error) {
			return false, nil
		},
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	listFn          func(context.Context) ([]models.Tag, error)
	getByIDFn       func(context.Context, uint) (*models.Tag, error)
	getByIDsFn      func(context.Context, []uint) ([]models.Tag, error)
	getBySlugsFn    func(context.Context, []string) ([]models.Tag, error)
	firstOrCreateFn func(context.Context, *models.Tag) (bool, error)
}

func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) GetBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error) {
	return s.getBySlugsFn(ctx, slugs)
}
func (s *tagRepoStub) FirstOrCreate(ctx context.Context, tag *models.Tag) (bool, error) {
	return s.firstOrCreateFn(ctx, tag)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		listFn:    func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Tag, error) { return &models.Tag{}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			tags := make([]models.Tag, len(ids))
			for i, id := range ids {
				tags[i] = models.Tag{ID: id}
			}
			return tags, nil
		},
		getBySlugsFn:    func(_ context.Context, _ []string) ([]models.Tag, error) { return nil, nil },
		firstOrCreateFn: func(_ context.Context, _ *models.Tag) (bool, error) { return true, nil },
	}
}

// ingredientRepoStub is a stub for repository.IngredientRepository.
type ingredientRepoStub struct {
	listFn          func(context.Context, string) ([]models.Ingredient, error)
	getByIDFn       func(context.Context, uint) (*models.Ingredient, error)
	getByIDsFn      func(context.Context, []uint) ([]models.Ingredient, error)
	firstOrCreateFn func(context.Context, *models.Ingredient) (bool, error)
}

func (s *ingredientRepoStub) List(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	return s.listFn(ctx, namePrefix)
}
func (s *ingredientRepoStub) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ingredientRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *ingredientRepoStub) FirstOrCreate(ctx context.Context, ingredient *models.Ingredient) (bool, error) {
	return s.firstOrCreateFn(ctx, ingredient)
}

func noopIngredientRepo() *ingredientRepoStub {
	return &ingredientRepoStub{
		listFn:    func(_ context.Context, _ string) ([]models.Ingredient, error) { return nil, nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Ingredient, error) { return &models.Ingredient{}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Ingredient, error) {
			ingredients := make([]models.Ingredient, len(ids))
			for i, id := range ids {
				ingredients[i] = models.Ingredient{ID: id}
			}
			return ingredients, nil
		},
		firstOrCreateFn: func(_ context.Context, _ *models.Ingredient) (bool, error) { return true, nil },
	}
}

// relationRepoStub is a stub for repository.RelationRepository.
type relationRepoStub struct {
	addFn    func(context.Context, uint, uint) error
	removeFn func(context.Context, uint, uint) (bool, error)
	existsFn func(context.Context, uint, uint) (bool, error)
}

func (s *relationRepoStub) Add(ctx context.Context, userID, recipeID uint) error {
	return s.addFn(ctx, userID, recipeID)
}
func (s *relationRepoStub) Remove(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.removeFn(ctx, userID, recipeID)
}
func (s *relationRepoStub) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.existsFn(ctx, userID, recipeID)
}

func noopRelationRepo() *relationRepoStub {
	return &relationRepoStub{
		addFn:    func(_ context.Context, _, _ uint) error { return nil },
		removeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// subRepoStub is a stub for repository.SubscriptionRepository.
type subRepoStub struct {
	addFn                 func(context.Context, uint, uint) error
	removeFn              func(context.Context, uint, uint) (bool, error)
	existsFn              func(context.Context, uint, uint) (bool, error)
	listAuthorsFn         func(context.Context, uint, int, int) ([]*models.User, error)
	countAuthorsFn        func(context.Context, uint) (int64, error)
	subscribedAuthorIDsFn func(context.Context, uint, []uint) ([]uint, error)
}

func (s *subRepoStub) Add(ctx context.Context, userID, authorID uint) error {
	return s.addFn(ctx, userID, authorID)
}
func (s *subRepoStub) Remove(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.removeFn(ctx, userID, authorID)
}
func (s *subRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *subRepoStub) ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	return s.listAuthorsFn(ctx, userID, limit, offset)
}
func (s *subRepoStub) CountAuthors(ctx context.Context, userID uint) (int64, error) {
	return s.countAuthorsFn(ctx, userID)
}
func (s *subRepoStub) SubscribedAuthorIDs(ctx context.Context, userID uint, authorIDs []uint) ([]uint, error) {
	return s.subscribedAuthorIDsFn(ctx, userID, authorIDs)
}

func noopSubRepo() *subRepoStub {
	return &subRepoStub{
		addFn:                 func(_ context.Context, _, _ uint) error { return nil },
		removeFn:              func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:              func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listAuthorsFn:         func(_ context.Context, _ uint, _, _ int) ([]*models.User, error) { return nil, nil },
		countAuthorsFn:        func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		subscribedAuthorIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	listFn          func(context.Context, int, int, uint) ([]*models.User, error)
	countFn         func(context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.User, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.User, error) {
	return s.listFn(ctx, limit, offset, viewerID)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id, _ uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn:          func(_ context.Context, _, _ int, _ uint) ([]*models.User, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// shoppingListRepoStub is a stub for repository.ShoppingListRepository.
type shoppingListRepoStub struct {
	aggregateFn func(context.Context, uint) ([]repository.ShoppingListItem, error)
}

func (s *shoppingListRepoStub) Aggregate(ctx context.Context, userID uint) ([]repository.ShoppingListItem, error) {
	return s.aggregateFn(ctx, userID)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
