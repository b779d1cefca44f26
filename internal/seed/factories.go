// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ladle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rand *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rand: r, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTag constructs and persists a `models.Tag` with a unique slug.
func (f *Factory) CreateTag(name, color, slug string) (*models.Tag, error) {
	tag := &models.Tag{Name: name, Color: color, Slug: slug}

	if f.opts.DryRun {
		f.nextID++
		tag.ID = f.nextID
		log.Printf("[dry-run] CreateTag: %s (%s)", tag.Name, tag.Slug)
		return tag, nil
	}

	if err := f.db.Where("slug = ?", slug).FirstOrCreate(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// CreateIngredient constructs and persists a `models.Ingredient`.
func (f *Factory) CreateIngredient(name, unit string) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}

	if f.opts.DryRun {
		f.nextID++
		ingredient.ID = f.nextID
		return ingredient, nil
	}

	if err := f.db.
		Where("name = ? AND measurement_unit = ?", name, unit).
		FirstOrCreate(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// CreateRecipe constructs and persists a sample `models.Recipe` for the given
// author, composed from the provided tags and ingredients.
func (f *Factory) CreateRecipe(author *models.User, tags []models.Tag, ingredients []models.Ingredient, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Name:        fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.Dinner()),
		AuthorID:    author.ID,
		Text:        gofakeit.Paragraph(2, 4, 8, "\n"),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		CookingTime: gofakeit.Number(5, 180),
		Tags:        tags,
	}

	for _, ingredient := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       gofakeit.Number(1, 500),
		})
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(recipe)
	}

	if f.opts.DryRun {
		f.nextID++
		recipe.ID = f.nextID
		log.Printf("[dry-run] CreateRecipe: author=%d name=%q", recipe.AuthorID, recipe.Name)
		return recipe, nil
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateFavorite persists a favorite from `user` on `recipe`. Reuses an
// existing row so reseeding does not trip the unique index.
func (f *Factory) CreateFavorite(user *models.User, recipe *models.Recipe) error {
	if f.opts.DryRun {
		return nil
	}
	fav := &models.Favorite{UserID: user.ID, RecipeID: recipe.ID}
	return f.db.Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).FirstOrCreate(fav).Error
}

// CreateCartItem persists a shopping cart entry from `user` for `recipe`.
func (f *Factory) CreateCartItem(user *models.User, recipe *models.Recipe) error {
	if f.opts.DryRun {
		return nil
	}
	item := &models.ShoppingCart{UserID: user.ID, RecipeID: recipe.ID}
	return f.db.Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).FirstOrCreate(item).Error
}

// CreateSubscription persists a subscription from `follower` to `author`.
func (f *Factory) CreateSubscription(follower, author *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	sub := &models.Subscription{UserID: follower.ID, AuthorID: author.ID}
	return f.db.Where("user_id = ? AND author_id = ?", follower.ID, author.ID).FirstOrCreate(sub).Error
}
