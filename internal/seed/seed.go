package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ladle/internal/models"

	"gorm.io/gorm"
)

// SeedOptions configuration for the seeder
type SeedOptions struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
	// SkipBcrypt stores plaintext passwords; much faster for large seeds.
	SkipBcrypt bool
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// MaxDays spreads recipe creation dates over the past N days.
	MaxDays int
}

var presetTags = []struct {
	Name  string
	Color string
	Slug  string
}{
	{"Breakfast", "#E26C2D", "breakfast"},
	{"Lunch", "#49B64E", "lunch"},
	{"Dinner", "#8775D2", "dinner"},
	{"Dessert", "#F9A62B", "dessert"},
	{"Snack", "#2D9CDB", "snack"},
	{"Vegetarian", "#27AE60", "vegetarian"},
	{"Quick", "#EB5757", "quick"},
}

var presetIngredients = []struct {
	Name string
	Unit string
}{
	{"flour", "g"}, {"sugar", "g"}, {"salt", "g"}, {"butter", "g"},
	{"milk", "ml"}, {"water", "ml"}, {"olive oil", "ml"}, {"cream", "ml"},
	{"eggs", "pcs"}, {"onion", "pcs"}, {"garlic clove", "pcs"}, {"tomato", "pcs"},
	{"potato", "pcs"}, {"carrot", "pcs"}, {"chicken breast", "g"}, {"ground beef", "g"},
	{"rice", "g"}, {"pasta", "g"}, {"cheese", "g"}, {"black pepper", "g"},
	{"basil", "g"}, {"parsley", "g"}, {"lemon", "pcs"}, {"honey", "ml"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts SeedOptions) error {
	log.Printf("🌱 Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	tags, err := createTags(f)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("✓ %d tags available", len(tags))

	ingredients, err := createIngredients(f)
	if err != nil {
		return fmt.Errorf("failed to create ingredients: %w", err)
	}
	log.Printf("✓ %d ingredients available", len(ingredients))

	recipes, err := createRecipes(f, r, users, tags, ingredients, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("✓ %d recipes created", len(recipes))

	if err := createRelations(f, r, users, recipes); err != nil {
		return fmt.Errorf("failed to create relations: %w", err)
	}
	log.Println("✓ favorites, carts and subscriptions created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE favorites, shopping_carts, subscriptions, recipe_ingredients, recipe_tags, recipes, ingredients, tags, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createTags(f *Factory) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(presetTags))
	for _, pt := range presetTags {
		tag, err := f.CreateTag(pt.Name, pt.Color, pt.Slug)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func createIngredients(f *Factory) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(presetIngredients))
	for _, pi := range presetIngredients {
		ingredient, err := f.CreateIngredient(pi.Name, pi.Unit)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func createRecipes(f *Factory, r *rand.Rand, users []*models.User, tags []models.Tag, ingredients []models.Ingredient, count int) ([]*models.Recipe, error) {
	if len(users) == 0 {
		return nil, nil
	}
	recipes := make([]*models.Recipe, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		recipe, err := f.CreateRecipe(author, pickTags(r, tags), pickIngredients(r, ingredients))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// createRelations spreads favorites, cart items and subscriptions across
// the seeded users so list endpoints have realistic data to show.
func createRelations(f *Factory, r *rand.Rand, users []*models.User, recipes []*models.Recipe) error {
	if len(users) < 2 || len(recipes) == 0 {
		return nil
	}
	for _, user := range users {
		seen := make(map[uint]bool)
		for i := 0; i < r.Intn(4); i++ {
			recipe := recipes[r.Intn(len(recipes))]
			if recipe.AuthorID == user.ID || seen[recipe.ID] {
				continue
			}
			seen[recipe.ID] = true
			if err := f.CreateFavorite(user, recipe); err != nil {
				return err
			}
			// about half of the favorited recipes also land in the cart
			if r.Intn(2) == 0 {
				if err := f.CreateCartItem(user, recipe); err != nil {
					return err
				}
			}
		}

		if r.Intn(2) == 0 {
			author := users[r.Intn(len(users))]
			if author.ID != user.ID {
				if err := f.CreateSubscription(user, author); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func pickTags(r *rand.Rand, tags []models.Tag) []models.Tag {
	if len(tags) == 0 {
		return nil
	}
	n := 1 + r.Intn(2)
	start := r.Intn(len(tags))
	picked := make([]models.Tag, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, tags[(start+i)%len(tags)])
	}
	return picked
}

func pickIngredients(r *rand.Rand, ingredients []models.Ingredient) []models.Ingredient {
	if len(ingredients) == 0 {
		return nil
	}
	n := 2 + r.Intn(4)
	if n > len(ingredients) {
		n = len(ingredients)
	}
	start := r.Intn(len(ingredients))
	picked := make([]models.Ingredient, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, ingredients[(start+i)%len(ingredients)])
	}
	return picked
}
