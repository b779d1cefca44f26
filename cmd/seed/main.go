// Command main runs the database seeder for Ladle.
package main

import (
	"flag"
	"log"

	"ladle/internal/config"
	"ladle/internal/database"
	"ladle/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numRecipes := flag.Int("recipes", 100, "Number of recipes to create")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (dev only, much faster)")
	maxDays := flag.Int("max-days", 90, "Spread recipe dates over the past N days")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d recipes, clean=%v, dry-run=%v\n", *numUsers, *numRecipes, *shouldClean, *dryRun)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	opts := seed.SeedOptions{
		NumUsers:    *numUsers,
		NumRecipes:  *numRecipes,
		ShouldClean: *shouldClean,
		DryRun:      *dryRun,
		SkipBcrypt:  *skipBcrypt,
		MaxDays:     *maxDays,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
