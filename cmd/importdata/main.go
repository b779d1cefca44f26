// Command main imports reference data (ingredients, tags) from fixture files.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"ladle/internal/config"
	"ladle/internal/database"
	"ladle/internal/importer"
)

func main() {
	ingredientsPath := flag.String("ingredients", "", "Path to an ingredients CSV file (name,unit per line)")
	tagsPath := flag.String("tags", "", "Path to a tags YAML file (name/color/slug entries)")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" {
		log.Fatal("Nothing to import: pass -ingredients and/or -tags")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	im := importer.New(db)
	ctx := context.Background()

	if *ingredientsPath != "" {
		f, err := os.Open(*ingredientsPath)
		if err != nil {
			log.Fatalf("Failed to open ingredients file: %v", err)
		}
		created, err := im.ImportIngredientsCSV(ctx, f)
		_ = f.Close()
		if err != nil {
			log.Fatalf("Ingredient import failed: %v", err)
		}
		log.Printf("✓ %d new ingredients imported from %s", created, *ingredientsPath)
	}

	if *tagsPath != "" {
		f, err := os.Open(*tagsPath)
		if err != nil {
			log.Fatalf("Failed to open tags file: %v", err)
		}
		created, err := im.ImportTagsYAML(ctx, f)
		_ = f.Close()
		if err != nil {
			log.Fatalf("Tag import failed: %v", err)
		}
		log.Printf("✓ %d new tags imported from %s", created, *tagsPath)
	}
}
