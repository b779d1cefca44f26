// Package importer loads reference data (ingredients, tags) from fixture
// files into the database. It backs the importdata command used when
// bootstrapping a fresh environment.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"ladle/internal/models"
	"ladle/internal/repository"
	"ladle/internal/validation"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Importer loads reference fixtures through the repository layer so cache
// invalidation happens the same way it does for API writes.
type Importer struct {
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
}

// New creates an Importer bound to the given database.
func New(db *gorm.DB) *Importer {
	return &Importer{
		ingredientRepo: repository.NewIngredientRepository(db),
		tagRepo:        repository.NewTagRepository(db),
	}
}

// ImportIngredientsCSV reads "name,unit" rows and inserts each pair unless it
// already exists. Returns the number of newly created ingredients.
func (im *Importer) ImportIngredientsCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	created := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, fmt.Errorf("read csv: %w", err)
		}
		line++

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			return created, fmt.Errorf("line %d: name and unit must not be empty", line)
		}

		ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
		isNew, err := im.ingredientRepo.FirstOrCreate(ctx, ingredient)
		if err != nil {
			return created, fmt.Errorf("line %d: %w", line, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}

type tagFixture struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Slug  string `yaml:"slug"`
}

// ImportTagsYAML reads a YAML list of tags and inserts each one unless a tag
// with the same slug already exists. Returns the number of newly created tags.
func (im *Importer) ImportTagsYAML(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read yaml: %w", err)
	}

	var fixtures []tagFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}

	created := 0
	for i, fx := range fixtures {
		name := strings.TrimSpace(fx.Name)
		if name == "" {
			return created, fmt.Errorf("tag %d: name must not be empty", i+1)
		}
		if err := validation.ValidateHexColor(fx.Color); err != nil {
			return created, fmt.Errorf("tag %q: %w", name, err)
		}
		if err := validation.ValidateSlug(fx.Slug); err != nil {
			return created, fmt.Errorf("tag %q: %w", name, err)
		}

		tag := &models.Tag{Name: name, Color: fx.Color, Slug: fx.Slug}
		isNew, err := im.tagRepo.FirstOrCreate(ctx, tag)
		if err != nil {
			return created, fmt.Errorf("tag %q: %w", name, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}
