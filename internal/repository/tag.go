package repository

import (
	"context"
	"errors"

	"ladle/internal/cache"
	"ladle/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag reference data operations.
// Tags are read-only through the API; writes happen only via import.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error)
	FirstOrCreate(ctx context.Context, tag *models.Tag) (bool, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := cache.Aside(ctx, cache.TagsKey, &tags, cache.ReferenceTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	})
	return tags, err
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&tags).Error
	return tags, err
}

// FirstOrCreate inserts the tag unless one with the same slug exists.
// Returns true when a new row was created.
func (r *tagRepository) FirstOrCreate(ctx context.Context, tag *models.Tag) (bool, error) {
	var existing models.Tag
	err := r.db.WithContext(ctx).Where("slug = ?", tag.Slug).First(&existing).Error
	if err == nil {
		*tag = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return false, err
	}
	cache.InvalidateReferenceData(ctx)
	return true, nil
}
