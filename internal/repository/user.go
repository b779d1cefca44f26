package repository

import (
	"context"
	"errors"

	"ladle/internal/cache"
	"ladle/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// applySubscribedFlag adds a subquery computing whether the viewer follows each user.
func (r *userRepository) applySubscribedFlag(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select(
			"users.*, EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.author_id = users.id AND subscriptions.user_id = ?) AS is_subscribed",
			viewerID,
		)
	}
	return db.Select("users.*, ? AS is_subscribed", false)
}

func (r *userRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.User, error) {
	var user models.User

	fetch := func() error {
		return r.applySubscribedFlag(r.db.WithContext(ctx).Model(&models.User{}), viewerID).
			First(&user, id).Error
	}

	var err error
	if viewerID == 0 {
		// The anonymous profile carries no viewer flags, so it is safe to cache.
		err = cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.applySubscribedFlag(r.db.WithContext(ctx).Model(&models.User{}), viewerID).
		Order("users.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
