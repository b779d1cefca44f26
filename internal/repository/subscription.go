package repository

import (
	"context"

	"ladle/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for author subscription operations.
type SubscriptionRepository interface {
	Add(ctx context.Context, userID, authorID uint) error
	// Remove deletes the pair and reports whether a row was actually removed.
	Remove(ctx context.Context, userID, authorID uint) (bool, error)
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	// ListAuthors returns the authors the user follows, newest subscription first.
	ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
	CountAuthors(ctx context.Context, userID uint) (int64, error)
	// SubscribedAuthorIDs filters authorIDs down to those the user follows.
	SubscribedAuthorIDs(ctx context.Context, userID uint, authorIDs []uint) ([]uint, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Add(ctx context.Context, userID, authorID uint) error {
	return r.db.WithContext(ctx).Create(&models.Subscription{
		UserID:   userID,
		AuthorID: authorID,
	}).Error
}

func (r *subscriptionRepository) Remove(ctx context.Context, userID, authorID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var authors []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC, users.username ASC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error
	return authors, err
}

func (r *subscriptionRepository) CountAuthors(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) SubscribedAuthorIDs(ctx context.Context, userID uint, authorIDs []uint) ([]uint, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	return ids, err
}
