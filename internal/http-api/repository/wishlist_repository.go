package repository

import (
	"context"
	"fmt"

	"brickhub/internal/http-api/models"

	"gorm.io/gorm"
)

type WishlistRepository interface {
	WithTx(tx *gorm.DB) WishlistRepository

	Exists(ctx context.Context, userID, setNum string) (bool, error)
	Add(ctx context.Context, userID, setNum string) error
	Remove(ctx context.Context, userID, setNum string) (bool, error)
	List(ctx context.Context, userID string) ([]models.WishlistEntry, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: tx}
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, setNum string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistEntry{}).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *wishlistRepository) Add(ctx context.Context, userID, setNum string) error {
	entry := &models.WishlistEntry{
		UserID: userID,
		SetNum: setNum,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		// A concurrent add of the same pair is still an idempotent success
		if IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

// Remove deletes the entry and reports whether a row existed.
func (r *wishlistRepository) Remove(ctx context.Context, userID, setNum string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		Delete(&models.WishlistEntry{})
	if result.Error != nil {
		return false, fmt.Errorf("remove from wishlist: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *wishlistRepository) List(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := r.db.WithContext(ctx).
		Preload("Set").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return entries, nil
}
