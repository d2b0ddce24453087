package repository

import (
	"context"
	"fmt"

	"brickhub/internal/http-api/models"

	"gorm.io/gorm"
)

type CollectionRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) CollectionRepository

	Get(ctx context.Context, userID, setNum string) (*models.CollectionEntry, error)
	List(ctx context.Context, userID string) ([]models.CollectionEntry, error)
	Create(ctx context.Context, entry *models.CollectionEntry) error
	Update(ctx context.Context, entry *models.CollectionEntry) error
	Delete(ctx context.Context, userID, setNum string) (bool, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) WithTx(tx *gorm.DB) CollectionRepository {
	return &collectionRepository{db: tx}
}

func (r *collectionRepository) Get(ctx context.Context, userID, setNum string) (*models.CollectionEntry, error) {
	var entry models.CollectionEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *collectionRepository) List(ctx context.Context, userID string) ([]models.CollectionEntry, error) {
	var entries []models.CollectionEntry
	if err := r.db.WithContext(ctx).
		Preload("Set").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}
	return entries, nil
}

func (r *collectionRepository) Create(ctx context.Context, entry *models.CollectionEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create collection entry: %w", err)
	}
	return nil
}

func (r *collectionRepository) Update(ctx context.Context, entry *models.CollectionEntry) error {
	err := r.db.WithContext(ctx).
		Model(&models.CollectionEntry{}).
		Where("user_id = ? AND set_num = ?", entry.UserID, entry.SetNum).
		Updates(map[string]any{
			"quantity":       entry.Quantity,
			"complete_count": entry.CompleteCount,
			"sealed_count":   entry.SealedCount,
		}).Error
	if err != nil {
		return fmt.Errorf("update collection entry: %w", err)
	}
	return nil
}

// Delete removes the entry and reports whether a row existed.
func (r *collectionRepository) Delete(ctx context.Context, userID, setNum string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		Delete(&models.CollectionEntry{})
	if result.Error != nil {
		return false, fmt.Errorf("delete collection entry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
