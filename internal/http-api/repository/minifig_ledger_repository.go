package repository

import (
	"context"
	"fmt"

	"brickhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MinifigLedgerRepository stores per-user per-set per-figure owned counts.
// Rows with a zero count are deleted, never written: absence means zero.
type MinifigLedgerRepository interface {
	WithTx(tx *gorm.DB) MinifigLedgerRepository

	ListBySet(ctx context.Context, userID, setNum string) ([]models.MinifigOwnership, error)
	CountBySet(ctx context.Context, userID, setNum string) (int64, error)
	// Accumulate adds delta to the owned count for the key, creating the row
	// at delta if absent. Single upsert statement, safe under concurrent
	// writers for the same key.
	Accumulate(ctx context.Context, userID, setNum, figNum string, delta int) error
	// SetQuantity overwrites the owned count. quantity must be positive;
	// callers delete instead of setting zero.
	SetQuantity(ctx context.Context, userID, setNum, figNum string, quantity int) error
	Delete(ctx context.Context, userID, setNum, figNum string) error
	DeleteBySet(ctx context.Context, userID, setNum string) error
}

type minifigLedgerRepository struct {
	db *gorm.DB
}

func NewMinifigLedgerRepository(db *gorm.DB) MinifigLedgerRepository {
	return &minifigLedgerRepository{db: db}
}

func (r *minifigLedgerRepository) WithTx(tx *gorm.DB) MinifigLedgerRepository {
	return &minifigLedgerRepository{db: tx}
}

func (r *minifigLedgerRepository) ListBySet(ctx context.Context, userID, setNum string) ([]models.MinifigOwnership, error) {
	var rows []models.MinifigOwnership
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		Order("fig_num").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list minifig ledger: %w", err)
	}
	return rows, nil
}

func (r *minifigLedgerRepository) CountBySet(ctx context.Context, userID, setNum string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MinifigOwnership{}).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *minifigLedgerRepository) Accumulate(ctx context.Context, userID, setNum, figNum string, delta int) error {
	row := &models.MinifigOwnership{
		UserID:        userID,
		SetNum:        setNum,
		FigNum:        figNum,
		QuantityOwned: delta,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "set_num"},
			{Name: "fig_num"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity_owned": gorm.Expr("minifig_ownership.quantity_owned + EXCLUDED.quantity_owned"),
		}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("accumulate minifig ownership: %w", err)
	}
	return nil
}

func (r *minifigLedgerRepository) SetQuantity(ctx context.Context, userID, setNum, figNum string, quantity int) error {
	row := &models.MinifigOwnership{
		UserID:        userID,
		SetNum:        setNum,
		FigNum:        figNum,
		QuantityOwned: quantity,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "set_num"},
			{Name: "fig_num"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity_owned": quantity,
		}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("set minifig ownership: %w", err)
	}
	return nil
}

func (r *minifigLedgerRepository) Delete(ctx context.Context, userID, setNum, figNum string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND set_num = ? AND fig_num = ?", userID, setNum, figNum).
		Delete(&models.MinifigOwnership{}).Error
	if err != nil {
		return fmt.Errorf("delete minifig ownership: %w", err)
	}
	return nil
}

func (r *minifigLedgerRepository) DeleteBySet(ctx context.Context, userID, setNum string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND set_num = ?", userID, setNum).
		Delete(&models.MinifigOwnership{}).Error
	if err != nil {
		return fmt.Errorf("delete set minifig ownership: %w", err)
	}
	return nil
}
