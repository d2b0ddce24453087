package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager brackets multi-row mutations in a single database transaction.
// Services depend on this interface instead of *gorm.DB directly so that unit
// tests can run the callback without a live database.
type TxManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
