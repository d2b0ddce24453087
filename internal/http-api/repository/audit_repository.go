package repository

import (
	"context"
	"fmt"

	"brickhub/internal/http-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository appends audit rows. Callers treat failures as non-fatal.
type AuditRepository interface {
	Record(ctx context.Context, userID, action, setNum, detail string) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, userID, action, setNum, detail string) error {
	row := &models.AuditLog{
		ID:     uuid.New().String(),
		UserID: userID,
		Action: action,
		SetNum: setNum,
		Detail: detail,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("record audit log: %w", err)
	}
	return nil
}
