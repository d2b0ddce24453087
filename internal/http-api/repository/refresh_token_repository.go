package repository

import (
	"context"

	"brickhub/internal/http-api/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository handles database operations for refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, refreshToken *models.RefreshToken) error
	FindByToken(ctx context.Context, tokenString string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string) error
	Delete(ctx context.Context, tokenID string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, refreshToken *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(refreshToken).Error
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, tokenString string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", tokenString).First(&refreshToken).Error; err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

// Revoke marks a refresh token as revoked
func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ?", tokenID).
		Update("revoked", true).Error
}

// Delete removes a refresh token, used by expiry cleanup
func (r *refreshTokenRepository) Delete(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).Where("id = ?", tokenID).Delete(&models.RefreshToken{}).Error
}
