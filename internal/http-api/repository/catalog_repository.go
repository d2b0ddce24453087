package repository

import (
	"context"
	"fmt"

	"brickhub/internal/http-api/models"

	"gorm.io/gorm"
)

// CatalogRepository exposes the read-only catalog reference data: sets and the
// minifigure composition derived from inventories -> inventory_minifigs.
type CatalogRepository interface {
	GetSet(ctx context.Context, setNum string) (*models.Set, error)
	// Composition returns the per-figure quantities of one copy of the set,
	// taken from the lowest-version inventory. An empty slice is valid: the
	// set simply contains no minifigures.
	Composition(ctx context.Context, setNum string) ([]models.SetFigure, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetSet(ctx context.Context, setNum string) (*models.Set, error) {
	var set models.Set
	if err := r.db.WithContext(ctx).First(&set, "set_num = ?", setNum).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *catalogRepository) Composition(ctx context.Context, setNum string) ([]models.SetFigure, error) {
	var figures []models.SetFigure

	err := r.db.WithContext(ctx).Raw(`
		SELECT im.fig_num, m.name, im.quantity
		FROM inventory_minifigs im
		JOIN minifigs m ON m.fig_num = im.fig_num
		WHERE im.inventory_id = (
			SELECT id FROM inventories
			WHERE set_num = ?
			ORDER BY version ASC
			LIMIT 1
		)
		ORDER BY im.fig_num`, setNum).Scan(&figures).Error
	if err != nil {
		return nil, fmt.Errorf("set composition: %w", err)
	}

	return figures, nil
}
