package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// MinifigStatus pairs the owned count of one figure with the total the
// catalog says the user's copies of the set should contain.
type MinifigStatus struct {
	FigNum   string
	Name     string
	Owned    int
	Required int
}

// MinifigQuantity is one item of a batch update.
type MinifigQuantity struct {
	FigNum   string
	Quantity int
}

// BatchResult reports a batch update: how many items were applied and the
// per-figure reasons for those that were not.
type BatchResult struct {
	Updated int
	Errors  map[string]string
}

type MinifigService interface {
	ListSetMinifigs(ctx context.Context, userID, setNum string) ([]MinifigStatus, error)
	// UpdateOwned overwrites the owned count of one figure (manual
	// correction, may exceed the required count). Negative input is clamped
	// to zero, and zero deletes the ledger row. Returns the stored owned
	// count and the catalog-required total.
	UpdateOwned(ctx context.Context, userID, setNum, figNum string, quantity int) (owned, required int, err error)
	// BatchUpdate applies several corrections at once. Items that fail
	// validation are collected into the result, the remaining items commit
	// together.
	BatchUpdate(ctx context.Context, userID, setNum string, items []MinifigQuantity) (*BatchResult, error)
}

type minifigService struct {
	tx          repository.TxManager
	collections repository.CollectionRepository
	ledger      repository.MinifigLedgerRepository
	catalog     repository.CatalogRepository
	audit       *auditor
}

func NewMinifigService(
	tx repository.TxManager,
	collections repository.CollectionRepository,
	ledger repository.MinifigLedgerRepository,
	catalog repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	logger *slog.Logger,
) MinifigService {
	return &minifigService{
		tx:          tx,
		collections: collections,
		ledger:      ledger,
		catalog:     catalog,
		audit:       newAuditor(auditRepo, logger),
	}
}

func (s *minifigService) ListSetMinifigs(ctx context.Context, userID, setNum string) ([]MinifigStatus, error) {
	entry, err := s.collections.Get(ctx, userID, setNum)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInCollection
		}
		return nil, err
	}

	figures, err := s.catalog.Composition(ctx, setNum)
	if err != nil {
		return nil, err
	}

	rows, err := s.ledger.ListBySet(ctx, userID, setNum)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]int, len(rows))
	for _, row := range rows {
		owned[row.FigNum] = row.QuantityOwned
	}

	statuses := make([]MinifigStatus, 0, len(figures))
	for _, fig := range figures {
		statuses = append(statuses, MinifigStatus{
			FigNum:   fig.FigNum,
			Name:     fig.Name,
			Owned:    owned[fig.FigNum],
			Required: fig.Quantity * entry.Quantity,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].FigNum < statuses[j].FigNum })
	return statuses, nil
}

func (s *minifigService) UpdateOwned(ctx context.Context, userID, setNum, figNum string, quantity int) (int, int, error) {
	if quantity < 0 {
		quantity = 0
	}

	required := 0
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		collections := s.collections.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		entry, err := collections.Get(ctx, userID, setNum)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInCollection
			}
			return err
		}

		figures, err := s.catalog.Composition(ctx, setNum)
		if err != nil {
			return err
		}
		perSet, ok := findFigure(figures, figNum)
		if !ok {
			return ErrFigNotInSet
		}
		required = perSet * entry.Quantity

		if quantity == 0 {
			return ledger.Delete(ctx, userID, setNum, figNum)
		}
		return ledger.SetQuantity(ctx, userID, setNum, figNum, quantity)
	})
	if err != nil {
		return 0, 0, err
	}

	s.audit.record(ctx, userID, "minifig.update", setNum, fmt.Sprintf("fig=%s owned=%d", figNum, quantity))
	return quantity, required, nil
}

func (s *minifigService) BatchUpdate(ctx context.Context, userID, setNum string, items []MinifigQuantity) (*BatchResult, error) {
	result := &BatchResult{Errors: make(map[string]string)}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		collections := s.collections.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		if _, err := collections.Get(ctx, userID, setNum); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInCollection
			}
			return err
		}

		figures, err := s.catalog.Composition(ctx, setNum)
		if err != nil {
			return err
		}

		for _, item := range items {
			if _, ok := findFigure(figures, item.FigNum); !ok {
				result.Errors[item.FigNum] = "minifigure not part of set"
				continue
			}

			quantity := item.Quantity
			if quantity < 0 {
				quantity = 0
			}
			if quantity == 0 {
				if err := ledger.Delete(ctx, userID, setNum, item.FigNum); err != nil {
					return err
				}
			} else {
				if err := ledger.SetQuantity(ctx, userID, setNum, item.FigNum, quantity); err != nil {
					return err
				}
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, userID, "minifig.batch_update", setNum,
		fmt.Sprintf("updated=%d errors=%d", result.Updated, len(result.Errors)))
	return result, nil
}

// findFigure returns the per-set quantity of figNum within a composition.
func findFigure(figures []models.SetFigure, figNum string) (int, bool) {
	for _, fig := range figures {
		if fig.FigNum == figNum {
			return fig.Quantity, true
		}
	}
	return 0, false
}
