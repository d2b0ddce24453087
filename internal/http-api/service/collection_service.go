package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// SetQuantity is one item of an AddSets batch.
type SetQuantity struct {
	SetNum   string
	Quantity int
}

type CollectionService interface {
	List(ctx context.Context, userID string) ([]models.CollectionEntry, error)
	// AddSets merge-adds the given sets into the collection. New copies are
	// assumed complete and sealed. Wishlist rows for the same sets are
	// removed and the minifigure ledger is reconciled, all in one
	// transaction: the whole batch commits or nothing does.
	AddSets(ctx context.Context, userID string, items []SetQuantity) error
	// RemoveSet deletes the entry and its ledger rows. Removing a set that
	// is not in the collection is a no-op.
	RemoveSet(ctx context.Context, userID, setNum string) error
	UpdateQuantity(ctx context.Context, userID, setNum string, quantity int) (*models.CollectionEntry, error)
	UpdateCompleteCount(ctx context.Context, userID, setNum string, count int) (int, error)
	UpdateSealedCount(ctx context.Context, userID, setNum string, count int) (int, error)
	ToggleComplete(ctx context.Context, userID, setNum string, complete bool) (*models.CollectionEntry, error)
	ToggleSealed(ctx context.Context, userID, setNum string, sealed bool) (*models.CollectionEntry, error)
}

type collectionService struct {
	tx          repository.TxManager
	collections repository.CollectionRepository
	wishlists   repository.WishlistRepository
	ledger      repository.MinifigLedgerRepository
	catalog     repository.CatalogRepository
	audit       *auditor
}

func NewCollectionService(
	tx repository.TxManager,
	collections repository.CollectionRepository,
	wishlists repository.WishlistRepository,
	ledger repository.MinifigLedgerRepository,
	catalog repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	logger *slog.Logger,
) CollectionService {
	return &collectionService{
		tx:          tx,
		collections: collections,
		wishlists:   wishlists,
		ledger:      ledger,
		catalog:     catalog,
		audit:       newAuditor(auditRepo, logger),
	}
}

func (s *collectionService) List(ctx context.Context, userID string) ([]models.CollectionEntry, error) {
	return s.collections.List(ctx, userID)
}

func (s *collectionService) AddSets(ctx context.Context, userID string, items []SetQuantity) error {
	if len(items) == 0 {
		return ErrInvalidQuantity
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidQuantity, item.SetNum)
		}
	}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		collections := s.collections.WithTx(tx)
		wishlists := s.wishlists.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		for _, item := range items {
			if _, err := s.catalog.GetSet(ctx, item.SetNum); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrSetNotFound, item.SetNum)
				}
				return err
			}

			oldQuantity := 0
			entry, err := collections.Get(ctx, userID, item.SetNum)
			switch {
			case err == nil:
				// Merge-add, the new copies count as complete and sealed
				oldQuantity = entry.Quantity
				entry.Quantity += item.Quantity
				entry.CompleteCount += item.Quantity
				entry.SealedCount += item.Quantity
				if err := collections.Update(ctx, entry); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				entry = &models.CollectionEntry{
					UserID:        userID,
					SetNum:        item.SetNum,
					Quantity:      item.Quantity,
					CompleteCount: item.Quantity,
					SealedCount:   item.Quantity,
				}
				if err := collections.Create(ctx, entry); err != nil {
					return err
				}
			default:
				return err
			}

			// A set cannot be wishlisted and owned at the same time
			if _, err := wishlists.Remove(ctx, userID, item.SetNum); err != nil {
				return err
			}

			if err := reconcileQuantityChange(ctx, s.catalog, ledger, userID, item.SetNum, oldQuantity, entry.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.record(ctx, userID, "collection.add", "", fmt.Sprintf("added %d set(s)", len(items)))
	return nil
}

func (s *collectionService) RemoveSet(ctx context.Context, userID, setNum string) error {
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		collections := s.collections.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		removed, err := collections.Delete(ctx, userID, setNum)
		if err != nil {
			return err
		}
		if !removed {
			// Tolerated, nothing owned means nothing to do
			return nil
		}
		return ledger.DeleteBySet(ctx, userID, setNum)
	})
	if err != nil {
		return err
	}

	s.audit.record(ctx, userID, "collection.remove", setNum, "")
	return nil
}

func (s *collectionService) UpdateQuantity(ctx context.Context, userID, setNum string, quantity int) (*models.CollectionEntry, error) {
	if quantity < 0 {
		quantity = 0
	}

	var updated *models.CollectionEntry
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

		if quantity == 0 {
			if _, err := collections.Delete(ctx, userID, setNum); err != nil {
				return err
			}
			if err := ledger.DeleteBySet(ctx, userID, setNum); err != nil {
				return err
			}
			entry.Quantity = 0
			entry.CompleteCount = 0
			entry.SealedCount = 0
			updated = entry
			return nil
		}

		oldQuantity := entry.Quantity
		entry.Quantity = quantity
		entry.CompleteCount = clamp(entry.CompleteCount, quantity)
		entry.SealedCount = clamp(entry.SealedCount, quantity)
		if err := collections.Update(ctx, entry); err != nil {
			return err
		}
		if err := reconcileQuantityChange(ctx, s.catalog, ledger, userID, setNum, oldQuantity, quantity); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, userID, "collection.update_quantity", setNum, fmt.Sprintf("quantity=%d", quantity))
	return updated, nil
}

func (s *collectionService) UpdateCompleteCount(ctx context.Context, userID, setNum string, count int) (int, error) {
	return s.updateCount(ctx, userID, setNum, count, false)
}

func (s *collectionService) UpdateSealedCount(ctx context.Context, userID, setNum string, count int) (int, error) {
	return s.updateCount(ctx, userID, setNum, count, true)
}

func (s *collectionService) updateCount(ctx context.Context, userID, setNum string, count int, sealed bool) (int, error) {
	clamped := 0
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		collections := s.collections.WithTx(tx)

		entry, err := collections.Get(ctx, userID, setNum)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInCollection
			}
			return err
		}

		clamped = clamp(count, entry.Quantity)
		if sealed {
			entry.SealedCount = clamped
		} else {
			entry.CompleteCount = clamped
		}
		return collections.Update(ctx, entry)
	})
	if err != nil {
		return 0, err
	}

	field := "complete_count"
	if sealed {
		field = "sealed_count"
	}
	s.audit.record(ctx, userID, "collection.update_"+field, setNum, fmt.Sprintf("%s=%d", field, clamped))
	return clamped, nil
}

func (s *collectionService) ToggleComplete(ctx context.Context, userID, setNum string, complete bool) (*models.CollectionEntry, error) {
	return s.toggle(ctx, userID, setNum, complete, false)
}

func (s *collectionService) ToggleSealed(ctx context.Context, userID, setNum string, sealed bool) (*models.CollectionEntry, error) {
	return s.toggle(ctx, userID, setNum, sealed, true)
}

// toggle sets the complete or sealed count to either the full quantity or
// zero. Partial values go through the count endpoints instead.
func (s *collectionService) toggle(ctx context.Context, userID, setNum string, on, sealed bool) (*models.CollectionEntry, error) {
	var updated *models.CollectionEntry
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		collections := s.collections.WithTx(tx)

		entry, err := collections.Get(ctx, userID, setNum)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInCollection
			}
			return err
		}

		value := 0
		if on {
			value = entry.Quantity
		}
		if sealed {
			entry.SealedCount = value
		} else {
			entry.CompleteCount = value
		}
		if err := collections.Update(ctx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "collection.toggle_complete"
	if sealed {
		action = "collection.toggle_sealed"
	}
	s.audit.record(ctx, userID, action, setNum, fmt.Sprintf("on=%t", on))
	return updated, nil
}
