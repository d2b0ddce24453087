package service

import (
	"context"
	"errors"
	"log/slog"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type WishlistService interface {
	List(ctx context.Context, userID string) ([]models.WishlistEntry, error)
	// Add is idempotent: adding a set that is already wishlisted succeeds
	// without a second row. Adding a set the user owns is rejected, a pair
	// is never wishlisted and owned at once.
	Add(ctx context.Context, userID, setNum string) error
	Remove(ctx context.Context, userID, setNum string) error
	// MoveToCollection promotes a wishlisted set into the collection as one
	// complete sealed copy, deleting the wishlist row and reconciling the
	// minifigure ledger in the same transaction.
	MoveToCollection(ctx context.Context, userID, setNum string) (*models.CollectionEntry, error)
}

type wishlistService struct {
	tx          repository.TxManager
	wishlists   repository.WishlistRepository
	collections repository.CollectionRepository
	ledger      repository.MinifigLedgerRepository
	catalog     repository.CatalogRepository
	audit       *auditor
}

func NewWishlistService(
	tx repository.TxManager,
	wishlists repository.WishlistRepository,
	collections repository.CollectionRepository,
	ledger repository.MinifigLedgerRepository,
	catalog repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	logger *slog.Logger,
) WishlistService {
	return &wishlistService{
		tx:          tx,
		wishlists:   wishlists,
		collections: collections,
		ledger:      ledger,
		catalog:     catalog,
		audit:       newAuditor(auditRepo, logger),
	}
}

func (s *wishlistService) List(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	return s.wishlists.List(ctx, userID)
}

func (s *wishlistService) Add(ctx context.Context, userID, setNum string) error {
	if _, err := s.catalog.GetSet(ctx, setNum); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSetNotFound
		}
		return err
	}

	if _, err := s.collections.Get(ctx, userID, setNum); err == nil {
		return ErrAlreadyInCollection
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	exists, err := s.wishlists.Exists(ctx, userID, setNum)
	if err != nil {
		return err
	}
	if exists {
		// Idempotent, already wishlisted
		return nil
	}

	if err := s.wishlists.Add(ctx, userID, setNum); err != nil {
		return err
	}

	s.audit.record(ctx, userID, "wishlist.add", setNum, "")
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, userID, setNum string) error {
	removed, err := s.wishlists.Remove(ctx, userID, setNum)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInWishlist
	}

	s.audit.record(ctx, userID, "wishlist.remove", setNum, "")
	return nil
}

func (s *wishlistService) MoveToCollection(ctx context.Context, userID, setNum string) (*models.CollectionEntry, error) {
	var promoted *models.CollectionEntry
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		wishlists := s.wishlists.WithTx(tx)
		collections := s.collections.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		removed, err := wishlists.Remove(ctx, userID, setNum)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotInWishlist
		}

		oldQuantity := 0
		entry, err := collections.Get(ctx, userID, setNum)
		switch {
		case err == nil:
			// Shouldn't normally happen (owned sets aren't wishlisted),
			// but merge rather than fail if it does
			oldQuantity = entry.Quantity
			entry.Quantity++
			entry.CompleteCount++
			entry.SealedCount++
			if err := collections.Update(ctx, entry); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry = &models.CollectionEntry{
				UserID:        userID,
				SetNum:        setNum,
				Quantity:      1,
				CompleteCount: 1,
				SealedCount:   1,
			}
			if err := collections.Create(ctx, entry); err != nil {
				return err
			}
		default:
			return err
		}

		if err := reconcileQuantityChange(ctx, s.catalog, ledger, userID, setNum, oldQuantity, entry.Quantity); err != nil {
			return err
		}
		promoted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, userID, "wishlist.move_to_collection", setNum, "")
	return promoted, nil
}
