package service

import (
	"context"
	"fmt"
	"log/slog"

	"brickhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// migrationPromptThreshold is the number of backfillable sets at which the
// client is told to offer the migration to the user.
const migrationPromptThreshold = 5

// MigrationReport is the partial-success outcome of a backfill run. Unlike
// the regular mutations, migration is per-set: one failing set is recorded
// here and the rest keep going.
type MigrationReport struct {
	Migrated []string          `json:"migrated"`
	Skipped  []string          `json:"skipped"`
	Errors   map[string]string `json:"errors"`
}

type MigrationService interface {
	// MigrateCollection backfills minifigure ledger rows for collection
	// entries created before per-figure tracking existed. Entries that
	// already have ledger rows, or whose sets have no inventory data, are
	// skipped: migration never overwrites existing ledger state.
	MigrateCollection(ctx context.Context, userID string) (*MigrationReport, error)
	// Status reports how many of the user's sets qualify for backfill and
	// whether that count reaches the prompt threshold.
	Status(ctx context.Context, userID string) (needed bool, count int, err error)
}

type migrationService struct {
	tx          repository.TxManager
	collections repository.CollectionRepository
	ledger      repository.MinifigLedgerRepository
	catalog     repository.CatalogRepository
	audit       *auditor
	logger      *slog.Logger
}

func NewMigrationService(
	tx repository.TxManager,
	collections repository.CollectionRepository,
	ledger repository.MinifigLedgerRepository,
	catalog repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	logger *slog.Logger,
) MigrationService {
	return &migrationService{
		tx:          tx,
		collections: collections,
		ledger:      ledger,
		catalog:     catalog,
		audit:       newAuditor(auditRepo, logger),
		logger:      logger,
	}
}

func (s *migrationService) MigrateCollection(ctx context.Context, userID string) (*MigrationReport, error) {
	entries, err := s.collections.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{
		Migrated: []string{},
		Skipped:  []string{},
		Errors:   make(map[string]string),
	}

	for _, entry := range entries {
		migrated, err := s.migrateSet(ctx, userID, entry.SetNum, entry.Quantity)
		if err != nil {
			s.logger.Warn("set migration failed", "user_id", userID, "set_num", entry.SetNum, "error", err)
			report.Errors[entry.SetNum] = "migration failed"
			continue
		}
		if migrated {
			report.Migrated = append(report.Migrated, entry.SetNum)
		} else {
			report.Skipped = append(report.Skipped, entry.SetNum)
		}
	}

	s.audit.record(ctx, userID, "collection.migrate", "",
		fmt.Sprintf("migrated=%d skipped=%d errors=%d", len(report.Migrated), len(report.Skipped), len(report.Errors)))
	return report, nil
}

// migrateSet backfills one set inside its own transaction and reports whether
// ledger rows were created.
func (s *migrationService) migrateSet(ctx context.Context, userID, setNum string, quantity int) (bool, error) {
	migrated := false
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)

		existing, err := ledger.CountBySet(ctx, userID, setNum)
		if err != nil {
			return err
		}
		if existing > 0 {
			// Never clobber ledger data the user already has
			return nil
		}

		figures, err := s.catalog.Composition(ctx, setNum)
		if err != nil {
			return err
		}
		if len(figures) == 0 {
			return nil
		}

		// Full-ownership assumption, same optimistic policy as adding sets
		for _, fig := range figures {
			if err := ledger.Accumulate(ctx, userID, setNum, fig.FigNum, fig.Quantity*quantity); err != nil {
				return err
			}
		}
		migrated = true
		return nil
	})
	return migrated, err
}

func (s *migrationService) Status(ctx context.Context, userID string) (bool, int, error) {
	entries, err := s.collections.List(ctx, userID)
	if err != nil {
		return false, 0, err
	}

	count := 0
	for _, entry := range entries {
		existing, err := s.ledger.CountBySet(ctx, userID, entry.SetNum)
		if err != nil {
			return false, 0, err
		}
		if existing > 0 {
			continue
		}
		figures, err := s.catalog.Composition(ctx, entry.SetNum)
		if err != nil {
			return false, 0, err
		}
		if len(figures) == 0 {
			continue
		}
		count++
	}

	return count >= migrationPromptThreshold, count, nil
}
