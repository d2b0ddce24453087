package dto

// MigrationStatusResponse: whether the client should prompt the user to run
// the minifigure-ledger backfill
type MigrationStatusResponse struct {
	MigrationNeeded      bool `json:"migration_needed"`
	SetsNeedingMigration int  `json:"sets_needing_migration"`
}

// MigrationReportResponse: partial-success report of a backfill run
type MigrationReportResponse struct {
	Migrated []string          `json:"migrated"`
	Skipped  []string          `json:"skipped"`
	Errors   map[string]string `json:"errors"`
}
