package service

import (
	"context"
	"log/slog"

	"brickhub/internal/http-api/repository"
)

// auditor is the fire-and-forget audit sink used by the mutation services.
// A failed write is logged and swallowed: auditing never changes the outcome
// of the operation it describes.
type auditor struct {
	repo   repository.AuditRepository
	logger *slog.Logger
}

func newAuditor(repo repository.AuditRepository, logger *slog.Logger) *auditor {
	return &auditor{repo: repo, logger: logger}
}

func (a *auditor) record(ctx context.Context, userID, action, setNum, detail string) {
	if a == nil || a.repo == nil {
		return
	}
	// Detached from request cancellation so a client disconnect after commit
	// does not lose the audit row
	if err := a.repo.Record(context.WithoutCancel(ctx), userID, action, setNum, detail); err != nil {
		a.logger.Warn("audit write failed", "action", action, "user_id", userID, "error", err)
	}
}
