package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"brickhub/internal/http-api/dto"
	"brickhub/internal/http-api/middleware"
	"brickhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MigrationHandler struct {
	svc    service.MigrationService
	logger *slog.Logger
}

func NewMigrationHandler(svc service.MigrationService, logger *slog.Logger) *MigrationHandler {
	return &MigrationHandler{svc: svc, logger: logger}
}

func (h *MigrationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", middleware.RequireScopes("read:collection"), h.Status)
	rg.POST("/run", middleware.RequireScopes("write:collection"), h.Run)
}

// Status reports whether the user should be prompted to run the backfill
func (h *MigrationHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	needed, count, err := h.svc.Status(ctx, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MigrationStatusResponse{
		MigrationNeeded:      needed,
		SetsNeedingMigration: count,
	})
}

// Run executes the ledger backfill and always returns the partial report
func (h *MigrationHandler) Run(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	report, err := h.svc.MigrateCollection(ctx, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MigrationReportResponse{
		Migrated: report.Migrated,
		Skipped:  report.Skipped,
		Errors:   report.Errors,
	})
}
