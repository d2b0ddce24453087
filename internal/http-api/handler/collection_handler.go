package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"brickhub/internal/http-api/dto"
	"brickhub/internal/http-api/middleware"
	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	svc    service.CollectionService
	logger *slog.Logger
}

func NewCollectionHandler(svc service.CollectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{svc: svc, logger: logger}
}

func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", middleware.RequireScopes("read:collection"), h.List)
	rg.POST("/", middleware.RequireScopes("write:collection"), h.AddSets)
	rg.DELETE("/:set_num", middleware.RequireScopes("write:collection"), h.Remove)
	rg.PUT("/:set_num/quantity", middleware.RequireScopes("write:collection"), h.UpdateQuantity)
	rg.PUT("/:set_num/complete-count", middleware.RequireScopes("write:collection"), h.UpdateCompleteCount)
	rg.PUT("/:set_num/sealed-count", middleware.RequireScopes("write:collection"), h.UpdateSealedCount)
	rg.PUT("/:set_num/complete", middleware.RequireScopes("write:collection"), h.ToggleComplete)
	rg.PUT("/:set_num/sealed", middleware.RequireScopes("write:collection"), h.ToggleSealed)
}

// List the user's collection
func (h *CollectionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.svc.List(ctx, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	items := make([]dto.CollectionEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromCollectionEntry(entry))
	}

	c.JSON(http.StatusOK, dto.CollectionListResponse{
		Items: items,
		Total: len(items),
	})
}

// AddSets adds a batch of sets to the collection
func (h *CollectionHandler) AddSets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.SetQuantity, 0, len(req.Sets))
	for _, set := range req.Sets {
		items = append(items, service.SetQuantity{SetNum: set.SetNum, Quantity: set.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.svc.AddSets(ctx, userID, items); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "sets added to collection"})
}

// Remove deletes a set from the collection. Unknown sets are a no-op.
func (h *CollectionHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveSet(ctx, userID, c.Param("set_num")); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateQuantity changes the owned quantity of a set
func (h *CollectionHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.UpdateQuantity(ctx, userID, c.Param("set_num"), *req.Quantity)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"set_num":        entry.SetNum,
		"quantity":       entry.Quantity,
		"complete_count": entry.CompleteCount,
		"sealed_count":   entry.SealedCount,
	})
}

// UpdateCompleteCount sets how many copies are complete
func (h *CollectionHandler) UpdateCompleteCount(c *gin.Context) {
	h.updateCount(c, false)
}

// UpdateSealedCount sets how many copies are sealed
func (h *CollectionHandler) UpdateSealedCount(c *gin.Context) {
	h.updateCount(c, true)
}

func (h *CollectionHandler) updateCount(c *gin.Context, sealed bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	setNum := c.Param("set_num")
	var (
		clamped int
		err     error
	)
	if sealed {
		clamped, err = h.svc.UpdateSealedCount(ctx, userID, setNum, *req.Count)
	} else {
		clamped, err = h.svc.UpdateCompleteCount(ctx, userID, setNum, *req.Count)
	}
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	field := "complete_count"
	if sealed {
		field = "sealed_count"
	}
	c.JSON(http.StatusOK, gin.H{"set_num": setNum, field: clamped})
}

// ToggleComplete marks all or none of the copies complete
func (h *CollectionHandler) ToggleComplete(c *gin.Context) {
	h.toggle(c, false)
}

// ToggleSealed marks all or none of the copies sealed
func (h *CollectionHandler) ToggleSealed(c *gin.Context) {
	h.toggle(c, true)
}

func (h *CollectionHandler) toggle(c *gin.Context, sealed bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	setNum := c.Param("set_num")
	var (
		entry *models.CollectionEntry
		err   error
	)
	if sealed {
		entry, err = h.svc.ToggleSealed(ctx, userID, setNum, *req.Value)
	} else {
		entry, err = h.svc.ToggleComplete(ctx, userID, setNum, *req.Value)
	}
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"set_num":        entry.SetNum,
		"quantity":       entry.Quantity,
		"complete_count": entry.CompleteCount,
		"sealed_count":   entry.SealedCount,
	})
}
