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

type WishlistHandler struct {
	svc    service.WishlistService
	logger *slog.Logger
}

func NewWishlistHandler(svc service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{svc: svc, logger: logger}
}

func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", middleware.RequireScopes("read:wishlist"), h.List)
	rg.POST("/", middleware.RequireScopes("write:wishlist"), h.Add)
	rg.DELETE("/:set_num", middleware.RequireScopes("write:wishlist"), h.Remove)
	rg.POST("/:set_num/move-to-collection",
		middleware.RequireScopes("write:wishlist", "write:collection"), h.MoveToCollection)
}

// List the user's wishlist
func (h *WishlistHandler) List(c *gin.Context) {
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

	items := make([]dto.WishlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.WishlistEntryResponse{
			SetNum:  entry.SetNum,
			Set:     entry.Set,
			AddedAt: entry.AddedAt,
		})
	}

	c.JSON(http.StatusOK, dto.WishlistListResponse{
		Items: items,
		Total: len(items),
	})
}

// Add a set to the wishlist. Adding twice is an idempotent success.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Add(ctx, userID, req.SetNum); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "set added to wishlist"})
}

// Remove a set from the wishlist
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID, c.Param("set_num")); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveToCollection promotes a wishlisted set into the collection
func (h *WishlistHandler) MoveToCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.MoveToCollection(ctx, userID, c.Param("set_num"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "set moved to collection",
		"set_num":        entry.SetNum,
		"quantity":       entry.Quantity,
		"complete_count": entry.CompleteCount,
		"sealed_count":   entry.SealedCount,
	})
}
