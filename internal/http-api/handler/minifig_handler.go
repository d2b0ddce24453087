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

type MinifigHandler struct {
	svc    service.MinifigService
	logger *slog.Logger
}

func NewMinifigHandler(svc service.MinifigService, logger *slog.Logger) *MinifigHandler {
	return &MinifigHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the minifigure endpoints under the collection group.
func (h *MinifigHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:set_num/minifigs", middleware.RequireScopes("read:collection"), h.List)
	rg.PUT("/:set_num/minifigs", middleware.RequireScopes("write:collection"), h.BatchUpdate)
	rg.PUT("/:set_num/minifigs/:fig_num", middleware.RequireScopes("write:collection"), h.Update)
}

// List returns owned vs required counts for every figure of an owned set
func (h *MinifigHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	setNum := c.Param("set_num")
	statuses, err := h.svc.ListSetMinifigs(ctx, userID, setNum)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	items := make([]dto.MinifigStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, dto.MinifigStatusResponse{
			FigNum:   status.FigNum,
			Name:     status.Name,
			Owned:    status.Owned,
			Required: status.Required,
		})
	}

	c.JSON(http.StatusOK, dto.MinifigListResponse{
		SetNum: setNum,
		Items:  items,
		Total:  len(items),
	})
}

// Update manually corrects the owned count of one figure
func (h *MinifigHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMinifigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	figNum := c.Param("fig_num")
	owned, required, err := h.svc.UpdateOwned(ctx, userID, c.Param("set_num"), figNum, *req.Quantity)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateMinifigResponse{
		FigNum:   figNum,
		Owned:    owned,
		Required: required,
	})
}

// BatchUpdate corrects several figures at once, collecting per-item errors
func (h *MinifigHandler) BatchUpdate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.BatchUpdateMinifigsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.MinifigQuantity, 0, len(req.Figures))
	for _, fig := range req.Figures {
		items = append(items, service.MinifigQuantity{FigNum: fig.FigNum, Quantity: *fig.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.svc.BatchUpdate(ctx, userID, c.Param("set_num"), items)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchUpdateResponse{
		Updated: result.Updated,
		Errors:  result.Errors,
	})
}
