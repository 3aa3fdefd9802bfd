package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/pos-backend/internal/inventory/domain"
	"github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/shopledger/pos-backend/internal/inventory/service"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(is service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	invRoutes := router.Group("/products/:id/inventory")
	{
		invRoutes.POST("", h.AdjustStock)
		invRoutes.GET("", h.GetHistory)
	}
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	productID := c.Param("id")
	var req domain.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.inventoryService.AdjustStock(c.Request.Context(), productID, req)
	if err != nil {
		var shortfall *repository.StockShortfallError
		switch {
		case errors.Is(err, service.ErrInvalidDelta):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_delta"})
		case errors.Is(err, service.ErrInvalidReason):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_reason", "message": err.Error()})
		case errors.As(err, &shortfall):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        "insufficient_stock",
				"product_id":   shortfall.ProductID,
				"product_name": shortfall.ProductName,
				"available":    shortfall.Available,
				"requested":    shortfall.Requested,
			})
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
		default:
			logger.Error("Hdl.AdjustStock: service error", err, map[string]interface{}{"product_id": productID})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) GetHistory(c *gin.Context) {
	productID := c.Param("id")

	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	points, err := h.inventoryService.History(c.Request.Context(), productID, from, to, limit)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		logger.Error("Hdl.GetHistory: service error", err, map[string]interface{}{"product_id": productID})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, points)
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Also accept plain dates.
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + ", expected RFC3339 or YYYY-MM-DD"})
			return nil, false
		}
	}
	return &t, true
}
