package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	invRepo "github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/shopledger/pos-backend/internal/order/domain"
	"github.com/shopledger/pos-backend/internal/order/repository"
	"github.com/shopledger/pos-backend/internal/order/service"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(os service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.POST("", h.CreateOrder)
		orderRoutes.GET("", h.ListOrders)
		orderRoutes.GET("/:id", h.GetOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		var shortfall *invRepo.StockShortfallError
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty_order"})
		case errors.As(err, &shortfall):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        "insufficient_stock",
				"product_id":   shortfall.ProductID,
				"product_name": shortfall.ProductName,
				"available":    shortfall.Available,
				"requested":    shortfall.Requested,
			})
		case errors.Is(err, invRepo.ErrInsufficientStock):
			// Shortfall detected at commit time, after the advisory guard
			// passed; the detail payload is not available here.
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient_stock"})
		case errors.Is(err, invRepo.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
		default:
			logger.Error("Hdl.CreateOrder: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	shopID := c.Query("shop_id")
	if shopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required"})
		return
	}

	filter := domain.ListOrdersFilter{
		ShopID:        shopID,
		CashierID:     c.Query("cashier_id"),
		PaymentMethod: c.Query("payment_method"),
	}
	var ok bool
	filter.From, ok = parseTimeQuery(c, "from")
	if !ok {
		return
	}
	filter.To, ok = parseTimeQuery(c, "to")
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Hdl.ListOrders: service error", err, map[string]interface{}{"shop_id": shopID})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		logger.Error("Hdl.GetOrder: service error", err, map[string]interface{}{"order_id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + ", expected RFC3339 or YYYY-MM-DD"})
			return nil, false
		}
	}
	return &t, true
}
