package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/pos-backend/internal/platform/logger"
	"github.com/shopledger/pos-backend/internal/reporting/domain"
	"github.com/shopledger/pos-backend/internal/reporting/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(rs service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reportRoutes := router.Group("/reports")
	{
		reportRoutes.GET("/summary", h.GetSalesSummary)
		reportRoutes.GET("/top-products", h.GetTopProducts)
		reportRoutes.GET("/cashiers", h.GetCashierSales)
		reportRoutes.GET("/daily", h.GetDailySales)
	}
}

func (h *ReportHandler) GetSalesSummary(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, "Hdl.GetSalesSummary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	filter, ok := parseReportFilter(c)
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

	products, err := h.reportService.TopProducts(c.Request.Context(), filter, limit)
	if err != nil {
		h.renderError(c, "Hdl.GetTopProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ReportHandler) GetCashierSales(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	sales, err := h.reportService.CashierSales(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, "Hdl.GetCashierSales", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *ReportHandler) GetDailySales(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	days, err := h.reportService.DailySales(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, "Hdl.GetDailySales", err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *ReportHandler) renderError(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrShopIDRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required"})
		return
	}
	logger.Error(op+": service error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
}

func parseReportFilter(c *gin.Context) (domain.ReportFilter, bool) {
	filter := domain.ReportFilter{ShopID: c.Query("shop_id")}
	var ok bool
	filter.From, ok = parseTimeQuery(c, "from")
	if !ok {
		return filter, false
	}
	filter.To, ok = parseTimeQuery(c, "to")
	if !ok {
		return filter, false
	}
	return filter, true
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
