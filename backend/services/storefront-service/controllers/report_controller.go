package controllers

import (
	"net/http"
	"strconv"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService services.ReportService
}

func NewReportController(svc services.ReportService) *ReportController {
	return &ReportController{reportService: svc}
}

// Sales handles GET /api/admin/reports/sales?period=daily|weekly|monthly
func (rc *ReportController) Sales(c *gin.Context) {
	period := models.SalesPeriod(c.DefaultQuery("period", string(models.PeriodDaily)))
	report, err := rc.reportService.Sales(c.Request.Context(), period)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// TopProducts handles GET /api/admin/reports/top-products
func (rc *ReportController) TopProducts(c *gin.Context) {
	rows, err := rc.reportService.TopProducts(c.Request.Context(), parseLimit(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TopCategories handles GET /api/admin/reports/top-categories
func (rc *ReportController) TopCategories(c *gin.Context) {
	rows, err := rc.reportService.TopCategories(c.Request.Context(), parseLimit(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// parseLimit reads ?limit=, capped at 50.
func parseLimit(c *gin.Context) int {
	const maxLimit = 50
	limit := services.DefaultTopN
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
