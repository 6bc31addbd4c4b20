package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/logger"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	orderService services.OrderService
	loc          *time.Location
}

func NewExportController(orders services.OrderService, loc *time.Location) *ExportController {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportController{orderService: orders, loc: loc}
}

// Orders handles GET /api/admin/orders/export
func (ec *ExportController) Orders(c *gin.Context) {
	orders, err := ec.orderService.ListAllOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteOrdersWorkbook(&buf, orders, ec.loc); err != nil {
		fail(c, apperrors.Wrap(err, http.StatusInternalServerError, "Failed to write Excel file"))
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().In(ec.loc).Format("20060102"))
	logger.Info(c, "Orders exported", zap.Int("orders", len(orders)))

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
