package controllers

import (
	"net/http"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/logger"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/middleware"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// Create handles POST /api/orders
func (oc *OrderController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		fail(c, apperrors.ErrUnauthorized)
		return
	}
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := oc.orderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		logger.Warn(c, "Order rejected", zap.String("user_id", userID), zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListForUser handles GET /api/orders/user/:userId
func (oc *OrderController) ListForUser(c *gin.Context) {
	orders, err := oc.orderService.ListUserOrders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id. Only the owner may read.
func (oc *OrderController) Get(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		fail(c, apperrors.ErrUnauthorized)
		return
	}
	order, err := oc.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if order.UserID != userID {
		fail(c, apperrors.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListAll handles GET /api/admin/orders
func (oc *OrderController) ListAll(c *gin.Context) {
	orders, err := oc.orderService.ListAllOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/admin/orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := oc.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateDelivery handles PUT /api/admin/orders/:id/delivery
func (oc *OrderController) UpdateDelivery(c *gin.Context) {
	var req models.UpdateDeliveryRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := oc.orderService.UpdateDelivery(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
