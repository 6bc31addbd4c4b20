package controllers

import (
	"net/http"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/logger"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	adminService services.AdminService
	userService  services.UserService
}

func NewAdminController(admin services.AdminService, users services.UserService) *AdminController {
	return &AdminController{adminService: admin, userService: users}
}

// Stats handles GET /api/admin/stats
func (ac *AdminController) Stats(c *gin.Context) {
	stats, err := ac.adminService.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Customers handles GET /api/admin/customers
func (ac *AdminController) Customers(c *gin.Context) {
	users, err := ac.userService.ListCustomers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetBlocked handles PUT /api/admin/customers/:id/block
func (ac *AdminController) SetBlocked(c *gin.Context) {
	var req models.BlockUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.userService.SetBlocked(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Info(c, "Customer block state changed by admin",
		zap.String("user_id", c.Param("id")),
		zap.Bool("blocked", user.IsBlocked),
	)
	c.JSON(http.StatusOK, user)
}
