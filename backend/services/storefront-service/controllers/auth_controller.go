package controllers

import (
	"net/http"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/logger"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(svc services.AuthService) *AuthController {
	return &AuthController{authService: svc}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Info(c, "Account registered", zap.String("user_id", resp.User.ID))
	c.JSON(http.StatusOK, resp)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		logger.Warn(c, "Login rejected", zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
