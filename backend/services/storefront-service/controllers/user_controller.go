package controllers

import (
	"net/http"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/middleware"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService services.UserService
}

func NewUserController(svc services.UserService) *UserController {
	return &UserController{userService: svc}
}

// Me handles GET /api/users/me
func (uc *UserController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		fail(c, apperrors.ErrUnauthorized)
		return
	}
	user, err := uc.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe handles PUT /api/users/me
func (uc *UserController) UpdateMe(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		fail(c, apperrors.ErrUnauthorized)
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := uc.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
