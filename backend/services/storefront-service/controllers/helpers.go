package controllers

import (
	"net/http"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst, recording a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperrors.Wrap(err, http.StatusBadRequest, "Invalid request body"))
		return false
	}
	return true
}

// fail hands err to the error middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
