package controllers

import (
	"net/http"
	"strings"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/logger"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errNoUpload = apperrors.BadRequest("No file or imageUrl provided")

type UploadController struct {
	mediaService services.MediaService
}

func NewUploadController(svc services.MediaService) *UploadController {
	return &UploadController{mediaService: svc}
}

// Image handles POST /api/admin/uploads/image. It accepts a multipart "file"
// or an imageUrl given as a form field or JSON body.
func (uc *UploadController) Image(c *gin.Context) {
	var (
		result *models.UploadResult
		err    error
	)

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req models.ImageURLRequest
		if !bindJSON(c, &req) {
			return
		}
		result, err = uc.mediaService.UploadFromURL(c.Request.Context(), &req)
	} else if imageURL := c.PostForm("imageUrl"); imageURL != "" {
		result, err = uc.mediaService.UploadFromURL(c.Request.Context(), &models.ImageURLRequest{ImageURL: imageURL})
	} else {
		fileHeader, ferr := c.FormFile("file")
		if ferr != nil {
			fail(c, errNoUpload)
			return
		}
		file, ferr := fileHeader.Open()
		if ferr != nil {
			fail(c, apperrors.Wrap(ferr, http.StatusBadRequest, "Failed to read upload"))
			return
		}
		defer file.Close()
		result, err = uc.mediaService.UploadImage(c.Request.Context(), file)
	}

	if err != nil {
		logger.Error(c, "Image upload failed", err)
		fail(c, err)
		return
	}
	logger.Info(c, "Image uploaded", zap.String("public_id", result.PublicID))
	c.JSON(http.StatusOK, result)
}

// Presign handles POST /api/admin/uploads/presign
func (uc *UploadController) Presign(c *gin.Context) {
	var req models.PresignRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := uc.mediaService.PresignImage(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
