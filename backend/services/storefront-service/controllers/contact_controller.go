package controllers

import (
	"net/http"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contactService services.ContactService
}

func NewContactController(svc services.ContactService) *ContactController {
	return &ContactController{contactService: svc}
}

// Get handles GET /api/contact and GET /api/admin/contact
func (cc *ContactController) Get(c *gin.Context) {
	contact, err := cc.contactService.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Save handles PUT /api/admin/contact
func (cc *ContactController) Save(c *gin.Context) {
	var req models.Contact
	if !bindJSON(c, &req) {
		return
	}
	contact, err := cc.contactService.Save(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}
