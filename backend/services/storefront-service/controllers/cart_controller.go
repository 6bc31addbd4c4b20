package controllers

import (
	"net/http"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
)

// CartController serves /api/cart/:userId. Ownership is enforced by the
// route middleware.
type CartController struct {
	cartService services.CartService
}

func NewCartController(svc services.CartService) *CartController {
	return &CartController{cartService: svc}
}

// Get handles GET /api/cart/:userId
func (cc *CartController) Get(c *gin.Context) {
	cart, err := cc.cartService.GetCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Save handles POST /api/cart/:userId and replaces the item list.
func (cc *CartController) Save(c *gin.Context) {
	var req models.SaveCartRequest
	if !bindJSON(c, &req) {
		return
	}
	cart, err := cc.cartService.SaveCart(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /api/cart/:userId
func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.cartService.ClearCart(c.Request.Context(), c.Param("userId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
