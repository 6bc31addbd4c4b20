package controllers

import (
	"net/http"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	catalog services.CatalogService
}

func NewCategoryController(catalog services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

// ListActive handles GET /api/categories
func (cc *CategoryController) ListActive(c *gin.Context) {
	categories, err := cc.catalog.ListActiveCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// List handles GET /api/admin/categories
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.catalog.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/admin/categories
func (cc *CategoryController) Create(c *gin.Context) {
	var input models.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	category, err := cc.catalog.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/admin/categories/:id
func (cc *CategoryController) Update(c *gin.Context) {
	var input models.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	category, err := cc.catalog.UpdateCategory(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/admin/categories/:id
func (cc *CategoryController) Delete(c *gin.Context) {
	if err := cc.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
