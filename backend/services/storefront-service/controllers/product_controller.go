package controllers

import (
	"net/http"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	catalog services.CatalogService
}

func NewProductController(catalog services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List handles GET /api/products?category=
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get handles GET /api/products/:id
func (pc *ProductController) Get(c *gin.Context) {
	product, err := pc.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdminList handles GET /api/admin/products
func (pc *ProductController) AdminList(c *gin.Context) {
	products, err := pc.catalog.AdminListProducts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create handles POST /api/admin/products
func (pc *ProductController) Create(c *gin.Context) {
	var input models.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	product, err := pc.catalog.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/:id
func (pc *ProductController) Update(c *gin.Context) {
	var input models.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	product, err := pc.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/:id
func (pc *ProductController) Delete(c *gin.Context) {
	if err := pc.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
