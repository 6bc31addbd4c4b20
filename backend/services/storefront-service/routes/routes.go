package routes

import (
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/controllers"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers groups every handler set mounted under /api.
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Admin    *controllers.AdminController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Contact  *controllers.ContactController
	Upload   *controllers.UploadController
	Report   *controllers.ReportController
	Export   *controllers.ExportController
}

// RegisterRoutes mounts the public, customer and admin API.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, tokens middleware.TokenValidator, users middleware.UserFinder) {
	api := r.Group("/api")
	requireAuth := middleware.RequireAuth(tokens, users)

	// Public
	api.GET("/health", controllers.Health)
	api.POST("/auth/register", ctrl.Auth.Register)
	api.POST("/auth/login", ctrl.Auth.Login)
	api.GET("/products", ctrl.Product.List)
	api.GET("/products/:id", ctrl.Product.Get)
	api.GET("/categories", ctrl.Category.ListActive)
	api.GET("/contact", ctrl.Contact.Get)

	RegisterCustomerRoutes(api.Group("", requireAuth), ctrl)
	RegisterAdminRoutes(api.Group("/admin", requireAuth, middleware.RequireAdmin()), ctrl)
}

// RegisterCustomerRoutes mounts routes that need a signed-in user.
func RegisterCustomerRoutes(rg *gin.RouterGroup, ctrl Controllers) {
	rg.GET("/users/me", ctrl.User.Me)
	rg.PUT("/users/me", ctrl.User.UpdateMe)

	cart := rg.Group("/cart/:userId", middleware.RequireOwner("userId"))
	cart.GET("", ctrl.Cart.Get)
	cart.POST("", ctrl.Cart.Save)
	cart.DELETE("", ctrl.Cart.Clear)

	rg.POST("/orders", ctrl.Order.Create)
	rg.GET("/orders/user/:userId", middleware.RequireOwner("userId"), ctrl.Order.ListForUser)
	// Ownership is checked in the handler once the order is loaded.
	rg.GET("/orders/:id", ctrl.Order.Get)
}

// RegisterAdminRoutes mounts the back-office API.
func RegisterAdminRoutes(rg *gin.RouterGroup, ctrl Controllers) {
	rg.GET("/stats", ctrl.Admin.Stats)
	rg.GET("/customers", ctrl.Admin.Customers)
	rg.PUT("/customers/:id/block", ctrl.Admin.SetBlocked)

	rg.GET("/products", ctrl.Product.AdminList)
	rg.POST("/products", ctrl.Product.Create)
	rg.PUT("/products/:id", ctrl.Product.Update)
	rg.DELETE("/products/:id", ctrl.Product.Delete)

	rg.GET("/categories", ctrl.Category.List)
	rg.POST("/categories", ctrl.Category.Create)
	rg.PUT("/categories/:id", ctrl.Category.Update)
	rg.DELETE("/categories/:id", ctrl.Category.Delete)

	rg.GET("/contact", ctrl.Contact.Get)
	rg.PUT("/contact", ctrl.Contact.Save)

	rg.GET("/orders", ctrl.Order.ListAll)
	rg.GET("/orders/export", ctrl.Export.Orders)
	rg.PUT("/orders/:id/status", ctrl.Order.UpdateStatus)
	rg.PUT("/orders/:id/delivery", ctrl.Order.UpdateDelivery)

	rg.GET("/reports/sales", ctrl.Report.Sales)
	rg.GET("/reports/top-products", ctrl.Report.TopProducts)
	rg.GET("/reports/top-categories", ctrl.Report.TopCategories)

	rg.POST("/uploads/image", ctrl.Upload.Image)
	rg.POST("/uploads/presign", ctrl.Upload.Presign)
}
