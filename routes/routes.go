package routes

import (
	"github.com/Atlas00000/productvisualizer/controllers"
	"github.com/Atlas00000/productvisualizer/storefront"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	System         *controllers.SystemController
	Products       *controllers.ProductController
	Customizations *controllers.CustomizationController
	Assets         *controllers.AssetController
	Storefront     *storefront.Handler
}

// RegisterRoutes sets up the API, the customizer pages and the 404 fallback.
// guard (rate limit, timeout) wraps everything except /health, which must
// keep answering while the service is degraded or busy.
func RegisterRoutes(r *gin.Engine, h Handlers, guard ...gin.HandlerFunc) {
	r.GET("/health", h.System.Health)

	guarded := r.Group("", guard...)
	guarded.GET("/", h.System.Root)

	api := guarded.Group("/api")

	productRoutes := api.Group("/products")
	productRoutes.GET("", h.Products.GetProducts)
	productRoutes.GET("/:id", h.Products.GetProduct)
	productRoutes.POST("", h.Products.CreateProduct)
	productRoutes.PUT("/:id", h.Products.UpdateProduct)
	productRoutes.DELETE("/:id", h.Products.DeleteProduct)
	productRoutes.POST("/:id/assets/presign", h.Assets.PresignUpload)

	customizationRoutes := api.Group("/customizations")
	customizationRoutes.POST("", h.Customizations.CreateCustomization)
	customizationRoutes.GET("", h.Customizations.ListCustomizations)
	customizationRoutes.GET("/:id", h.Customizations.GetCustomization)
	customizationRoutes.DELETE("/:id", h.Customizations.DeleteCustomization)

	h.Storefront.Register(guarded)

	r.NoRoute(controllers.NotFound)
}
