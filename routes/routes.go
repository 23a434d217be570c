package routes

import (
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler set the router exposes.
type Controllers struct {
	Health     *controllers.HealthController
	Products   *controllers.ProductController
	Uploads    *controllers.PresignedURLHandler
	Categories *controllers.CategoryController
	Carts      *controllers.CartController
	Reviews    *controllers.ReviewController
	Payments   *controllers.PaymentController
}

// Register mounts all storefront routes on r.
func Register(r *gin.Engine, c Controllers) {
	r.GET("/", c.Health.Root)
	r.GET("/health", c.Health.Health)

	RegisterProductRoutes(r, c.Products, c.Uploads)
	RegisterCategoryRoutes(r, c.Categories)
	RegisterCartRoutes(r, c.Carts)
	r.GET("/reviews", c.Reviews.ListReviews)
	RegisterPaymentRoutes(r, c.Payments)
}

func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController, uh *controllers.PresignedURLHandler) {
	r.GET("/allProducts", pc.ListProducts)
	r.GET("/productByProductId/:productId", pc.GetProductByProductID)

	products := r.Group("/products")
	products.GET("/upload-url", uh.GetUploadURL)
	products.GET("/categories/:categoryName", pc.ListByCategory)
	products.POST("/addProduct", pc.CreateProduct)
	products.GET("/:id", pc.GetProduct)
	products.PATCH("/:id", pc.UpdateProduct)
	products.DELETE("/:id", pc.DeleteProduct)
}

func RegisterCategoryRoutes(r *gin.Engine, cc *controllers.CategoryController) {
	categories := r.Group("/categories")
	categories.GET("", cc.ListCategories)
	categories.POST("/addCategory", cc.CreateCategory)
}

func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController) {
	carts := r.Group("/carts")
	carts.GET("", cc.ListCart)
	carts.POST("", cc.AddToCart)
	carts.PATCH("/:id", cc.UpdateCartQuantity)
	carts.DELETE("/:id", cc.RemoveFromCart)
}

func RegisterPaymentRoutes(r *gin.Engine, pc *controllers.PaymentController) {
	r.POST("/create-payment-intent", pc.CreatePaymentIntent)
	r.GET("/payments", pc.ListPayments)
	r.POST("/payments", pc.Checkout)
}
