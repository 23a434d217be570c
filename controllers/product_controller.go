package controllers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/models"
	"storefront-service/services"
	"storefront-service/utils"

	"github.com/gin-gonic/gin"
)

// DefaultContextTimeout bounds store calls made by a single handler.
const DefaultContextTimeout = 10 * time.Second

type ProductController struct {
	service   services.ProductService
	cache     *CacheManager
	validator *RequestValidator
	timeout   time.Duration
}

func NewProductController(service services.ProductService, cache *CacheManager) *ProductController {
	return &ProductController{
		service:   service,
		cache:     cache,
		validator: NewRequestValidator(),
		timeout:   DefaultContextTimeout,
	}
}

// ListProducts handles GET /allProducts.
func (pc *ProductController) ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	version, cached := pc.cache.Version(ctx)
	if cached {
		if products, ok := pc.cache.GetProductList(ctx, version); ok {
			c.JSON(http.StatusOK, products)
			return
		}
	}

	products, svcErr := pc.service.ListProducts(ctx)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if cached {
		pc.cache.SetProductListAsync(version, products)
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id. An unknown id yields null.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		respondError(c, services.ErrInvalidProductID)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	version, cached := pc.cache.Version(ctx)
	if cached {
		if product, ok := pc.cache.GetProduct(ctx, version, id); ok {
			c.JSON(http.StatusOK, product)
			return
		}
	}

	product, svcErr := pc.service.GetProduct(ctx, id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if cached {
		pc.cache.SetProductAsync(version, id, product)
	}
	c.JSON(http.StatusOK, product)
}

// GetProductByProductID handles GET /productByProductId/:productId.
func (pc *ProductController) GetProductByProductID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	product, svcErr := pc.service.GetProductByProductID(ctx, c.Param("productId"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListByCategory handles GET /products/categories/:categoryName.
func (pc *ProductController) ListByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	products, svcErr := pc.service.ListByCategory(ctx, c.Param("categoryName"))
	if svcErr != nil {
		if svcErr.StatusCode == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": svcErr.Message})
			return
		}
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /products/addProduct.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := pc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	ack, svcErr := pc.service.CreateProduct(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	pc.cache.InvalidateList(ctx)
	c.JSON(http.StatusCreated, ack)
}

// UpdateProduct handles PATCH /products/:id.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		respondError(c, services.ErrInvalidProductID)
		return
	}

	var req models.UpdateProductRequest
	if err := pc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	ack, svcErr := pc.service.UpdateProduct(ctx, id, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	pc.cache.InvalidateProduct(ctx, id)
	c.JSON(http.StatusOK, ack)
}

// DeleteProduct handles DELETE /products/:id.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		respondError(c, services.ErrInvalidProductID)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	ack, svcErr := pc.service.DeleteProduct(ctx, id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	pc.cache.InvalidateProduct(ctx, id)
	c.JSON(http.StatusOK, ack)
}
