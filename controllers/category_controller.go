package controllers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	service   services.CategoryService
	validator *RequestValidator
	timeout   time.Duration
}

func NewCategoryController(service services.CategoryService) *CategoryController {
	return &CategoryController{
		service:   service,
		validator: NewRequestValidator(),
		timeout:   DefaultContextTimeout,
	}
}

// ListCategories handles GET /categories.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	categories, svcErr := cc.service.ListCategories(ctx)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /categories/addCategory.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	ack, svcErr := cc.service.CreateCategory(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, ack)
}
