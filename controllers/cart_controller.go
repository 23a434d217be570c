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

type CartController struct {
	service   services.CartService
	validator *RequestValidator
	timeout   time.Duration
}

func NewCartController(service services.CartService) *CartController {
	return &CartController{
		service:   service,
		validator: NewRequestValidator(),
		timeout:   DefaultContextTimeout,
	}
}

// ListCart handles GET /carts with an optional email filter.
func (cc *CartController) ListCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	lines, svcErr := cc.service.ListCart(ctx, c.Query("email"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// AddToCart handles POST /carts. A new line answers 201 with the insert ack,
// an incremented line 200 with the update ack.
func (cc *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	res, svcErr := cc.service.AddToCart(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if res.Inserted != nil {
		c.JSON(http.StatusCreated, res.Inserted)
		return
	}
	c.JSON(http.StatusOK, res.Incremented)
}

// UpdateCartQuantity handles PATCH /carts/:id.
func (cc *CartController) UpdateCartQuantity(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		respondError(c, services.ErrInvalidCartID)
		return
	}

	var req models.UpdateCartQuantityRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	ack, svcErr := cc.service.UpdateCartQuantity(ctx, id, req.Quantity)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, ack)
}

// RemoveFromCart handles DELETE /carts/:id.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		respondError(c, services.ErrInvalidCartID)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.timeout)
	defer cancel()

	ack, svcErr := cc.service.RemoveFromCart(ctx, id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, ack)
}
