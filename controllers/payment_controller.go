package controllers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	payments  services.PaymentService
	checkout  services.CheckoutService
	validator *RequestValidator
	timeout   time.Duration
}

func NewPaymentController(payments services.PaymentService, checkout services.CheckoutService) *PaymentController {
	return &PaymentController{
		payments:  payments,
		checkout:  checkout,
		validator: NewRequestValidator(),
		timeout:   DefaultContextTimeout,
	}
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := pc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	clientSecret, svcErr := pc.payments.CreatePaymentIntent(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// ListPayments handles GET /payments with an optional email filter.
func (pc *PaymentController) ListPayments(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	payments, svcErr := pc.payments.ListPayments(ctx, c.Query("email"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Checkout handles POST /payments. A recorded payment whose cart lines could
// not be cleared answers 207 Multi-Status.
func (pc *PaymentController) Checkout(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := pc.validator.BindJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	result, svcErr := pc.checkout.Checkout(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if result.Partial() {
		c.JSON(http.StatusMultiStatus, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
