package controllers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	service services.ReviewService
	timeout time.Duration
}

func NewReviewController(service services.ReviewService) *ReviewController {
	return &ReviewController{service: service, timeout: DefaultContextTimeout}
}

// ListReviews handles GET /reviews.
func (rc *ReviewController) ListReviews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), rc.timeout)
	defer cancel()

	reviews, svcErr := rc.service.ListReviews(ctx)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
