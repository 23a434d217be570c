package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"storefront-service/logger"
	aws_pkg "storefront-service/pkg/aws"

	"github.com/gin-gonic/gin"
)

const (
	defaultPresignExpiry = 900
	maxPresignExpiry     = 3600
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ImagePresigner issues presigned PUT URLs for product images.
type ImagePresigner interface {
	PresignProductImage(ctx context.Context, filename, contentType string, expires time.Duration) (*aws_pkg.PresignedUpload, error)
}

// PresignedURLHandler serves GET /products/upload-url. A nil presigner means
// uploads are not configured.
type PresignedURLHandler struct {
	presigner ImagePresigner
	timeout   time.Duration
}

func NewPresignedURLHandler(presigner ImagePresigner) *PresignedURLHandler {
	return &PresignedURLHandler{presigner: presigner, timeout: DefaultContextTimeout}
}

func (h *PresignedURLHandler) GetUploadURL(c *gin.Context) {
	if h.presigner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	filename := c.DefaultQuery("filename", "upload")
	contentType := c.DefaultQuery("contentType", "image/jpeg")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid content type. Allowed: %v", getAllowedImageTypes()),
		})
		return
	}

	expires, err := strconv.ParseInt(c.DefaultQuery("expires", strconv.Itoa(defaultPresignExpiry)), 10, 64)
	if err != nil || expires <= 0 {
		expires = defaultPresignExpiry
	}
	if expires > maxPresignExpiry {
		expires = maxPresignExpiry
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	upload, err := h.presigner.PresignProductImage(ctx, filename, contentType, time.Duration(expires)*time.Second)
	if err != nil {
		logger.Error(c, "Failed to generate presigned upload", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate presigned upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": upload.URL,
		"method":     http.MethodPut,
		"key":        upload.Key,
		"public_url": upload.PublicURL,
		"headers":    upload.Headers,
		"expires_in": expires,
	})
}

func getAllowedImageTypes() []string {
	types := make([]string, 0, len(allowedImageTypes))
	for t := range allowedImageTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
