package services

import (
	"fmt"
	"net/http"
)

// ServiceError is a failure carrying the HTTP status it maps to. Err holds the
// underlying cause for internal errors and is never shown to callers.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidProductID  = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid product ID"}
	ErrInvalidCartID     = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid cart ID"}
	ErrInvalidQuantity   = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be a positive integer"}
	ErrStockExceeded     = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Stock quantity exceeded"}
	ErrCategoryExists    = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Category already exists"}
	ErrInvalidPaymentIDs = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid cart line ID in productIds"}
	ErrInvalidPrice      = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Price must be greater than zero"}
	ErrEmptyUpdate       = &ServiceError{StatusCode: http.StatusBadRequest, Message: "No fields to update"}
)

// internalError wraps a store or gateway failure as a generic 500.
func internalError(err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}
