package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is written once per checkout and never updated. ProductIDs holds
// cart-line ids, not catalog ids.
type Payment struct {
	ID            primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	Email         string                 `json:"email,omitempty" bson:"email,omitempty"`
	TransactionID string                 `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	ProductIDs    []string               `json:"productIds" bson:"productIds"`
	Amount        float64                `json:"amount" bson:"amount"`
	Currency      string                 `json:"currency,omitempty" bson:"currency,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"createdAt" bson:"createdAt"`
}

// CreatePaymentRequest is the payload for POST /payments.
type CreatePaymentRequest struct {
	Email         string                 `json:"email" validate:"omitempty,email"`
	TransactionID string                 `json:"transactionId"`
	ProductIDs    []string               `json:"productIds"`
	Amount        float64                `json:"amount" validate:"gte=0"`
	Currency      string                 `json:"currency"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// ToPayment builds the payment document. A missing productIds list is stored
// as an empty array.
func (r CreatePaymentRequest) ToPayment() Payment {
	ids := r.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	return Payment{
		Email:         r.Email,
		TransactionID: r.TransactionID,
		ProductIDs:    ids,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Metadata:      r.Metadata,
	}
}

// PaymentIntentRequest is the payload for POST /create-payment-intent.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// CheckoutCompletedEvent is published after a payment has been recorded.
type CheckoutCompletedEvent struct {
	EventType       string    `json:"event_type"`
	PaymentID       string    `json:"payment_id"`
	Email           string    `json:"email,omitempty"`
	TransactionID   string    `json:"transaction_id,omitempty"`
	CartLineIDs     []string  `json:"cart_line_ids"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency,omitempty"`
	CartClearStatus string    `json:"cart_clear_status"`
	Timestamp       time.Time `json:"timestamp"`
}
