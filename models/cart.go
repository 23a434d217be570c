package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockBound is the denormalized stock limit a client sends with a cart line.
// It decodes leniently: anything that is not a number or a numeric string
// becomes zero, which blocks every increment.
type StockBound int

// UnmarshalJSON never fails; unusable input yields zero.
func (s *StockBound) UnmarshalJSON(data []byte) error {
	*s = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	*s = StockBound(int(f))
	return nil
}

// CartLine is one product entry in the carts collection.
type CartLine struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID     string             `json:"productId" bson:"productId"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Title         string             `json:"title,omitempty" bson:"title,omitempty"`
	Price         float64            `json:"price,omitempty" bson:"price,omitempty"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	Quantity      int                `json:"quantity" bson:"quantity"`
	StockQuantity StockBound         `json:"stockQuantity" bson:"stockQuantity"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// AddToCartRequest is the payload for POST /carts.
type AddToCartRequest struct {
	ProductID     string     `json:"productId" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Title         string     `json:"title"`
	Price         float64    `json:"price" validate:"gte=0"`
	Image         string     `json:"image"`
	Quantity      int        `json:"quantity" validate:"gte=0"`
	StockQuantity StockBound `json:"stockQuantity"`
}

// ToCartLine builds the line inserted when no line exists yet. A missing
// quantity means the first unit.
func (r AddToCartRequest) ToCartLine() CartLine {
	qty := r.Quantity
	if qty < 1 {
		qty = 1
	}
	return CartLine{
		ProductID:     r.ProductID,
		Email:         r.Email,
		Title:         r.Title,
		Price:         r.Price,
		Image:         r.Image,
		Quantity:      qty,
		StockQuantity: r.StockQuantity,
	}
}

// UpdateCartQuantityRequest is the payload for PATCH /carts/:id. Quantity is
// checked by the service so that zero and negatives share one error.
type UpdateCartQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
