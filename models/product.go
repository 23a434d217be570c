package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalog entry in the products collection. ProductID is the
// caller-assigned catalog code and is unrelated to the store's _id.
type Product struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID string             `json:"productId" bson:"productId"`
	Title     string             `json:"title" bson:"title"`
	Details   string             `json:"details" bson:"details"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Rating    float64            `json:"rating" bson:"rating"`
	Category  string             `json:"category" bson:"category"`
	Image     string             `json:"image" bson:"image"`
}

// CreateProductRequest is the payload for POST /products/addProduct.
type CreateProductRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	Details   string  `json:"details"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Rating    float64 `json:"rating" validate:"gte=0"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
}

// ToProduct builds the document to insert.
func (r CreateProductRequest) ToProduct() Product {
	return Product{
		ProductID: r.ProductID,
		Title:     r.Title,
		Details:   r.Details,
		Price:     r.Price,
		Quantity:  r.Quantity,
		Rating:    r.Rating,
		Category:  r.Category,
		Image:     r.Image,
	}
}

// UpdateProductRequest is the payload for PATCH /products/:id. Nil fields are
// left untouched.
type UpdateProductRequest struct {
	Title    *string  `json:"title"`
	Details  *string  `json:"details"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
	Rating   *float64 `json:"rating" validate:"omitempty,gte=0"`
	Category *string  `json:"category"`
	Image    *string  `json:"image"`
}

// Updates returns the bson field names and values that were supplied.
func (r UpdateProductRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Details != nil {
		updates["details"] = *r.Details
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Quantity != nil {
		updates["quantity"] = *r.Quantity
	}
	if r.Rating != nil {
		updates["rating"] = *r.Rating
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.Image != nil {
		updates["image"] = *r.Image
	}
	return updates
}
