package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category labels are unique across the categories collection.
type Category struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
}

// CreateCategoryRequest is the payload for POST /categories/addCategory.
type CreateCategoryRequest struct {
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
