package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the service relies on for uniqueness.
// Cart lines are unique per product and email, categories per label.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CartsCollection: {
			{
				Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_product_email"),
			},
		},
		CategoriesCollection: {
			{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_category"),
			},
		},
		ProductsCollection: {
			{
				Keys:    bson.D{{Key: "productId", Value: 1}},
				Options: options.Index().SetName("product_id"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetName("category"),
			},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
