package repository

import (
	"context"

	"storefront-service/database"
	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection(database.CategoriesCollection),
	}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) ExistsByLabel(ctx context.Context, label string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"category": label})
	return count > 0, err
}

// Create inserts the category. A label collision on the unique index comes
// back as ErrDuplicateKey.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (models.InsertAck, error) {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	res, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return models.InsertAck{}, wrapInsertErr(err)
	}
	return insertAck(res), nil
}
