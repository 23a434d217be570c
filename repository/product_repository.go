package repository

import (
	"context"
	"errors"
	"regexp"

	"storefront-service/database"
	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(database.ProductsCollection),
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProductRepository) FindByProductID(ctx context.Context, productID string) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"productId": productID})
}

// FindByCategory matches the whole category label, ignoring case.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{"category": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(category) + "$",
		Options: "i",
	}}
	return r.find(ctx, filter)
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (models.InsertAck, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return models.InsertAck{}, wrapInsertErr(err)
	}
	return insertAck(res), nil
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (models.UpdateAck, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteAck{}, err
	}
	return deleteAck(res), nil
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
