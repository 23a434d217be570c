package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/database"
	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		collection: db.Collection(database.CartsCollection),
	}
}

// ownerFilter scopes a lookup to one product line. An empty email matches
// lines stored without one.
func ownerFilter(productID, email string) bson.M {
	filter := bson.M{"productId": productID}
	if email != "" {
		filter["email"] = email
	} else {
		filter["email"] = nil
	}
	return filter
}

func (r *CartRepository) Find(ctx context.Context, email string) ([]models.CartLine, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lines := []models.CartLine{}
	if err = cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *CartRepository) IncrementIfBelow(ctx context.Context, productID, email string, bound int) (*models.CartLine, error) {
	filter := ownerFilter(productID, email)
	filter["quantity"] = bson.M{"$lt": bound}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var line models.CartLine
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"quantity": 1}}, opts).Decode(&line)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// InsertIfAbsent creates the line unless one already exists for its product
// and email. The lookup and insert are a single upsert with $setOnInsert, so an
// existing line is never duplicated or modified. inserted is false when a line
// was already there.
func (r *CartRepository) InsertIfAbsent(ctx context.Context, line *models.CartLine) (models.InsertAck, bool, error) {
	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	if line.CreatedAt.IsZero() {
		line.CreatedAt = time.Now().UTC()
	}

	onInsert := bson.M{
		"_id":           line.ID,
		"quantity":      line.Quantity,
		"stockQuantity": line.StockQuantity,
		"createdAt":     line.CreatedAt,
	}
	if line.Title != "" {
		onInsert["title"] = line.Title
	}
	if line.Price != 0 {
		onInsert["price"] = line.Price
	}
	if line.Image != "" {
		onInsert["image"] = line.Image
	}

	opts := options.Update().SetUpsert(true)
	res, err := r.collection.UpdateOne(ctx, ownerFilter(line.ProductID, line.Email), bson.M{"$setOnInsert": onInsert}, opts)
	if err != nil {
		// Two concurrent upserts can both miss; the unique index rejects the
		// second, which means the line now exists.
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertAck{}, false, nil
		}
		return models.InsertAck{}, false, err
	}
	if res.UpsertedCount == 0 {
		return models.InsertAck{}, false, nil
	}
	return models.InsertAck{Acknowledged: true, InsertedID: idString(res.UpsertedID)}, true, nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (models.UpdateAck, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return models.UpdateAck{}, err
	}
	return updateAck(res), nil
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteAck{}, err
	}
	return deleteAck(res), nil
}

// DeleteMany removes every line whose _id is in ids.
func (r *CartRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (models.DeleteAck, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return models.DeleteAck{}, err
	}
	return deleteAck(res), nil
}
