package repository

import (
	"fmt"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func idString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	default:
		return fmt.Sprint(v)
	}
}

func insertAck(res *mongo.InsertOneResult) models.InsertAck {
	return models.InsertAck{Acknowledged: true, InsertedID: idString(res.InsertedID)}
}

func updateAck(res *mongo.UpdateResult) models.UpdateAck {
	return models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    idString(res.UpsertedID),
	}
}

func deleteAck(res *mongo.DeleteResult) models.DeleteAck {
	return models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func wrapInsertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
