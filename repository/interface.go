package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateKey is returned when an insert collides with a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// ProductRepo defines the product collection operations. Lookups return a nil
// product and nil error when nothing matches.
type ProductRepo interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByProductID(ctx context.Context, productID string) (*models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (models.InsertAck, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (models.UpdateAck, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error)
}

// CategoryRepo defines the category collection operations.
type CategoryRepo interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	ExistsByLabel(ctx context.Context, label string) (bool, error)
	Create(ctx context.Context, category *models.Category) (models.InsertAck, error)
}

// CartRepo defines the cart collection operations.
type CartRepo interface {
	Find(ctx context.Context, email string) ([]models.CartLine, error)
	// IncrementIfBelow adds one to the line for productID and email when its
	// quantity is below bound, in a single round trip. It returns nil when no
	// line matched.
	IncrementIfBelow(ctx context.Context, productID, email string, bound int) (*models.CartLine, error)
	// InsertIfAbsent creates the line unless one exists for its product and
	// email; inserted reports which happened.
	InsertIfAbsent(ctx context.Context, line *models.CartLine) (ack models.InsertAck, inserted bool, err error)
	SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (models.UpdateAck, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (models.DeleteAck, error)
}

// PaymentRepo defines the payment collection operations.
type PaymentRepo interface {
	FindAll(ctx context.Context, email string) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) (models.InsertAck, error)
}

// ReviewRepo defines the review collection operations.
type ReviewRepo interface {
	FindAll(ctx context.Context) ([]models.Review, error)
}
