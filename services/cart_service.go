package services

import (
	"context"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/utils"

	"go.uber.org/zap"
)

// AddResult reports which write AddToCart performed. Exactly one field is set.
type AddResult struct {
	Inserted    *models.InsertAck
	Incremented *models.UpdateAck
}

// CartService holds the cart reconciliation rules.
type CartService interface {
	ListCart(ctx context.Context, email string) ([]models.CartLine, *ServiceError)
	AddToCart(ctx context.Context, req *models.AddToCartRequest) (*AddResult, *ServiceError)
	UpdateCartQuantity(ctx context.Context, id string, quantity *int) (models.UpdateAck, *ServiceError)
	RemoveFromCart(ctx context.Context, id string) (models.DeleteAck, *ServiceError)
}

type cartServiceImpl struct {
	repo   repository.CartRepo
	logger *zap.Logger
}

func NewCartService(repo repository.CartRepo, logger *zap.Logger) CartService {
	return &cartServiceImpl{repo: repo, logger: logger}
}

func (s *cartServiceImpl) ListCart(ctx context.Context, email string) ([]models.CartLine, *ServiceError) {
	lines, err := s.repo.Find(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list cart", zap.Error(err))
		return nil, internalError(err)
	}
	return lines, nil
}

// AddToCart grows an existing line by one while it is below the stock bound
// sent with the request, or inserts the line when none exists. A line already
// at its bound is rejected without any write.
func (s *cartServiceImpl) AddToCart(ctx context.Context, req *models.AddToCartRequest) (*AddResult, *ServiceError) {
	bound := int(req.StockQuantity)

	res, svcErr := s.incrementIfBelow(ctx, req, bound)
	if svcErr != nil || res != nil {
		return res, svcErr
	}

	line := req.ToCartLine()
	ack, inserted, err := s.repo.InsertIfAbsent(ctx, &line)
	if err != nil {
		s.logger.Error("Failed to insert cart line", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, internalError(err)
	}
	if inserted {
		s.logger.Info("Cart line inserted",
			zap.String("product_id", line.ProductID),
			zap.String("cart_id", ack.InsertedID),
		)
		return &AddResult{Inserted: &ack}, nil
	}

	// A line exists: either another request inserted it first or it is
	// already at its bound.
	res, svcErr = s.incrementIfBelow(ctx, req, bound)
	if svcErr != nil || res != nil {
		return res, svcErr
	}

	s.logger.Info("Cart add rejected at stock bound",
		zap.String("product_id", req.ProductID),
		zap.Int("stock_quantity", bound),
	)
	return nil, ErrStockExceeded
}

func (s *cartServiceImpl) incrementIfBelow(ctx context.Context, req *models.AddToCartRequest, bound int) (*AddResult, *ServiceError) {
	line, err := s.repo.IncrementIfBelow(ctx, req.ProductID, req.Email, bound)
	if err != nil {
		s.logger.Error("Failed to increment cart line", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, internalError(err)
	}
	if line == nil {
		return nil, nil
	}
	return &AddResult{Incremented: &models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  1,
		ModifiedCount: 1,
	}}, nil
}

// UpdateCartQuantity sets the quantity of a line. The stock bound is not
// consulted here.
func (s *cartServiceImpl) UpdateCartQuantity(ctx context.Context, id string, quantity *int) (models.UpdateAck, *ServiceError) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return models.UpdateAck{}, ErrInvalidCartID
	}
	if quantity == nil || *quantity <= 0 {
		return models.UpdateAck{}, ErrInvalidQuantity
	}

	ack, err := s.repo.SetQuantity(ctx, oid, *quantity)
	if err != nil {
		s.logger.Error("Failed to update cart quantity", zap.String("cart_id", id), zap.Error(err))
		return models.UpdateAck{}, internalError(err)
	}
	return ack, nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, id string) (models.DeleteAck, *ServiceError) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return models.DeleteAck{}, ErrInvalidCartID
	}

	ack, err := s.repo.Delete(ctx, oid)
	if err != nil {
		s.logger.Error("Failed to delete cart line", zap.String("cart_id", id), zap.Error(err))
		return models.DeleteAck{}, internalError(err)
	}
	return ack, nil
}
