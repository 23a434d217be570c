package services

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/utils"

	"go.uber.org/zap"
)

// ProductService defines catalog operations. Lookups that find nothing return
// a nil product and no error.
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, *ServiceError)
	GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError)
	GetProductByProductID(ctx context.Context, productID string) (*models.Product, *ServiceError)
	ListByCategory(ctx context.Context, category string) ([]models.Product, *ServiceError)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (models.InsertAck, *ServiceError)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (models.UpdateAck, *ServiceError)
	DeleteProduct(ctx context.Context, id string) (models.DeleteAck, *ServiceError)
}

type productServiceImpl struct {
	repo   repository.ProductRepo
	logger *zap.Logger
}

func NewProductService(repo repository.ProductRepo, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, logger: logger}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, internalError(err)
	}
	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, ErrInvalidProductID
	}

	product, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		s.logger.Error("Failed to get product", zap.String("id", id), zap.Error(err))
		return nil, internalError(err)
	}
	return product, nil
}

func (s *productServiceImpl) GetProductByProductID(ctx context.Context, productID string) (*models.Product, *ServiceError) {
	product, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to get product by catalog code", zap.String("product_id", productID), zap.Error(err))
		return nil, internalError(err)
	}
	return product, nil
}

// ListByCategory matches the category label case-insensitively. An empty
// result is a 404.
func (s *productServiceImpl) ListByCategory(ctx context.Context, category string) ([]models.Product, *ServiceError) {
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list products by category", zap.String("category", category), zap.Error(err))
		return nil, internalError(err)
	}
	if len(products) == 0 {
		return nil, &ServiceError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("No products found in category %s", category),
		}
	}
	return products, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (models.InsertAck, *ServiceError) {
	product := req.ToProduct()
	ack, err := s.repo.Create(ctx, &product)
	if err != nil {
		s.logger.Error("Failed to create product", zap.String("product_id", req.ProductID), zap.Error(err))
		return models.InsertAck{}, internalError(err)
	}

	s.logger.Info("Product created", zap.String("id", ack.InsertedID), zap.String("product_id", product.ProductID))
	return ack, nil
}

// UpdateProduct sets only the fields present in req.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (models.UpdateAck, *ServiceError) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return models.UpdateAck{}, ErrInvalidProductID
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return models.UpdateAck{}, ErrEmptyUpdate
	}

	ack, err := s.repo.Update(ctx, oid, updates)
	if err != nil {
		s.logger.Error("Failed to update product", zap.String("id", id), zap.Error(err))
		return models.UpdateAck{}, internalError(err)
	}
	return ack, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id string) (models.DeleteAck, *ServiceError) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return models.DeleteAck{}, ErrInvalidProductID
	}

	ack, err := s.repo.Delete(ctx, oid)
	if err != nil {
		s.logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		return models.DeleteAck{}, internalError(err)
	}
	return ack, nil
}
