package services

import (
	"context"
	"errors"

	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (models.InsertAck, *ServiceError)
}

type categoryServiceImpl struct {
	repo   repository.CategoryRepo
	logger *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepo, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, logger: logger}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, internalError(err)
	}
	return categories, nil
}

// CreateCategory rejects a label that already exists. The unique index on the
// label catches inserts racing past the existence check.
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (models.InsertAck, *ServiceError) {
	exists, err := s.repo.ExistsByLabel(ctx, req.Category)
	if err != nil {
		s.logger.Error("Failed to check category", zap.String("category", req.Category), zap.Error(err))
		return models.InsertAck{}, internalError(err)
	}
	if exists {
		return models.InsertAck{}, ErrCategoryExists
	}

	category := &models.Category{
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
	ack, err := s.repo.Create(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return models.InsertAck{}, ErrCategoryExists
		}
		s.logger.Error("Failed to create category", zap.String("category", req.Category), zap.Error(err))
		return models.InsertAck{}, internalError(err)
	}

	s.logger.Info("Category created", zap.String("category", category.Category))
	return ack, nil
}
