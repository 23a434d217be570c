package services

import (
	"context"

	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

type ReviewService interface {
	ListReviews(ctx context.Context) ([]models.Review, *ServiceError)
}

type reviewServiceImpl struct {
	repo   repository.ReviewRepo
	logger *zap.Logger
}

func NewReviewService(repo repository.ReviewRepo, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{repo: repo, logger: logger}
}

func (s *reviewServiceImpl) ListReviews(ctx context.Context) ([]models.Review, *ServiceError) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, internalError(err)
	}
	return reviews, nil
}
