package services

import (
	"context"
	"math"

	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// PaymentGateway creates payment intents with the card processor.
type PaymentGateway interface {
	// CreatePaymentIntent returns the client secret the browser confirms the
	// payment with. amount is in the currency's minor unit.
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (string, *ServiceError)
	ListPayments(ctx context.Context, email string) ([]models.Payment, *ServiceError)
}

type paymentServiceImpl struct {
	repo     repository.PaymentRepo
	gateway  PaymentGateway
	currency string
	logger   *zap.Logger
}

func NewPaymentService(repo repository.PaymentRepo, gateway PaymentGateway, currency string, logger *zap.Logger) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &paymentServiceImpl{
		repo:     repo,
		gateway:  gateway,
		currency: currency,
		logger:   logger,
	}
}

// CreatePaymentIntent charges price, a decimal amount, converted to cents.
func (s *paymentServiceImpl) CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (string, *ServiceError) {
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) || req.Price <= 0 {
		return "", ErrInvalidPrice
	}
	amount := int64(math.Round(req.Price * 100))
	if amount < 1 {
		return "", ErrInvalidPrice
	}

	clientSecret, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		s.logger.Error("Failed to create payment intent",
			zap.Int64("amount", amount),
			zap.String("currency", s.currency),
			zap.Error(err),
		)
		return "", internalError(err)
	}
	return clientSecret, nil
}

func (s *paymentServiceImpl) ListPayments(ctx context.Context, email string) ([]models.Payment, *ServiceError) {
	payments, err := s.repo.FindAll(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list payments", zap.Error(err))
		return nil, internalError(err)
	}
	return payments, nil
}
