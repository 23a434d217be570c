package services

import (
	"context"
	"encoding/json"
	"time"

	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	PaymentStatusRecorded = "recorded"
	CartClearCleared      = "cleared"
	CartClearFailed       = "failed"

	EventCheckoutCompleted = "checkout.completed"
)

// CheckoutResult reports the payment insert and the cart clear together so a
// caller can tell a partial failure from full success.
type CheckoutResult struct {
	PaymentResult   models.InsertAck  `json:"paymentResult"`
	DeleteResult    *models.DeleteAck `json:"deleteResult"`
	PaymentStatus   string            `json:"paymentStatus"`
	CartClearStatus string            `json:"cartClearStatus"`
	CartClearError  string            `json:"cartClearError,omitempty"`
}

// Partial reports whether the payment was recorded but its cart lines were
// not cleared.
func (r *CheckoutResult) Partial() bool {
	return r.CartClearStatus == CartClearFailed
}

// Transactor runs fn in a single store transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CountRecorder records counter metrics.
type CountRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// CheckoutService records a payment and clears the purchased cart lines.
type CheckoutService interface {
	Checkout(ctx context.Context, req *models.CreatePaymentRequest) (*CheckoutResult, *ServiceError)
}

type checkoutServiceImpl struct {
	payments    repository.PaymentRepo
	carts       repository.CartRepo
	tx          Transactor
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	metrics     CountRecorder
	logger      *zap.Logger
}

// CheckoutOption configures optional collaborators.
type CheckoutOption func(*checkoutServiceImpl)

// WithTransactions runs both checkout writes in one transaction. Any failure
// then rolls back the payment as well.
func WithTransactions(tx Transactor) CheckoutOption {
	return func(s *checkoutServiceImpl) { s.tx = tx }
}

// WithCheckoutEvents publishes a checkout.completed event to topicArn after
// each recorded payment.
func WithCheckoutEvents(publisher aws_pkg.SNSPublisher, topicArn string) CheckoutOption {
	return func(s *checkoutServiceImpl) {
		s.snsClient = publisher
		s.snsTopicArn = topicArn
	}
}

func WithCheckoutMetrics(metrics CountRecorder) CheckoutOption {
	return func(s *checkoutServiceImpl) { s.metrics = metrics }
}

func NewCheckoutService(payments repository.PaymentRepo, carts repository.CartRepo, logger *zap.Logger, opts ...CheckoutOption) CheckoutService {
	s := &checkoutServiceImpl{
		payments: payments,
		carts:    carts,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout inserts the payment, then deletes every cart line whose id is in
// productIds. Without a transactor the payment is kept when the delete fails
// and the result is marked partial.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, req *models.CreatePaymentRequest) (*CheckoutResult, *ServiceError) {
	ids := make([]primitive.ObjectID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		oid, ok := utils.ParseObjectID(raw)
		if !ok {
			return nil, ErrInvalidPaymentIDs
		}
		ids = append(ids, oid)
	}

	payment := req.ToPayment()

	var (
		result *CheckoutResult
		svcErr *ServiceError
	)
	if s.tx != nil {
		result, svcErr = s.checkoutInTransaction(ctx, &payment, ids)
	} else {
		result, svcErr = s.checkoutSequential(ctx, &payment, ids)
	}
	if svcErr != nil {
		return nil, svcErr
	}

	s.recordMetrics(ctx, result)
	s.publishCompleted(ctx, &payment, result)
	return result, nil
}

func (s *checkoutServiceImpl) checkoutSequential(ctx context.Context, payment *models.Payment, ids []primitive.ObjectID) (*CheckoutResult, *ServiceError) {
	insertAck, err := s.payments.Create(ctx, payment)
	if err != nil {
		s.logger.Error("Failed to record payment", zap.Error(err))
		return nil, internalError(err)
	}

	result := &CheckoutResult{
		PaymentResult: insertAck,
		PaymentStatus: PaymentStatusRecorded,
	}

	deleteAck, err := s.carts.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error("Payment recorded but cart lines were not cleared",
			zap.String("payment_id", insertAck.InsertedID),
			zap.Strings("cart_ids", payment.ProductIDs),
			zap.Error(err),
		)
		result.CartClearStatus = CartClearFailed
		result.CartClearError = "Failed to clear cart lines"
		return result, nil
	}

	result.DeleteResult = &deleteAck
	result.CartClearStatus = CartClearCleared
	return result, nil
}

func (s *checkoutServiceImpl) checkoutInTransaction(ctx context.Context, payment *models.Payment, ids []primitive.ObjectID) (*CheckoutResult, *ServiceError) {
	var result *CheckoutResult
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		insertAck, err := s.payments.Create(txCtx, payment)
		if err != nil {
			return err
		}
		deleteAck, err := s.carts.DeleteMany(txCtx, ids)
		if err != nil {
			return err
		}
		result = &CheckoutResult{
			PaymentResult:   insertAck,
			DeleteResult:    &deleteAck,
			PaymentStatus:   PaymentStatusRecorded,
			CartClearStatus: CartClearCleared,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Checkout transaction aborted", zap.Strings("cart_ids", payment.ProductIDs), zap.Error(err))
		return nil, internalError(err)
	}
	return result, nil
}

func (s *checkoutServiceImpl) recordMetrics(ctx context.Context, result *CheckoutResult) {
	if s.metrics == nil {
		return
	}
	dims := map[string]string{"CartClearStatus": result.CartClearStatus}
	if err := s.metrics.RecordCount(ctx, aws_pkg.MetricCartCheckouts, dims); err != nil {
		s.logger.Warn("Failed to record checkout metric", zap.Error(err))
	}
	if result.Partial() {
		if err := s.metrics.RecordCount(ctx, aws_pkg.MetricCheckoutPartial, dims); err != nil {
			s.logger.Warn("Failed to record checkout metric", zap.Error(err))
		}
	}
}

// publishCompleted never changes the checkout outcome.
func (s *checkoutServiceImpl) publishCompleted(ctx context.Context, payment *models.Payment, result *CheckoutResult) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	event := models.CheckoutCompletedEvent{
		EventType:       EventCheckoutCompleted,
		PaymentID:       result.PaymentResult.InsertedID,
		Email:           payment.Email,
		TransactionID:   payment.TransactionID,
		CartLineIDs:     payment.ProductIDs,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		CartClearStatus: result.CartClearStatus,
		Timestamp:       time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to marshal checkout event", zap.Error(err))
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, body); err != nil {
		s.logger.Warn("Failed to publish checkout event",
			zap.String("payment_id", event.PaymentID),
			zap.Error(err),
		)
	}
}
