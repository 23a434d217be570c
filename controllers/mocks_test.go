package controllers_test

import (
	"context"
	"time"

	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/services"
)

// --- Products ---

type mockProductService struct {
	listFn      func(ctx context.Context) ([]models.Product, *services.ServiceError)
	getFn       func(ctx context.Context, id string) (*models.Product, *services.ServiceError)
	getByCodeFn func(ctx context.Context, productID string) (*models.Product, *services.ServiceError)
	categoryFn  func(ctx context.Context, category string) ([]models.Product, *services.ServiceError)
	createFn    func(ctx context.Context, req *models.CreateProductRequest) (models.InsertAck, *services.ServiceError)
	updateFn    func(ctx context.Context, id string, req *models.UpdateProductRequest) (models.UpdateAck, *services.ServiceError)
	deleteFn    func(ctx context.Context, id string) (models.DeleteAck, *services.ServiceError)
	calls       int
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]models.Product, *services.ServiceError) {
	m.calls++
	return m.listFn(ctx)
}
func (m *mockProductService) GetProduct(ctx context.Context, id string) (*models.Product, *services.ServiceError) {
	m.calls++
	return m.getFn(ctx, id)
}
func (m *mockProductService) GetProductByProductID(ctx context.Context, productID string) (*models.Product, *services.ServiceError) {
	m.calls++
	return m.getByCodeFn(ctx, productID)
}
func (m *mockProductService) ListByCategory(ctx context.Context, category string) ([]models.Product, *services.ServiceError) {
	m.calls++
	return m.categoryFn(ctx, category)
}
func (m *mockProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (models.InsertAck, *services.ServiceError) {
	m.calls++
	return m.createFn(ctx, req)
}
func (m *mockProductService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (models.UpdateAck, *services.ServiceError) {
	m.calls++
	return m.updateFn(ctx, id, req)
}
func (m *mockProductService) DeleteProduct(ctx context.Context, id string) (models.DeleteAck, *services.ServiceError) {
	m.calls++
	return m.deleteFn(ctx, id)
}

// --- Categories ---

type mockCategoryService struct {
	listFn   func(ctx context.Context) ([]models.Category, *services.ServiceError)
	createFn func(ctx context.Context, req *models.CreateCategoryRequest) (models.InsertAck, *services.ServiceError)
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]models.Category, *services.ServiceError) {
	return m.listFn(ctx)
}
func (m *mockCategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (models.InsertAck, *services.ServiceError) {
	return m.createFn(ctx, req)
}

// --- Cart ---

type mockCartService struct {
	listFn   func(ctx context.Context, email string) ([]models.CartLine, *services.ServiceError)
	addFn    func(ctx context.Context, req *models.AddToCartRequest) (*services.AddResult, *services.ServiceError)
	updateFn func(ctx context.Context, id string, quantity *int) (models.UpdateAck, *services.ServiceError)
	removeFn func(ctx context.Context, id string) (models.DeleteAck, *services.ServiceError)
	calls    int
}

func (m *mockCartService) ListCart(ctx context.Context, email string) ([]models.CartLine, *services.ServiceError) {
	m.calls++
	return m.listFn(ctx, email)
}
func (m *mockCartService) AddToCart(ctx context.Context, req *models.AddToCartRequest) (*services.AddResult, *services.ServiceError) {
	m.calls++
	return m.addFn(ctx, req)
}
func (m *mockCartService) UpdateCartQuantity(ctx context.Context, id string, quantity *int) (models.UpdateAck, *services.ServiceError) {
	m.calls++
	return m.updateFn(ctx, id, quantity)
}
func (m *mockCartService) RemoveFromCart(ctx context.Context, id string) (models.DeleteAck, *services.ServiceError) {
	m.calls++
	return m.removeFn(ctx, id)
}

// --- Reviews ---

type mockReviewService struct {
	listFn func(ctx context.Context) ([]models.Review, *services.ServiceError)
}

func (m *mockReviewService) ListReviews(ctx context.Context) ([]models.Review, *services.ServiceError) {
	return m.listFn(ctx)
}

// --- Payments ---

type mockPaymentService struct {
	intentFn func(ctx context.Context, req *models.PaymentIntentRequest) (string, *services.ServiceError)
	listFn   func(ctx context.Context, email string) ([]models.Payment, *services.ServiceError)
}

func (m *mockPaymentService) CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (string, *services.ServiceError) {
	return m.intentFn(ctx, req)
}
func (m *mockPaymentService) ListPayments(ctx context.Context, email string) ([]models.Payment, *services.ServiceError) {
	return m.listFn(ctx, email)
}

type mockCheckoutService struct {
	checkoutFn func(ctx context.Context, req *models.CreatePaymentRequest) (*services.CheckoutResult, *services.ServiceError)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, req *models.CreatePaymentRequest) (*services.CheckoutResult, *services.ServiceError) {
	return m.checkoutFn(ctx, req)
}

// --- Infrastructure ---

type mockPresigner struct {
	filename    string
	contentType string
	expires     time.Duration
	err         error
}

func (m *mockPresigner) PresignProductImage(_ context.Context, filename, contentType string, expires time.Duration) (*aws_pkg.PresignedUpload, error) {
	m.filename, m.contentType, m.expires = filename, contentType, expires
	if m.err != nil {
		return nil, m.err
	}
	return &aws_pkg.PresignedUpload{
		URL:       "https://suju-images.s3.amazonaws.com/products/abc/" + filename + "?X-Amz-Signature=sig",
		Key:       "products/abc/" + filename,
		PublicURL: "https://cdn.example.com/products/abc/" + filename,
	}, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }
