package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront-service/models"
	"storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("connection refused")

// --- Cart ---

type fakeCartRepo struct {
	mu        sync.Mutex
	lines     map[primitive.ObjectID]*models.CartLine
	deleteErr error
	writes    int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[primitive.ObjectID]*models.CartLine)}
}

func (f *fakeCartRepo) seed(line models.CartLine) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	f.lines[line.ID] = &line
	return line.ID
}

func (f *fakeCartRepo) get(id primitive.ObjectID) *models.CartLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	line, ok := f.lines[id]
	if !ok {
		return nil
	}
	cp := *line
	return &cp
}

func (f *fakeCartRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines)
}

func (f *fakeCartRepo) Find(_ context.Context, email string) ([]models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CartLine{}
	for _, l := range f.lines {
		if email == "" || l.Email == email {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) IncrementIfBelow(_ context.Context, productID, email string, bound int) (*models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lines {
		if l.ProductID == productID && l.Email == email && l.Quantity < bound {
			l.Quantity++
			f.writes++
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) InsertIfAbsent(_ context.Context, line *models.CartLine) (models.InsertAck, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lines {
		if l.ProductID == line.ProductID && l.Email == line.Email {
			return models.InsertAck{}, false, nil
		}
	}
	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	line.CreatedAt = time.Now()
	cp := *line
	f.lines[line.ID] = &cp
	f.writes++
	return models.InsertAck{Acknowledged: true, InsertedID: line.ID.Hex()}, true, nil
}

func (f *fakeCartRepo) SetQuantity(_ context.Context, id primitive.ObjectID, quantity int) (models.UpdateAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lines[id]
	if !ok {
		return models.UpdateAck{Acknowledged: true}, nil
	}
	l.Quantity = quantity
	f.writes++
	return models.UpdateAck{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[id]; !ok {
		return models.DeleteAck{Acknowledged: true}, nil
	}
	delete(f.lines, id)
	return models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
}

func (f *fakeCartRepo) DeleteMany(_ context.Context, ids []primitive.ObjectID) (models.DeleteAck, error) {
	if f.deleteErr != nil {
		return models.DeleteAck{}, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.lines[id]; ok {
			delete(f.lines, id)
			n++
		}
	}
	return models.DeleteAck{Acknowledged: true, DeletedCount: n}, nil
}

// failingCartRepo fails every call.
type failingCartRepo struct{ fakeCartRepo }

func (f *failingCartRepo) IncrementIfBelow(context.Context, string, string, int) (*models.CartLine, error) {
	return nil, errStoreDown
}

// --- Payments ---

type fakePaymentRepo struct {
	payments  []models.Payment
	createErr error
}

func (f *fakePaymentRepo) FindAll(_ context.Context, email string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range f.payments {
		if email == "" || p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Create(_ context.Context, p *models.Payment) (models.InsertAck, error) {
	if f.createErr != nil {
		return models.InsertAck{}, f.createErr
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = time.Now()
	f.payments = append(f.payments, *p)
	return models.InsertAck{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}

// fakeTransactor runs fn directly and restores the payment and cart state
// when fn fails.
type fakeTransactor struct {
	payments *fakePaymentRepo
	carts    *fakeCartRepo
	calls    int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	savedPayments := append([]models.Payment(nil), f.payments.payments...)
	savedLines := make(map[primitive.ObjectID]*models.CartLine, len(f.carts.lines))
	for k, v := range f.carts.lines {
		savedLines[k] = v
	}
	if err := fn(ctx); err != nil {
		f.payments.payments = savedPayments
		f.carts.lines = savedLines
		return err
	}
	return nil
}

// --- Events and metrics ---

type fakeSNS struct {
	topics   []string
	messages [][]byte
	err      error
}

func (f *fakeSNS) Publish(_ context.Context, topicArn string, message []byte) error {
	f.topics = append(f.topics, topicArn)
	f.messages = append(f.messages, message)
	return f.err
}

type fakeCounter struct {
	names []string
}

func (f *fakeCounter) RecordCount(_ context.Context, name string, _ map[string]string) error {
	f.names = append(f.names, name)
	return nil
}

// --- Products ---

type fakeProductRepo struct {
	products map[primitive.ObjectID]models.Product
	err      error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeProductRepo) FindAll(context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProductRepo) FindByProductID(_ context.Context, productID string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ProductID == productID {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(_ context.Context, p *models.Product) (models.InsertAck, error) {
	if f.err != nil {
		return models.InsertAck{}, f.err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = *p
	return models.InsertAck{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) (models.UpdateAck, error) {
	p, ok := f.products[id]
	if !ok {
		return models.UpdateAck{Acknowledged: true}, nil
	}
	if v, ok := updates["title"].(string); ok {
		p.Title = v
	}
	if v, ok := updates["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := updates["quantity"].(int); ok {
		p.Quantity = v
	}
	f.products[id] = p
	return models.UpdateAck{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	if _, ok := f.products[id]; !ok {
		return models.DeleteAck{Acknowledged: true}, nil
	}
	delete(f.products, id)
	return models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
}

// --- Categories ---

// fakeCategoryRepo enforces label uniqueness the way the unique index does.
// staleExists makes ExistsByLabel always answer false, as a racing request
// would observe.
type fakeCategoryRepo struct {
	categories  []models.Category
	staleExists bool
}

func (f *fakeCategoryRepo) FindAll(context.Context) ([]models.Category, error) {
	return append([]models.Category{}, f.categories...), nil
}

func (f *fakeCategoryRepo) ExistsByLabel(_ context.Context, label string) (bool, error) {
	if f.staleExists {
		return false, nil
	}
	for _, c := range f.categories {
		if c.Category == label {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *models.Category) (models.InsertAck, error) {
	for _, existing := range f.categories {
		if existing.Category == c.Category {
			return models.InsertAck{}, fmt.Errorf("%w: E11000", repository.ErrDuplicateKey)
		}
	}
	c.ID = primitive.NewObjectID()
	f.categories = append(f.categories, *c)
	return models.InsertAck{Acknowledged: true, InsertedID: c.ID.Hex()}, nil
}

// --- Reviews ---

type fakeReviewRepo struct {
	reviews []models.Review
	err     error
}

func (f *fakeReviewRepo) FindAll(context.Context) ([]models.Review, error) {
	return f.reviews, f.err
}

// --- Gateway ---

type fakeGateway struct {
	amounts    []int64
	currencies []string
	err        error
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amounts = append(f.amounts, amount)
	f.currencies = append(f.currencies, currency)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("pi_%d_secret_test", amount), nil
}
