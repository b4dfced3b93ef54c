package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/models"
)

type mockProductRepository struct {
	mu    sync.Mutex
	store map[primitive.ObjectID]models.Product
	calls int

	failWith error
	block    chan struct{}
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[primitive.ObjectID]models.Product)}
}

func (m *mockProductRepository) enter() error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.failWith
}

func (m *mockProductRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockProductRepository) ListByName(ctx context.Context) ([]models.Product, error) {
	if err := m.enter(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Product, 0, len(m.store))
	for _, p := range m.store {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockProductRepository) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	if err := m.enter(); err != nil {
		return models.Product{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.store[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := m.enter(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	product.ID = primitive.NewObjectID()
	m.store[product.ID] = *product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) error {
	if err := m.enter(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.store[id]
	if !ok {
		return models.ErrNotFound
	}
	m.store[id] = update.ApplyTo(p)
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := m.enter(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type mockOrderRepository struct {
	orders []models.Order
	calls  int
}

func (m *mockOrderRepository) ListRecent(ctx context.Context) ([]models.Order, error) {
	m.calls++
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	m.calls++
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

type recordedOp struct {
	store, operation string
	failed           bool
}

type mockRecorder struct {
	ops []recordedOp
}

func (m *mockRecorder) RecordStoreOperation(store, operation string, err error) {
	m.ops = append(m.ops, recordedOp{store: store, operation: operation, failed: err != nil})
}
