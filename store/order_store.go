package store

import (
	"context"
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// OrderRepository adalah koleksi pesanan di document store.
type OrderRepository interface {
	ListRecent(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
}

// OrderStore adalah cache pesanan untuk halaman orders dan overview.
type OrderStore struct {
	repo    OrderRepository
	log     *zap.Logger
	metrics Recorder

	inflight atomic.Int32

	mu     sync.RWMutex
	orders []models.Order
	err    string
}

func NewOrderStore(repo OrderRepository, log *zap.Logger, metrics Recorder) *OrderStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderStore{
		repo:    repo,
		log:     log.Named("order_store"),
		metrics: metrics,
		orders:  []models.Order{},
	}
}

func (s *OrderStore) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Filter mengembalikan pesanan dengan status tertentu; "all" atau kosong berarti semua.
func (s *OrderStore) Filter(status string) []models.Order {
	all := s.Orders()
	if status == "" || status == "all" {
		return all
	}
	out := make([]models.Order, 0, len(all))
	for _, o := range all {
		if string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

func (s *OrderStore) Loading() bool {
	return s.inflight.Load() > 0
}

func (s *OrderStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Fetch mengganti koleksi dengan semua pesanan, terbaru lebih dulu.
func (s *OrderStore) Fetch(ctx context.Context) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	list, err := s.repo.ListRecent(ctx)
	if err != nil {
		return s.fail("fetch", err)
	}

	s.mu.Lock()
	s.orders = list
	s.err = ""
	s.mu.Unlock()

	s.record("fetch", nil)
	return nil
}

// UpdateStatus mengganti status pesanan di remote lalu di cache.
func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	if !status.Valid() {
		return s.fail("update_status", models.ErrInvalidStatus)
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return s.fail("update_status", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			break
		}
	}
	s.err = ""
	s.mu.Unlock()

	s.record("update_status", nil)
	return nil
}

func (s *OrderStore) fail(op string, err error) error {
	s.mu.Lock()
	s.err = Message(err, "Order not found")
	s.mu.Unlock()

	s.log.Error("failed to "+op+" order", zap.Error(err))
	s.record(op, err)
	return err
}

func (s *OrderStore) record(op string, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("orders", op, err)
	}
}
