package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// ProductRepository adalah koleksi produk di document store.
type ProductRepository interface {
	ListByName(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Recorder mencatat hasil setiap operasi store.
type Recorder interface {
	RecordStoreOperation(store, operation string, err error)
}

// ProductStore adalah cache produk di memori yang dicerminkan ke document store.
// Perubahan lokal hanya diterapkan setelah penulisan remote berhasil.
type ProductStore struct {
	repo    ProductRepository
	log     *zap.Logger
	metrics Recorder
	now     func() time.Time

	inflight atomic.Int32

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
	err      string
}

// NewProductStore membuat store kosong. metrics boleh nil.
func NewProductStore(repo ProductRepository, log *zap.Logger, metrics Recorder) *ProductStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductStore{
		repo:     repo,
		log:      log.Named("product_store"),
		metrics:  metrics,
		now:      time.Now,
		products: []models.Product{},
	}
}

// Products mengembalikan salinan koleksi saat ini.
func (s *ProductStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// Get mencari produk di cache.
func (s *ProductStore) Get(id primitive.ObjectID) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}

// Find mencari produk di cache, lalu di document store bila tidak ada.
// Produk yang ditemukan di remote ikut disimpan ke cache.
func (s *ProductStore) Find(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	if p, ok := s.Get(id); ok {
		return p, nil
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.record("find", err)
			return models.Product{}, err
		}
		return models.Product{}, s.fail("find", err)
	}

	s.mu.Lock()
	cached := false
	for _, p := range s.products {
		if p.ID == id {
			cached = true
			break
		}
	}
	if !cached {
		s.products = append(s.products, product)
	}
	s.mu.Unlock()

	s.record("find", nil)
	return product.Clone(), nil
}

// Loading bernilai true selama ada operasi remote yang berjalan.
func (s *ProductStore) Loading() bool {
	return s.inflight.Load() > 0
}

// Loaded bernilai true setelah Fetch pertama berhasil.
func (s *ProductStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err adalah pesan kegagalan terakhir, kosong bila operasi terakhir berhasil.
func (s *ProductStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Fetch mengganti koleksi dengan semua produk terurut nama.
// Bila gagal, koleksi sebelumnya tetap dipakai.
func (s *ProductStore) Fetch(ctx context.Context) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	list, err := s.repo.ListByName(ctx)
	if err != nil {
		return s.fail("fetch", err)
	}

	s.mu.Lock()
	s.products = list
	s.loaded = true
	s.err = ""
	s.mu.Unlock()

	s.record("fetch", nil)
	return nil
}

// Add menyimpan produk baru. URL gambar harus sudah ada dan aturan harga
// diskon diperiksa sebelum ada panggilan jaringan.
func (s *ProductStore) Add(ctx context.Context, product models.Product) (models.Product, error) {
	if product.ImageURL == "" {
		return models.Product{}, s.fail("add", models.ErrImageRequired)
	}
	if err := models.ValidateProduct(product); err != nil {
		return models.Product{}, s.fail("add", err)
	}
	product.ID = primitive.NilObjectID
	if product.CreatedAt.IsZero() {
		product.CreatedAt = s.now()
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if err := s.repo.Create(ctx, &product); err != nil {
		return models.Product{}, s.fail("add", err)
	}

	s.mu.Lock()
	s.products = append(s.products, product.Clone())
	s.err = ""
	s.mu.Unlock()

	s.log.Debug("product added", zap.String("id", product.ID.Hex()))
	s.record("add", nil)
	return product, nil
}

// Update menerapkan patch ke remote lalu menggabungkannya ke record lokal.
func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (models.Product, error) {
	if update.IsEmpty() {
		return models.Product{}, s.fail("update", models.ErrEmptyUpdate)
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	current, ok := s.Get(id)
	if !ok {
		var err error
		if current, err = s.repo.Get(ctx, id); err != nil {
			return models.Product{}, s.fail("update", err)
		}
	}
	merged := update.ApplyTo(current)
	if err := models.ValidateProduct(merged); err != nil {
		return models.Product{}, s.fail("update", err)
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return models.Product{}, s.fail("update", err)
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = update.ApplyTo(s.products[i])
			merged = s.products[i].Clone()
			break
		}
	}
	s.err = ""
	s.mu.Unlock()

	s.record("update", nil)
	return merged, nil
}

// Delete menghapus produk di remote lalu dari koleksi lokal.
func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}

	s.mu.Lock()
	kept := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.err = ""
	s.mu.Unlock()

	s.record("delete", nil)
	return nil
}

func (s *ProductStore) fail(op string, err error) error {
	msg := Message(err, "Product not found")

	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()

	s.log.Error("failed to "+op+" product", zap.Error(err))
	s.record(op, err)
	return err
}

func (s *ProductStore) record(op string, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("products", op, err)
	}
}

// Message mengubah error menjadi teks yang bisa ditampilkan.
func Message(err error, notFound string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, models.ErrNotFound) {
		return notFound
	}
	return err.Error()
}
