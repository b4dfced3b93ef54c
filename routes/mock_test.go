package routes

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/models"
)

type mockProductRepository struct {
	mu    sync.Mutex
	store map[primitive.ObjectID]models.Product
	calls int

	failCreate error
}

func (m *mockProductRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockProductRepository) ListByName(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	out := make([]models.Product, 0, len(m.store))
	for _, p := range m.store {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockProductRepository) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	p, ok := m.store[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failCreate != nil {
		return m.failCreate
	}
	product.ID = primitive.NewObjectID()
	m.store[product.ID] = *product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	p, ok := m.store[id]
	if !ok {
		return models.ErrNotFound
	}
	m.store[id] = update.ApplyTo(p)
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type mockOrderRepository struct {
	mu     sync.Mutex
	orders []models.Order
}

func (m *mockOrderRepository) ListRecent(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

type mockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	profiles map[primitive.ObjectID]models.Profile

	failSaveProfile error
}

func (m *mockAccountRepository) add(email, password string, profile *models.Profile) models.Account {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	account := models.Account{ID: primitive.NewObjectID(), Email: email, Password: string(hashed)}
	m.accounts[email] = account
	if profile != nil {
		profile.ID = account.ID
		m.profiles[account.ID] = *profile
	}
	return account
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[email]
	if !ok {
		return models.Account{}, models.ErrNotFound
	}
	return account, nil
}

func (m *mockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Email]; ok {
		return models.ErrDuplicateEmail
	}
	account.ID = primitive.NewObjectID()
	m.accounts[account.Email] = *account
	return nil
}

func (m *mockAccountRepository) List(ctx context.Context) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		a.Password = ""
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *mockAccountRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, a := range m.accounts {
		if a.ID == id {
			delete(m.accounts, email)
			delete(m.profiles, id)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *mockAccountRepository) TouchSignIn(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return nil
}

func (m *mockAccountRepository) TouchSignOut(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return nil
}

func (m *mockAccountRepository) Profile(ctx context.Context, id primitive.ObjectID) (models.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	return p, ok, nil
}

func (m *mockAccountRepository) SaveProfile(ctx context.Context, profile models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSaveProfile != nil {
		return m.failSaveProfile
	}
	m.profiles[profile.ID] = profile
	return nil
}

type mockHost struct {
	mu    sync.Mutex
	calls int
}

func (m *mockHost) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockHost) Upload(ctx context.Context, name string, file io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	return "https://res.cloudinary.com/demo/image/upload/storefront/products/" + name, nil
}
