package auth

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/models"
)

type mockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	profiles map[primitive.ObjectID]models.Profile
	signIns  int
	signOuts int
	failWith error
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		accounts: make(map[string]models.Account),
		profiles: make(map[primitive.ObjectID]models.Profile),
	}
}

func (m *mockAccountRepository) add(email, password string) models.Account {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	account := models.Account{ID: primitive.NewObjectID(), Email: email, Password: string(hashed)}
	m.accounts[email] = account
	return account
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return models.Account{}, m.failWith
	}
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

func (m *mockAccountRepository) TouchSignIn(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signIns++
	return nil
}

func (m *mockAccountRepository) TouchSignOut(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.signOuts++
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
	m.profiles[profile.ID] = profile
	return nil
}

type memoryPersister struct {
	snap   Snapshot
	stored bool
	saves  int
}

func (m *memoryPersister) Load() (Snapshot, bool) { return m.snap, m.stored }

func (m *memoryPersister) Save(snap Snapshot) error {
	m.snap = snap
	m.stored = true
	m.saves++
	return nil
}

func (m *memoryPersister) Clear() error {
	m.snap = Snapshot{}
	m.stored = false
	return nil
}
