package auth

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// Authenticator adalah penyedia identitas yang dipakai Store.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (models.Account, error)
	SignOut(ctx context.Context, id string) error
	Profile(ctx context.Context, id primitive.ObjectID) (models.Profile, bool, error)
}

// LoginRecorder mencatat hasil percobaan login.
type LoginRecorder interface {
	RecordLogin(err error)
}

// Store adalah state sesi satu klien: user, status login dan error terakhir.
type Store struct {
	provider  Authenticator
	persister Persister
	log       *zap.Logger
	metrics   LoginRecorder

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	err           string
}

func NewStore(provider Authenticator, persister Persister, log *zap.Logger, metrics LoginRecorder) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		provider:  provider,
		persister: persister,
		log:       log.Named("auth_store"),
		metrics:   metrics,
	}
}

// Rehydrate memuat snapshot tersimpan. Snapshot kosong atau tidak valid berarti belum login.
func (s *Store) Rehydrate() bool {
	snap, ok := s.persister.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok || !snap.IsAuthenticated || snap.User.ID == "" {
		s.user = nil
		s.authenticated = false
		return false
	}
	user := snap.User
	s.user = &user
	s.authenticated = true
	return true
}

// Login melakukan sign-in lalu melengkapi identitas dengan profil dari koleksi users.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	account, err := s.provider.SignIn(ctx, email, password)
	s.recordLogin(err)
	if err != nil {
		s.mu.Lock()
		s.err = LoginMessage(err)
		s.authenticated = false
		s.mu.Unlock()

		s.log.Warn("login failed", zap.String("email", email), zap.Error(err))
		return models.User{}, err
	}

	user := models.User{
		ID:    account.ID.Hex(),
		Email: account.Email,
		Name:  account.DisplayName,
	}
	profile, found, err := s.provider.Profile(ctx, account.ID)
	if err != nil {
		s.log.Warn("failed to load profile", zap.String("id", user.ID), zap.Error(err))
	}
	if found {
		if profile.Name != "" {
			user.Name = profile.Name
		}
		user.IsAdmin = profile.IsAdmin
	} else {
		user.IsAdmin = strings.Contains(strings.ToLower(account.Email), "admin")
	}

	if err := s.persister.Save(Snapshot{User: user, IsAuthenticated: true}); err != nil {
		s.setErr(err.Error())
		return models.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.err = ""
	s.mu.Unlock()

	s.log.Info("user logged in", zap.String("id", user.ID))
	return user, nil
}

// Logout melakukan sign-out lalu menghapus state dan snapshot.
// Bila sign-out gagal, state tetap seperti sebelumnya.
func (s *Store) Logout(ctx context.Context) error {
	if user, ok := s.User(); ok {
		if err := s.provider.SignOut(ctx, user.ID); err != nil {
			s.setErr(err.Error())
			s.log.Error("logout failed", zap.Error(err))
			return err
		}
	}
	if err := s.persister.Clear(); err != nil {
		s.setErr(err.Error())
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.err = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Store) recordLogin(err error) {
	if s.metrics != nil {
		s.metrics.RecordLogin(err)
	}
}
