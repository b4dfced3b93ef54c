package auth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"storefront-backend/models"
)

// Kode error penyedia auth.
const (
	CodeInvalidEmail    = "auth/invalid-email"
	CodeUserNotFound    = "auth/user-not-found"
	CodeWrongPassword   = "auth/wrong-password"
	CodeTooManyRequests = "auth/too-many-requests"
)

// ProviderError adalah kegagalan sign-in yang membawa kode penyedia.
type ProviderError struct {
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Code mengambil kode penyedia dari err, kosong bila bukan ProviderError.
func Code(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// AccountRepository adalah penyimpanan akun dan profil.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	TouchSignIn(ctx context.Context, id primitive.ObjectID, at time.Time) error
	TouchSignOut(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Profile(ctx context.Context, id primitive.ObjectID) (models.Profile, bool, error)
	SaveProfile(ctx context.Context, profile models.Profile) error
}

// Provider adalah penyedia auth email/password di atas koleksi accounts.
// Percobaan login dibatasi per email.
type Provider struct {
	accounts AccountRepository
	limit    rate.Limit
	burst    int
	now      func() time.Time

	mu          sync.Mutex
	limiters    map[string]*limiterEntry
	maxLimiters int
}

type limiterEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// DefaultMaxLimiters adalah jumlah email yang dilacak sebelum limiter dibersihkan.
const DefaultMaxLimiters = 10000

// NewProvider membuat provider yang mengizinkan attempts percobaan per window.
func NewProvider(accounts AccountRepository, attempts int, window time.Duration) *Provider {
	if attempts <= 0 {
		attempts = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Provider{
		accounts: accounts,
		limit:    rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
		now:      time.Now,
		limiters:    make(map[string]*limiterEntry),
		maxLimiters: DefaultMaxLimiters,
	}
}

func (p *Provider) limiter(email string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.limiters[email]; ok {
		e.seen = now
		return e.limiter
	}
	if len(p.limiters) >= p.maxLimiters {
		p.prune(now)
	}
	e := &limiterEntry{limiter: rate.NewLimiter(p.limit, p.burst), seen: now}
	p.limiters[email] = e
	return e.limiter
}

// prune membuang limiter yang tokennya sudah terisi penuh. Bila map masih
// penuh, limiter yang paling lama tidak dipakai dibuang sampai tersisa
// tiga perempat kapasitas.
func (p *Provider) prune(now time.Time) {
	for email, e := range p.limiters {
		if e.limiter.TokensAt(now) >= float64(p.burst) {
			delete(p.limiters, email)
		}
	}
	if len(p.limiters) < p.maxLimiters {
		return
	}

	emails := make([]string, 0, len(p.limiters))
	for email := range p.limiters {
		emails = append(emails, email)
	}
	sort.Slice(emails, func(i, j int) bool {
		return p.limiters[emails[i]].seen.Before(p.limiters[emails[j]].seen)
	})
	for _, email := range emails[:len(emails)-p.maxLimiters*3/4] {
		delete(p.limiters, email)
	}
}

// SignIn memeriksa kredensial dan mencatat waktu login.
func (p *Provider) SignIn(ctx context.Context, email, password string) (models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !models.ValidEmail(email) {
		return models.Account{}, &ProviderError{Code: CodeInvalidEmail}
	}
	now := p.now()
	if !p.limiter(email, now).AllowN(now, 1) {
		return models.Account{}, &ProviderError{Code: CodeTooManyRequests}
	}

	account, err := p.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Account{}, &ProviderError{Code: CodeUserNotFound}
		}
		return models.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return models.Account{}, &ProviderError{Code: CodeWrongPassword}
	}

	if err := p.accounts.TouchSignIn(ctx, account.ID, p.now()); err != nil {
		return models.Account{}, err
	}
	account.Password = ""
	return account, nil
}

// SignOut mencatat waktu logout akun.
func (p *Provider) SignOut(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.Wrap(err, "invalid account id")
	}
	return p.accounts.TouchSignOut(ctx, objectID, p.now())
}

// Profile mengambil profil tambahan dari koleksi users.
func (p *Provider) Profile(ctx context.Context, id primitive.ObjectID) (models.Profile, bool, error) {
	return p.accounts.Profile(ctx, id)
}

// Register membuat akun baru beserta profilnya.
func (p *Provider) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, errors.Wrap(err, "failed to hash password")
	}

	account := models.Account{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    string(hashed),
		DisplayName: req.Name,
		CreatedAt:   p.now(),
	}
	if err := p.accounts.Create(ctx, &account); err != nil {
		return models.Account{}, err
	}

	profile := models.Profile{ID: account.ID, Name: req.Name, IsAdmin: req.IsAdmin}
	if err := p.accounts.SaveProfile(ctx, profile); err != nil {
		return models.Account{}, err
	}

	account.Password = ""
	return account, nil
}
