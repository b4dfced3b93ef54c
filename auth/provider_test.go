package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/models"
)

func TestProviderSignIn(t *testing.T) {
	repo := newMockAccountRepository()
	repo.add("admin@shop.test", "secret123")
	provider := NewProvider(repo, 5, time.Minute)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		account, err := provider.SignIn(ctx, " Admin@Shop.test ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "admin@shop.test", account.Email)
		assert.Empty(t, account.Password)
		assert.Equal(t, 1, repo.signIns)
	})

	cases := []struct {
		name     string
		email    string
		password string
		code     string
		message  string
	}{
		{"invalid email", "not-an-email", "x", CodeInvalidEmail, "Invalid email address"},
		{"unknown user", "ghost@shop.test", "x", CodeUserNotFound, "User not found"},
		{"wrong password", "admin@shop.test", "nope", CodeWrongPassword, "Incorrect password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.SignIn(ctx, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, tc.code, Code(err))
			assert.Equal(t, tc.message, LoginMessage(err))
		})
	}
}

func TestProviderRateLimit(t *testing.T) {
	repo := newMockAccountRepository()
	repo.add("staff@shop.test", "secret123")
	provider := NewProvider(repo, 2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := provider.SignIn(ctx, "staff@shop.test", "wrong")
		assert.Equal(t, CodeWrongPassword, Code(err))
	}

	_, err := provider.SignIn(ctx, "staff@shop.test", "secret123")
	assert.Equal(t, CodeTooManyRequests, Code(err))
	assert.Equal(t, "Too many login attempts. Please try again later.", LoginMessage(err))

	_, err = provider.SignIn(ctx, "other@shop.test", "x")
	assert.Equal(t, CodeUserNotFound, Code(err))
}

func TestProviderLimitersStayBounded(t *testing.T) {
	repo := newMockAccountRepository()
	provider := NewProvider(repo, 2, time.Minute)
	provider.maxLimiters = 8
	ctx := context.Background()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		_, err := provider.SignIn(ctx, fmt.Sprintf("visitor%d@shop.test", i), "x")
		assert.Equal(t, CodeUserNotFound, Code(err))
		assert.LessOrEqual(t, len(provider.limiters), 8)
	}
}

func TestProviderPruneKeepsExhaustedLimiters(t *testing.T) {
	repo := newMockAccountRepository()
	provider := NewProvider(repo, 2, time.Minute)
	provider.maxLimiters = 4
	ctx := context.Background()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, _ = provider.SignIn(ctx, fmt.Sprintf("idle%d@shop.test", i), "x")
	}

	// the idle limiters refill while the attacker burns through theirs
	now = now.Add(2 * time.Minute)
	for i := 0; i < 2; i++ {
		_, _ = provider.SignIn(ctx, "attacker@shop.test", "x")
	}

	_, err := provider.SignIn(ctx, "newcomer@shop.test", "x")
	assert.Equal(t, CodeUserNotFound, Code(err))
	assert.Len(t, provider.limiters, 2)

	_, err = provider.SignIn(ctx, "attacker@shop.test", "x")
	assert.Equal(t, CodeTooManyRequests, Code(err))
}

func TestLoginMessageFallsBackToRaw(t *testing.T) {
	repo := newMockAccountRepository()
	repo.failWith = errors.New("server selection timeout")
	provider := NewProvider(repo, 5, time.Minute)

	_, err := provider.SignIn(context.Background(), "admin@shop.test", "secret123")
	require.Error(t, err)
	assert.Empty(t, Code(err))
	assert.Equal(t, "server selection timeout", LoginMessage(err))

	assert.Equal(t, "auth/operation-not-allowed", LoginMessage(&ProviderError{Code: "auth/operation-not-allowed"}))
	assert.Empty(t, LoginMessage(nil))
}

func TestProviderRegister(t *testing.T) {
	repo := newMockAccountRepository()
	provider := NewProvider(repo, 5, time.Minute)
	ctx := context.Background()

	account, err := provider.Register(ctx, models.RegisterRequest{
		Email: "Manager@Shop.test", Password: "secret123", Name: "Manager", IsAdmin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "manager@shop.test", account.Email)
	assert.Empty(t, account.Password)

	profile, ok, _ := repo.Profile(ctx, account.ID)
	require.True(t, ok)
	assert.True(t, profile.IsAdmin)
	assert.Equal(t, "Manager", profile.Name)

	_, err = provider.SignIn(ctx, "manager@shop.test", "secret123")
	assert.NoError(t, err)

	_, err = provider.Register(ctx, models.RegisterRequest{Email: "manager@shop.test", Password: "secret123"})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}
