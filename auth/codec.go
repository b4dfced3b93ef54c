package auth

import (
	"strconv"
	"time"

	"github.com/o1egl/paseto"
	"github.com/pkg/errors"

	"storefront-backend/models"
)

const tokenFooter = "storefront-admin"

// ErrInvalidSession dikembalikan untuk token yang rusak atau kedaluwarsa.
var ErrInvalidSession = errors.New("invalid or expired session")

// Snapshot adalah potongan state auth yang dipersistenkan antar request.
type Snapshot struct {
	User            models.User `json:"user"`
	IsAuthenticated bool        `json:"is_authenticated"`
	ExpiresAt       time.Time   `json:"expires_at"`
}

// Codec mengenkripsi snapshot menjadi token paseto v2 local.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewCodec(key []byte, ttl time.Duration) *Codec {
	return &Codec{key: key, ttl: ttl, now: time.Now}
}

// TTL adalah masa berlaku token baru.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode membuat token baru untuk snapshot. ExpiresAt diisi dari TTL.
func (c *Codec) Encode(snap Snapshot) (string, Snapshot, error) {
	now := c.now()
	snap.ExpiresAt = now.Add(c.ttl)

	token := paseto.JSONToken{
		Subject:    snap.User.ID,
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: snap.ExpiresAt,
	}
	token.Set("email", snap.User.Email)
	token.Set("name", snap.User.Name)
	token.Set("is_admin", strconv.FormatBool(snap.User.IsAdmin))
	token.Set("authenticated", strconv.FormatBool(snap.IsAuthenticated))

	encrypted, err := paseto.NewV2().Encrypt(c.key, token, tokenFooter)
	if err != nil {
		return "", Snapshot{}, errors.Wrap(err, "failed to generate token")
	}
	return encrypted, snap, nil
}

// Decode membuka token dan memeriksa masa berlakunya.
func (c *Codec) Decode(encrypted string) (Snapshot, error) {
	var token paseto.JSONToken
	var footer string
	if err := paseto.NewV2().Decrypt(encrypted, c.key, &token, &footer); err != nil {
		return Snapshot{}, ErrInvalidSession
	}
	if footer != tokenFooter {
		return Snapshot{}, ErrInvalidSession
	}
	if err := token.Validate(paseto.ValidAt(c.now())); err != nil {
		return Snapshot{}, ErrInvalidSession
	}

	isAdmin, _ := strconv.ParseBool(token.Get("is_admin"))
	authenticated, _ := strconv.ParseBool(token.Get("authenticated"))
	return Snapshot{
		User: models.User{
			ID:      token.Subject,
			Email:   token.Get("email"),
			Name:    token.Get("name"),
			IsAdmin: isAdmin,
		},
		IsAuthenticated: authenticated,
		ExpiresAt:       token.Expiration,
	}, nil
}
