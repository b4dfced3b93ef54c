package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/models"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestCodec(t *testing.T) {
	codec := NewCodec(testKey, time.Hour)
	snap := Snapshot{
		User:            models.User{ID: "64b7f0c2a1b2c3d4e5f60718", Email: "admin@shop.test", Name: "Admin", IsAdmin: true},
		IsAuthenticated: true,
	}

	t.Run("round trip", func(t *testing.T) {
		token, encoded, err := codec.Encode(snap)
		require.NoError(t, err)
		assert.False(t, encoded.ExpiresAt.IsZero())

		got, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, snap.User, got.User)
		assert.True(t, got.IsAuthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewCodec(testKey, time.Minute)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := old.Encode(snap)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewCodec([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
		token, _, err := other.Encode(snap)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode("v2.local.garbage")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestCookiePersister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := NewCodec(testKey, time.Hour)
	snap := Snapshot{User: models.User{ID: "64b7f0c2a1b2c3d4e5f60718", Email: "admin@shop.test"}, IsAuthenticated: true}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)

	saver := NewCookiePersister(c, codec, false)
	require.NoError(t, saver.Save(snap))
	require.NotEmpty(t, saver.Token())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	t.Run("load from cookie", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		c.Request.AddCookie(cookies[0])

		got, ok := NewCookiePersister(c, codec, false).Load()
		require.True(t, ok)
		assert.Equal(t, "admin@shop.test", got.User.Email)
	})

	t.Run("load from bearer", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		c.Request.Header.Set("Authorization", "Bearer "+saver.Token())

		_, ok := NewCookiePersister(c, codec, false).Load()
		assert.True(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/logout", nil)

		require.NoError(t, NewCookiePersister(c, codec, false).Clear())
		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, CookieName, cleared[0].Name)
		assert.Empty(t, cleared[0].Value)
		assert.True(t, cleared[0].MaxAge < 0)
	})
}
