package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PASETO_SECRET_KEY", testKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "storefront", cfg.MongoDatabase)
	assert.Equal(t, []byte(testKey), cfg.PasetoSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "admindashboard", cfg.CloudinaryUploadPreset)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.AllowOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadAtlasMode(t *testing.T) {
	t.Setenv("PASETO_SECRET_KEY", testKey)
	t.Setenv("MONGO_MODE", "atlas")

	t.Run("missing uri", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("uri set", func(t *testing.T) {
		t.Setenv("MONGO_URI_ATLAS", "mongodb+srv://cluster.example.net")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "mongodb+srv://cluster.example.net", cfg.MongoURI)
	})
}

func TestLoadRejectsShortPasetoKey(t *testing.T) {
	t.Setenv("PASETO_SECRET_KEY", "too-short")

	_, err := Load()
	assert.Error(t, err)
}
