package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// AppConfig menampung semua variabel konfigurasi aplikasi.
type AppConfig struct {
	Port     string `envconfig:"PORT" default:"5000"`
	Env      string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoMode      string        `envconfig:"MONGO_MODE" default:"local"`
	MongoURIAtlas  string        `envconfig:"MONGO_URI_ATLAS"`
	MongoURILocal  string        `envconfig:"MONGO_URI_LOCAL" default:"mongodb://localhost:27017"`
	MongoDatabase  string        `envconfig:"MONGO_DATABASE" default:"storefront"`
	MongoURI       string        `ignored:"true"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	PasetoSecret    string        `envconfig:"PASETO_SECRET_KEY" required:"true"`
	PasetoSecretKey []byte        `ignored:"true"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SecureCookies   bool          `envconfig:"SECURE_COOKIES" default:"false"`

	CloudinaryURL          string `envconfig:"CLOUDINARY_URL"`
	CloudinaryUploadPreset string `envconfig:"CLOUDINARY_UPLOAD_PRESET" default:"admindashboard"`
	CloudinaryFolder       string `envconfig:"CLOUDINARY_FOLDER" default:"storefront/products"`

	AllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`

	LoginAttempts int           `envconfig:"LOGIN_ATTEMPTS" default:"5"`
	LoginWindow   time.Duration `envconfig:"LOGIN_WINDOW" default:"1m"`

	MetricsPrefix string `envconfig:"METRICS_PREFIX" default:"storefront"`
}

// Load memuat konfigurasi dari file .env atau environment variables.
func Load() (*AppConfig, error) {
	// .env opsional, environment variables tetap dipakai
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	// Atur URI MongoDB berdasarkan mode
	if cfg.MongoMode == "atlas" {
		if cfg.MongoURIAtlas == "" {
			return nil, errors.New("MONGO_MODE 'atlas' but MONGO_URI_ATLAS is not set")
		}
		cfg.MongoURI = cfg.MongoURIAtlas
	} else {
		cfg.MongoURI = cfg.MongoURILocal
	}

	// Atur Kunci Paseto
	if len(cfg.PasetoSecret) != 32 {
		return nil, errors.New("PASETO_SECRET_KEY must be 32 characters long!")
	}
	cfg.PasetoSecretKey = []byte(cfg.PasetoSecret)

	return &cfg, nil
}

// IsProduction bernilai true bila ENVIRONMENT=production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
