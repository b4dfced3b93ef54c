package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/auth"
	"storefront-backend/imagehost"
	"storefront-backend/logger"
	"storefront-backend/metrics"
	"storefront-backend/models"
	"storefront-backend/store"
)

// AccountDirectory adalah daftar akun untuk halaman pengaturan admin.
type AccountDirectory interface {
	List(ctx context.Context) ([]models.Account, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Controller menampung dependensi yang akan digunakan oleh semua handler.
type Controller struct {
	Products *store.ProductStore
	Orders   *store.OrderStore
	Auth     *auth.Provider
	Accounts AccountDirectory
	Uploader *imagehost.Uploader
	Codec    *auth.Codec
	Metrics  *metrics.Metrics

	// Ping memeriksa koneksi database untuk health check.
	Ping func(ctx context.Context) error

	RequestTimeout time.Duration
	TickInterval   time.Duration
	SecureCookies  bool
	Version        string
}

func (ctrl *Controller) timeout(c *gin.Context) (context.Context, context.CancelFunc) {
	d := ctrl.RequestTimeout
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), d)
}

func (ctrl *Controller) authStore(c *gin.Context) (*auth.Store, *auth.CookiePersister) {
	persister := auth.NewCookiePersister(c, ctrl.Codec, ctrl.SecureCookies)
	return auth.NewStore(ctrl.Auth, persister, logger.FromGin(c), ctrl.Metrics), persister
}

func objectID(c *gin.Context, invalid string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError memetakan error store ke status HTTP.
func respondError(c *gin.Context, err error, message, notFound string) {
	var fe models.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fe})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, models.ErrImageRequired),
		errors.Is(err, models.ErrEmptyUpdate),
		errors.Is(err, models.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
	case errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": message})
	default:
		logger.FromGin(c).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

// bindValid membaca body JSON lalu menjalankan validasi struct.
func bindValid(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if err := models.Validate(v); err != nil {
		respondError(c, err, err.Error(), "")
		return false
	}
	return true
}
