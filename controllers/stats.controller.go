package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/logger"
	"storefront-backend/models"
	"storefront-backend/store"
)

// HealthCheck memeriksa status koneksi database.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	if ctrl.Ping == nil || ctrl.Ping(ctx) != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"version":   ctrl.Version,
		"timestamp": time.Now().Unix(),
	})
}

// DashboardOverview menghitung ringkasan produk dan pesanan untuk dashboard.
func (ctrl *Controller) DashboardOverview(c *gin.Context) {
	overview, ok := ctrl.overview(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"overview": overview})
}

// DashboardStatus melaporkan flag loading dan error terakhir setiap store.
func (ctrl *Controller) DashboardStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": gin.H{
			"loading": ctrl.Products.Loading(),
			"loaded":  ctrl.Products.Loaded(),
			"error":   ctrl.Products.Err(),
			"count":   len(ctrl.Products.Products()),
		},
		"orders": gin.H{
			"loading": ctrl.Orders.Loading(),
			"error":   ctrl.Orders.Err(),
			"count":   len(ctrl.Orders.Orders()),
		},
		"uploading": ctrl.Uploader.Uploading(),
	})
}

func (ctrl *Controller) overview(c *gin.Context) (models.Overview, bool) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	if err := ctrl.Products.Fetch(ctx); err != nil {
		respondError(c, err, store.Message(err, "Product not found"), "Product not found")
		return models.Overview{}, false
	}
	// Ringkasan tetap dikirim walau pesanan gagal dimuat.
	if err := ctrl.Orders.Fetch(ctx); err != nil {
		logger.FromGin(c).Warn("orders unavailable for overview", zap.Error(err))
	}

	return models.BuildOverview(ctrl.Products.Products(), ctrl.Orders.Orders(), time.Now()), true
}
