package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/countdown"
	"storefront-backend/guard"
	"storefront-backend/logger"
	"storefront-backend/models"
)

// ProductView adalah produk beserta harga efektif dan sisa waktu diskon.
type ProductView struct {
	models.Product
	OnSale             bool             `json:"on_sale"`
	EffectivePrice     float64          `json:"effective_price"`
	DiscountPercentage int              `json:"discount_percentage,omitempty"`
	Countdown          *countdown.State `json:"countdown,omitempty"`
}

func newProductView(p models.Product, now time.Time) ProductView {
	v := ProductView{
		Product:        p,
		OnSale:         p.OnSale(now),
		EffectivePrice: p.EffectivePrice(now),
	}
	if p.SalePrice != nil {
		v.DiscountPercentage = p.DiscountPercentage()
	}
	if p.SaleEndsAt != nil && p.SalePrice != nil {
		s := countdown.At(*p.SaleEndsAt, now)
		v.Countdown = &s
	}
	return v
}

func productViews(products []models.Product, now time.Time) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p, now))
	}
	return views
}

// StorefrontPage menampilkan katalog publik.
func (ctrl *Controller) StorefrontPage(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	if err := ctrl.Products.Fetch(ctx); err != nil {
		logger.FromGin(c).Warn("storefront served from cache", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     "storefront",
		"title":    "Welcome to Our Store",
		"products": productViews(ctrl.Products.Products(), time.Now()),
		"loading":  ctrl.Products.Loading(),
		"error":    ctrl.Products.Err(),
	})
}

// ProductPage menampilkan detail satu produk.
func (ctrl *Controller) ProductPage(c *gin.Context) {
	product, ok := ctrl.findProduct(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "product", "product": newProductView(product, time.Now())})
}

// LoginPage menampilkan form login.
func (ctrl *Controller) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login", "fields": []string{"email", "password"}})
}

// DashboardPage menampilkan ringkasan toko.
func (ctrl *Controller) DashboardPage(c *gin.Context) {
	overview, ok := ctrl.overview(c)
	if !ok {
		return
	}
	user, _ := guard.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"page": "dashboard", "user": user, "overview": overview})
}

// DashboardProductsPage menampilkan tabel produk untuk dikelola.
func (ctrl *Controller) DashboardProductsPage(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	if err := ctrl.Products.Fetch(ctx); err != nil {
		logger.FromGin(c).Warn("products page served from cache", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{
		"page":      "products",
		"products":  productViews(ctrl.Products.Products(), time.Now()),
		"loading":   ctrl.Products.Loading(),
		"uploading": ctrl.Uploader.Uploading(),
		"error":     ctrl.Products.Err(),
	})
}

// DashboardOrdersPage menampilkan pesanan dengan filter status.
func (ctrl *Controller) DashboardOrdersPage(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	if err := ctrl.Orders.Fetch(ctx); err != nil {
		logger.FromGin(c).Warn("orders page served from cache", zap.Error(err))
	}

	filter := c.DefaultQuery("status", "all")
	orderList := ctrl.Orders.Filter(filter)
	c.JSON(http.StatusOK, gin.H{
		"page":     "orders",
		"filter":   filter,
		"statuses": []models.OrderStatus{models.OrderPending, models.OrderProcessing, models.OrderShipped, models.OrderDelivered, models.OrderCancelled},
		"orders":   orderList,
		"summary":  models.Summarize(orderList),
		"error":    ctrl.Orders.Err(),
	})
}

// DashboardSettingsPage menampilkan informasi akun.
func (ctrl *Controller) DashboardSettingsPage(c *gin.Context) {
	user, _ := guard.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"page": "settings", "user": user, "version": ctrl.Version})
}
