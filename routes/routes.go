package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/controllers"
	"storefront-backend/guard"
	"storefront-backend/logger"
)

// Options mengatur bagian router yang bergantung pada environment.
type Options struct {
	Env          string
	AllowOrigins []string
	Logger       *zap.Logger
}

// Setup mengonfigurasi dan mengembalikan Gin engine.
func Setup(ctrl *controllers.Controller, opts Options) *gin.Engine {
	if opts.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(opts.Logger))
	if ctrl.Metrics != nil {
		r.Use(ctrl.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(ctrl.Metrics.Handler()))
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = opts.AllowOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = !config.AllowAllOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", logger.RequestIDHeader}
	config.ExposeHeaders = []string{logger.RequestIDHeader}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		// Rute utilitas
		api.GET("/health", ctrl.HealthCheck)

		// Rute otentikasi
		api.POST("/login", ctrl.Login)
		api.POST("/logout", ctrl.Logout)
		api.GET("/session", ctrl.Session)

		// Rute katalog publik
		api.GET("/storefront", ctrl.StorefrontPage)
		api.GET("/products", ctrl.GetProducts)
		api.GET("/products/:id", ctrl.GetProduct)
		api.GET("/products/:id/countdown", ctrl.ProductCountdown)
	}

	protected := api.Group("", guard.RequireSession(ctrl.Codec))
	{
		// Rute produk
		protected.POST("/products", ctrl.CreateProduct)
		protected.PUT("/products/:id", ctrl.UpdateProduct)
		protected.DELETE("/products/:id", ctrl.DeleteProduct)
		protected.POST("/upload", ctrl.UploadImage)

		// Rute pesanan
		protected.GET("/orders", ctrl.GetOrders)
		protected.PUT("/orders/:id/status", ctrl.UpdateOrderStatus)

		// Rute dashboard
		protected.GET("/dashboard/overview", ctrl.DashboardOverview)
		protected.GET("/dashboard/status", ctrl.DashboardStatus)

		// Rute akun
		protected.POST("/register", ctrl.Register)
		protected.GET("/accounts", ctrl.GetAccounts)
		protected.DELETE("/accounts/:id", ctrl.DeleteAccount)
	}

	pages := r.Group("/", guard.Pages(ctrl.Codec))
	{
		pages.GET("/", ctrl.StorefrontPage)
		pages.GET("/product/:id", ctrl.ProductPage)
		pages.GET("/login", ctrl.LoginPage)
		pages.GET("/dashboard", ctrl.DashboardPage)
		pages.GET("/dashboard/products", ctrl.DashboardProductsPage)
		pages.GET("/dashboard/orders", ctrl.DashboardOrdersPage)
		pages.GET("/dashboard/settings", ctrl.DashboardSettingsPage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
