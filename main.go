package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"storefront-backend/auth"
	"storefront-backend/config"
	"storefront-backend/controllers"
	"storefront-backend/imagehost"
	"storefront-backend/logger"
	"storefront-backend/metrics"
	"storefront-backend/repository"
	"storefront-backend/routes"
	"storefront-backend/seed"
	"storefront-backend/store"
)

const (
	serviceName = "storefront-backend"
	version     = "1.0.0"
)

func main() {
	app := &cli.App{
		Name:    serviceName,
		Usage:   "storefront catalog and admin dashboard backend",
		Version: version,
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "create an admin account and demo data",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin-email", Usage: "admin account email", EnvVars: []string{"SEED_ADMIN_EMAIL"}},
					&cli.StringFlag{Name: "admin-password", Usage: "admin account password", EnvVars: []string{"SEED_ADMIN_PASSWORD"}},
					&cli.StringFlag{Name: "admin-name", Value: "Store Admin", Usage: "admin display name"},
					&cli.BoolFlag{Name: "products", Usage: "insert demo products"},
					&cli.BoolFlag{Name: "orders", Usage: "insert demo orders"},
				},
				Action: runSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Get().Fatal("application error", zap.Error(err))
	}
}

// bootstrap memuat konfigurasi, logger dan koneksi database.
func bootstrap() (*config.AppConfig, *zap.Logger, *mongo.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.Init(cfg.LogLevel, cfg.Env, serviceName)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to initialize logger")
	}

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, client, nil
}

func serve(c *cli.Context) error {
	cfg, log, client, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)

	cld, err := config.ConnectCloudinary(cfg.CloudinaryURL)
	if err != nil {
		return err
	}
	if cld == nil {
		log.Warn("CLOUDINARY_URL not set, image upload disabled")
	}

	m := metrics.New(cfg.MetricsPrefix)
	accounts := repository.NewAccountRepo(db.Collection("accounts"), db.Collection("users"))

	ctrl := &controllers.Controller{
		Products: store.NewProductStore(repository.NewProductRepo(db.Collection("products")), log, m),
		Orders:   store.NewOrderStore(repository.NewOrderRepo(db.Collection("orders")), log, m),
		Auth:     auth.NewProvider(accounts, cfg.LoginAttempts, cfg.LoginWindow),
		Accounts: accounts,
		Uploader: imagehost.NewUploader(
			imagehost.NewCloudinaryHost(cld, cfg.CloudinaryUploadPreset, cfg.CloudinaryFolder), log, m),
		Codec:   auth.NewCodec(cfg.PasetoSecretKey, cfg.SessionTTL),
		Metrics: m,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		RequestTimeout: cfg.RequestTimeout,
		TickInterval:   time.Second,
		SecureCookies:  cfg.SecureCookies || cfg.IsProduction(),
		Version:        version,
	}

	router := routes.Setup(ctrl, routes.Options{
		Env:          cfg.Env,
		AllowOrigins: cfg.AllowOrigins,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	log.Info("server exited")
	return nil
}

func runSeed(c *cli.Context) error {
	cfg, log, client, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)
	accounts := repository.NewAccountRepo(db.Collection("accounts"), db.Collection("users"))

	ctx, cancel := context.WithTimeout(c.Context, time.Minute)
	defer cancel()

	res, err := seed.Run(ctx, seed.Targets{
		Products: repository.NewProductRepo(db.Collection("products")),
		Orders:   repository.NewOrderRepo(db.Collection("orders")),
		Accounts: auth.NewProvider(accounts, cfg.LoginAttempts, cfg.LoginWindow),
	}, seed.Options{
		AdminEmail:    c.String("admin-email"),
		AdminPassword: c.String("admin-password"),
		AdminName:     c.String("admin-name"),
		Products:      c.Bool("products"),
		Orders:        c.Bool("orders"),
	}, log)
	if err != nil {
		return err
	}

	log.Info("seed finished",
		zap.Int("products", res.Products),
		zap.Int("orders", res.Orders),
		zap.Bool("admin_created", res.AdminCreated),
	)
	return nil
}
