// Package server boots the application: config, logging, storage,
// database, cache, queue workers, and the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/suby/app/controllers"
	"github.com/shashiranjanraj/suby/app/jobs"
	"github.com/shashiranjanraj/suby/app/repositories"
	"github.com/shashiranjanraj/suby/app/routes"
	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/config"
	"github.com/shashiranjanraj/suby/pkg/auth"
	"github.com/shashiranjanraj/suby/pkg/cache"
	"github.com/shashiranjanraj/suby/pkg/database"
	"github.com/shashiranjanraj/suby/pkg/logger"
	"github.com/shashiranjanraj/suby/pkg/metrics"
	"github.com/shashiranjanraj/suby/pkg/middleware"
	"github.com/shashiranjanraj/suby/pkg/queue"
	"github.com/shashiranjanraj/suby/pkg/reqid"
	"github.com/shashiranjanraj/suby/pkg/router"
	"github.com/shashiranjanraj/suby/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx, cfg); err != nil {
		return err
	}
	defer func() { _ = database.Disconnect(context.Background()) }()

	setupLogging(cfg)

	if err := cache.Connect(cfg); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
	}

	storage.Connect(cfg)

	if cfg.QueueDriver == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseMongo(database.DB().Collection(database.ColFailedJobs))
	jobs.Register()
	queue.StartWorkers(ctx, cfg.QueueWorkers)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           buildRouter(cfg).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("suby listening", "addr", srv.Addr, "env", cfg.AppEnv)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupLogging configures the global logger, adding the async Mongo sink
// when enabled. Must run after database.Connect.
func setupLogging(cfg *config.Config) {
	if !cfg.LogToMongo {
		logger.Setup(cfg.AppEnv)
		return
	}
	sink, err := logger.NewMongoHandler(database.DB().Collection("logs"))
	if err != nil {
		logger.Setup(cfg.AppEnv)
		logger.Warn("mongo log sink disabled", "error", err)
		return
	}
	logger.Setup(cfg.AppEnv, sink)
}

// buildRouter wires repositories, services, controllers, and the
// middleware chain. Requires a connected database.
func buildRouter(cfg *config.Config) *router.Router {
	db := database.DB()

	vendorRepo := repositories.NewVendorRepository(db)
	firmRepo := repositories.NewFirmRepository(db)
	productRepo := repositories.NewProductRepository(db)
	tx := repositories.NewTxRunner(database.Client(), cfg.MongoTransactions)

	tokens := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	assets := jobs.AssetCleaner{}

	authService := services.NewAuthService(vendorRepo, firmRepo, productRepo, tokens)
	vendorService := services.NewVendorService(vendorRepo, firmRepo, productRepo)
	firmService := services.NewFirmService(vendorRepo, firmRepo, productRepo, tx, assets)
	productService := services.NewProductService(firmRepo, productRepo, tx, assets)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Vendor:  controllers.NewVendorController(authService, vendorService),
		Firm:    controllers.NewFirmController(firmService),
		Product: controllers.NewProductController(productService),
	}, middleware.Auth(tokens, vendorRepo))

	return r
}

// Routes returns the registered route table, used by the route:list command.
func Routes() ([]string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := database.Connect(context.Background(), cfg); err != nil {
		return nil, err
	}
	defer func() { _ = database.Disconnect(context.Background()) }()

	return buildRouter(cfg).Routes(), nil
}
