package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alfaraz/spareparts/internal/config"
	"alfaraz/spareparts/internal/handler"
	"alfaraz/spareparts/internal/logger"
	"alfaraz/spareparts/internal/repository"
	"alfaraz/spareparts/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	// 2. Setup Database
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		zl.Fatal("Failed to ping database", zap.Error(err))
	}
	zl.Info("Connected to database")

	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		zl.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 3. Setup Logic
	repo := repository.New(dbPool)
	authService := service.NewAuthService(repo)
	catalogService := service.NewCatalogService(repo)
	checkoutService := service.NewCheckoutService(repo, cfg.Checkout)
	orderService := service.NewOrderService(repo)

	if err := authService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zl.Fatal("Failed to seed admin", zap.Error(err))
	}
	zl.Info("Admin credential present", zap.String("username", cfg.AdminUsername))

	h := handler.NewHandler(zl, authService, catalogService, checkoutService, orderService, cfg.FrontendDir)

	// 4. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 5. Run Server with Graceful Shutdown
	go func() {
		zl.Info("Starting server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exiting")
}
