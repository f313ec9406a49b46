package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/commerce-mesh/internal/api/http"
	"github.com/spec-kit/commerce-mesh/internal/api/http/handlers"
	"github.com/spec-kit/commerce-mesh/internal/auth"
	"github.com/spec-kit/commerce-mesh/internal/client"
	"github.com/spec-kit/commerce-mesh/internal/config"
	"github.com/spec-kit/commerce-mesh/internal/observability"
	"github.com/spec-kit/commerce-mesh/internal/persistence"
	"github.com/spec-kit/commerce-mesh/internal/repository"
	"github.com/spec-kit/commerce-mesh/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger, persistence.AuthSchema); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	credRepo := repository.NewCredentialRepository(pg.PoolHandle())
	userClient := client.NewUserClient(cfg.Services.UserURL, cfg.Auth.InternalSecret)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CredentialRepo: credRepo,
		UserClient:     userClient,
		Logger:         logger,
	})
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), cfg.Auth.InternalSecret, logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler("auth-service", cfg.App.Version, metrics,
		handlers.DependencyCheck{Name: "postgres", Ping: pg.Ping})
	authHandler := handlers.NewAuthHandler(authService)

	httptransport.RegisterAuthRoutes(app, healthHandler, authMiddleware, authHandler)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
