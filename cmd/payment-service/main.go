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
	"github.com/spec-kit/commerce-mesh/internal/config"
	"github.com/spec-kit/commerce-mesh/internal/events"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger, persistence.PaymentSchema); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()

	producer := events.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.PaymentCreatedTopic, logger)
	defer producer.Close()

	paymentRepo := repository.NewPaymentRepository(pg.PoolHandle())
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo: paymentRepo,
		Publisher:   producer,
		Metrics:     metrics,
		Logger:      logger,
	})

	consumer := events.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.OrderCreatedTopic, cfg.Kafka.ConsumerGroup, logger)
	defer consumer.Close()
	go consumer.Start(ctx, paymentService.HandleOrderCreated)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	authMiddleware := auth.NewMiddleware(tokens, cfg.Auth.InternalSecret, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler("payment-service", cfg.App.Version, metrics,
		handlers.DependencyCheck{Name: "postgres", Ping: pg.Ping})
	paymentsHandler := handlers.NewPaymentsHandler(paymentService)

	httptransport.RegisterPaymentRoutes(app, healthHandler, authMiddleware, paymentsHandler)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
