package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/shareit/config"
	"github.com/Eursukkul/shareit/internal/handler"
	"github.com/Eursukkul/shareit/internal/logging"
	"github.com/Eursukkul/shareit/internal/metrics"
	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/Eursukkul/shareit/pkg/database"
	"github.com/Eursukkul/shareit/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("SHAREIT_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := baseLogger.With().Str("component", "server").Logger()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("open database")
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var publisher service.EventPublisher
	if mq := initPublisher(cfg, &logger); mq != nil {
		defer mq.Close()
		publisher = mq
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	requestRepo := repository.NewItemRequestRepository(db)

	svcLogger := baseLogger.With().Str("component", "service").Logger()
	userSvc := service.NewUserService(userRepo)
	itemSvc := service.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, &svcLogger)
	bookingSvc := service.NewBookingService(bookingRepo, itemRepo, userRepo, publisher, &svcLogger)
	requestSvc := service.NewRequestService(requestRepo, userRepo)

	e := newEcho(cfg, redisClient, &logger)

	handler.NewUserHandler(userSvc).RegisterRoutes(e)
	handler.NewItemHandler(itemSvc, cfg.Server.UserHeader).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc, cfg.Server.UserHeader).RegisterRoutes(e)
	handler.NewRequestHandler(requestSvc, cfg.Server.UserHeader).RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("shareit server starting")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("http server stopped")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORS())

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		e.Use(middleware.Metrics())
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	if store := rateLimitStore(cfg, redisClient); store != nil {
		e.Use(middleware.RateLimiter(store, cfg.Server.UserHeader, logger))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": cfg.App.Name})
	})
	return e
}

// rateLimitStore prefers a shared Redis window so limits hold across
// replicas. Without Redis each process limits on its own.
func rateLimitStore(cfg *config.Config, redisClient *redis.Client) echoMw.RateLimiterStore {
	if cfg.RateLimit.RPS <= 0 {
		return nil
	}
	if redisClient != nil {
		limit := cfg.RateLimit.Burst
		if limit < 1 {
			limit = 1
		}
		return middleware.NewRedisRateLimiterStore(redisClient, limit, time.Second)
	}
	return middleware.NewMemoryStore(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func initPublisher(cfg *config.Config, logger *zerolog.Logger) *rabbitmq.Publisher {
	if cfg.RabbitMQ.URL == "" {
		logger.Warn().Msg("rabbitmq url not set, booking events will not be published")
		return nil
	}

	pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("rabbitmq connection failed, continuing without events")
		return nil
	}

	logger.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("rabbitmq connected")
	return pub
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}
