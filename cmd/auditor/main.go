package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Eursukkul/shareit/config"
	"github.com/Eursukkul/shareit/internal/consumer"
	"github.com/Eursukkul/shareit/internal/events"
	"github.com/Eursukkul/shareit/internal/logging"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/Eursukkul/shareit/pkg/database"
	"github.com/Eursukkul/shareit/pkg/rabbitmq"
)

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
	if cfg.RabbitMQ.URL == "" {
		return errors.New("rabbitmq url is required for the auditor")
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := baseLogger.With().Str("component", "auditor").Logger()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("open database")
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	mq, err := rabbitmq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, events.BookingPattern, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("connect to rabbitmq")
		return err
	}
	defer mq.Close()

	msgs, err := mq.Consume()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.NewAuditConsumer(repository.NewAuditRepository(db), &logger).Run(ctx, msgs)
	return nil
}
