package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/diogoviieira/register-track-bot/internal/amqp"
	"github.com/diogoviieira/register-track-bot/internal/catalog"
	"github.com/diogoviieira/register-track-bot/internal/config"
	"github.com/diogoviieira/register-track-bot/internal/engine"
	"github.com/diogoviieira/register-track-bot/internal/log"
	"github.com/diogoviieira/register-track-bot/internal/services"
	"github.com/diogoviieira/register-track-bot/internal/session"
	"github.com/diogoviieira/register-track-bot/internal/storage"
	"github.com/diogoviieira/register-track-bot/internal/telegram"
)

func main() {
	// Load .env for local development; ignore errors in production.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	logger.Info("Starting finance-bot", log.FieldOperation, log.OpStartup)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open ledger database",
			log.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", log.FieldError, err.Error())
			os.Exit(1)
		}
		publisher = client
		logger.Info("Entry events enabled",
			log.FieldExchange, cfg.AMQPExchange,
			log.FieldQueue, cfg.AMQPQueue)
	} else {
		logger.Info("Entry events disabled, no AMQP_URL provided")
	}

	ledger := services.NewLedgerService(store, publisher, logger)
	defer ledger.Close()

	transport, err := telegram.New(cfg.BotToken, logger)
	if err != nil {
		logger.Error("Failed to create Telegram transport", log.FieldError, err.Error())
		os.Exit(1)
	}

	eng := engine.New(ledger, catalog.Default(), session.NewStore(), transport, logger)
	transport.SetHandler(eng)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return transport.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("Shutdown complete", log.FieldOperation, log.OpShutdown)
}
