package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/relay_outbox"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/logger"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/publisher"
	"github.com/light-bringer/cleanbook-pricing/internal/services"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (optional)")
	once := flag.Bool("once", false, "Relay a single batch and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.Config{Env: cfg.Env, Level: cfg.Log.Level, Service: "relay-outbox"})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *once); err != nil {
		log.Fatal("outbox relay failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, once bool) error {
	if cfg.SQS.QueueURL == "" {
		return errors.New("sqs.queue_url is required")
	}

	opts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer opts.Close()

	pub, err := publisher.NewSQSPublisherFromEnv(ctx, cfg.SQS.Region, cfg.SQS.QueueURL)
	if err != nil {
		return err
	}

	relay := relay_outbox.NewInteractor(opts.Repos.Outbox, pub, relay_outbox.Config{
		BatchSize:          cfg.Outbox.BatchSize,
		CompletedRetention: cfg.Outbox.CompletedRetention,
		FailedRetention:    cfg.Outbox.FailedRetention,
	}, opts.Clock, log)

	if once {
		_, err := relay.Execute(ctx)
		return err
	}

	log.Info("relaying outbox events",
		zap.String("queue_url", cfg.SQS.QueueURL),
		zap.Duration("poll_interval", cfg.Outbox.PollInterval),
	)

	ticker := time.NewTicker(cfg.Outbox.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := relay.Execute(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Storage errors are retried on the next tick.
			log.Error("relay pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
		}
	}
}
