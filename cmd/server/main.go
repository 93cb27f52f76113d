package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/logger"
	"github.com/light-bringer/cleanbook-pricing/internal/services"
	"github.com/light-bringer/cleanbook-pricing/internal/transport/grpc/pricing"
)

var configPath = flag.String("config", "", "Path to a config file (optional)")

func main() {
	flag.Parse()

	// 1. Load configuration from config file, .env and environment variables
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(logger.Config{Env: cfg.Env, Level: cfg.Log.Level, Service: "pricing-server"})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("failed to run server", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	log.Info("starting pricing service",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("grpc_port", cfg.GRPC.Port),
		zap.String("bulk_policy", cfg.Pricing.BulkPolicy),
		zap.String("option_policy", cfg.Pricing.OptionPolicy),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(pricing.LoggingInterceptor(log)))

	// 4. Register services
	pricing.RegisterPricingServiceServer(grpcServer, serviceOpts.PricingHandler)

	// 5. Enable reflection (service listing for grpcurl)
	if cfg.GRPC.Reflection {
		reflection.Register(grpcServer)
	}

	// 6. Start gRPC server listening
	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		serveErr <- grpcServer.Serve(lis)
	}()

	// 7. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down gracefully", zap.String("signal", sig.String()))
		grpcServer.GracefulStop()
		return nil
	case err := <-serveErr:
		return fmt.Errorf("gRPC server error: %w", err)
	}
}
