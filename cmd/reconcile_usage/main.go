package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/recalculate_usage"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/logger"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/reportstore"
	"github.com/light-bringer/cleanbook-pricing/internal/services"
)

// Options for the reconciliation job
type Options struct {
	ConfigPath string
	CouponID   string
	Upload     bool
}

func main() {
	var opts Options
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a config file (optional)")
	flag.StringVar(&opts.CouponID, "coupon", "", "Recount a single coupon instead of all coupons")
	flag.BoolVar(&opts.Upload, "upload", false, "Upload the drift report to object storage (requires minio.endpoint)")
	flag.Parse()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.Config{Env: cfg.Env, Level: cfg.Log.Level, Service: "reconcile-usage"})
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log, opts); err != nil {
		log.Fatal("reconciliation failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) error {
	svc, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svc.Close()

	report, err := svc.RecalculateUsage.Execute(ctx, &recalculate_usage.Request{CouponID: opts.CouponID})
	if err != nil {
		return err
	}

	if !opts.Upload {
		return nil
	}
	return uploadReport(ctx, cfg.Minio, log, report)
}

func uploadReport(ctx context.Context, mc config.MinioConfig, log *zap.Logger, report *recalculate_usage.Report) error {
	if mc.Endpoint == "" {
		return fmt.Errorf("minio.endpoint is required to upload reports")
	}
	store, err := reportstore.NewMinioStore(ctx, reportstore.Options{
		Endpoint:  mc.Endpoint,
		AccessKey: mc.AccessKey,
		SecretKey: mc.SecretKey,
		Bucket:    mc.Bucket,
		UseSSL:    mc.UseSSL,
	})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("usage-reconcile/%s.json", report.GeneratedAt.UTC().Format("20060102T150405Z"))
	location, err := store.PutJSON(ctx, name, report)
	if err != nil {
		return err
	}
	log.Info("drift report uploaded", zap.String("object", location), zap.Int("drifted", len(report.Drifted)))
	return nil
}
