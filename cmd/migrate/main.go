package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/repo/pgrepo"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/specialperiods"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/logger"
	"github.com/light-bringer/cleanbook-pricing/internal/services"
)

var (
	configPath  = flag.String("config", "", "Path to a config file (optional)")
	migrateDir  = flag.String("migrations", "migrations", "Directory containing Spanner migration SQL files; Postgres files live in its postgres/ subdirectory")
	seedPeriods = flag.Bool("seed-special-periods", false, "Store the configured special periods as a new calendar version after migrating")
	seedVersion = flag.Int64("seed-version", 1, "Calendar version written by -seed-special-periods")

	log         *zap.Logger
	spannerPath databasePath
)

// databasePath is a parsed projects/P/instances/I/databases/D name.
type databasePath struct {
	project, instance, database string
}

func parseDatabasePath(name string) (databasePath, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return databasePath{}, fmt.Errorf("malformed spanner database name %q", name)
	}
	return databasePath{project: parts[1], instance: parts[3], database: parts[5]}, nil
}

func (p databasePath) instanceName() string {
	return fmt.Sprintf("projects/%s/instances/%s", p.project, p.instance)
}

func (p databasePath) String() string {
	return fmt.Sprintf("%s/databases/%s", p.instanceName(), p.database)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log = logger.Must(logger.Config{Env: cfg.Env, Level: cfg.Log.Level, Service: "migrate"})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	if err := run(ctx, cfg); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("migrations completed successfully")
}

func run(ctx context.Context, cfg *config.Config) error {
	switch cfg.Storage.Driver {
	case config.DriverSpanner:
		if err := migrateSpanner(ctx, cfg); err != nil {
			return err
		}
	case config.DriverPostgres:
		if err := migratePostgres(ctx, cfg); err != nil {
			return err
		}
	}

	if *seedPeriods {
		return seedSpecialPeriods(ctx, cfg)
	}
	return nil
}

func migrateSpanner(ctx context.Context, cfg *config.Config) error {
	// Check if using emulator
	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		log.Info("using Spanner emulator", zap.String("host", emulatorHost))
	}

	var err error
	if spannerPath, err = parseDatabasePath(cfg.Spanner.Database); err != nil {
		return err
	}

	// Ensure instance exists
	if err := ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	// Apply migrations
	if err := applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// migratePostgres runs every file in <migrations>/postgres in name order. The
// statements are idempotent, so re-running is safe.
func migratePostgres(ctx context.Context, cfg *config.Config) error {
	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	files, err := migrationFiles(filepath.Join(*migrateDir, "postgres"))
	if err != nil {
		return err
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", filepath.Base(file), err)
		}
		log.Info("applied migration", zap.String("file", filepath.Base(file)))
	}
	return nil
}

// seedSpecialPeriods stores the configured calendar through the same provider the
// server reads, so any cached copy is invalidated.
func seedSpecialPeriods(ctx context.Context, cfg *config.Config) error {
	opts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer opts.Close()

	stored, err := opts.Repos.SpecialPeriods.Current(ctx)
	switch {
	case err == nil && stored.Version >= *seedVersion:
		log.Info("special periods already seeded", zap.Int64("version", stored.Version))
		return nil
	case err != nil && !errors.Is(err, domain.ErrSpecialPeriodConfigAbsent):
		return err
	}

	calendar, err := specialperiods.FromConfig(cfg.Pricing.SpecialPeriods)
	if err != nil {
		return err
	}
	calendar.Version = *seedVersion
	return opts.SpecialPeriods.Save(ctx, calendar)
}

func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func ensureInstance(ctx context.Context) error {
	log.Info("ensuring instance exists", zap.String("instance", spannerPath.instance))

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	// Check if instance exists
	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{
		Name: spannerPath.instanceName(),
	})

	if err == nil {
		log.Info("instance already exists")
		return nil
	}

	// Create instance if it doesn't exist
	if status.Code(err) == codes.NotFound {
		log.Info("creating instance")
		op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
			Parent:     fmt.Sprintf("projects/%s", spannerPath.project),
			InstanceId: spannerPath.instance,
			Instance: &instancepb.Instance{
				Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", spannerPath.project),
				DisplayName: "Development Instance",
				NodeCount:   1,
			},
		})
		if err != nil {
			// Ignore if already exists
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create instance: %w", err)
			}
			log.Info("instance already exists")
			return nil
		}

		// Don't wait too long on emulator
		if _, err := op.Wait(ctx); err != nil {
			// Emulator might complete immediately, ignore certain errors
			if status.Code(err) != codes.AlreadyExists {
				log.Warn("instance creation did not complete cleanly", zap.Error(err))
			}
		}

		log.Info("instance created")
		return nil
	}

	log.Warn("unexpected error checking instance", zap.Error(err))
	return nil
}

func ensureDatabase(ctx context.Context) error {
	log.Info("ensuring database exists", zap.String("database", spannerPath.database))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	// Check if database exists
	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{
		Name: spannerPath.String(),
	})

	if err == nil {
		log.Info("database already exists")
		return nil
	}

	// Create database if it doesn't exist
	if status.Code(err) == codes.NotFound {
		log.Info("creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          spannerPath.instanceName(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", spannerPath.database),
		})
		if err != nil {
			// Ignore if database already exists
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			log.Info("database already exists")
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}

		log.Info("database created")
		return nil
	}

	// For other errors on emulator, just proceed - the DB might exist
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		log.Warn("proceeding with database (emulator mode)", zap.Error(err))
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

func applyMigrations(ctx context.Context) error {
	log.Info("applying migrations", zap.String("dir", *migrateDir))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := migrationFiles(*migrateDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		log.Info("no migration files found")
		return nil
	}

	for _, file := range files {
		migrationName := filepath.Base(file)
		log.Info("applying migration", zap.String("file", migrationName))

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		// Split into individual DDL statements
		statements := splitDDLStatements(string(content))

		// Apply DDL statements
		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   spannerPath.String(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", migrationName, err)
		}

		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migrationName, err)
		}

		log.Info("applied migration", zap.String("file", migrationName))
	}

	return nil
}

func splitDDLStatements(content string) []string {
	// Remove comments and empty lines
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	content = strings.Join(cleaned, "\n")

	// Split by semicolon
	statements := strings.Split(content, ";")
	var result []string
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}
