package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"deliveryhub/cmd"
	"deliveryhub/internal/adapters/out/postgres/directoryrepo"
	"deliveryhub/internal/adapters/out/postgres/memberrepo"
	"deliveryhub/internal/adapters/out/postgres/orderrepo"
	"deliveryhub/internal/adapters/out/rabbitmq"
	"deliveryhub/internal/adapters/out/redis"
	"deliveryhub/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err = migrate(gormDB, configs); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	if err = run(app, configs.HTTPPort, logger); err != nil {
		log.Fatalf("application stopped: %v", err)
	}
}

func getConfigs() cmd.Config {
	// Deployments set real environment variables; .env is a convenience for local runs.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:              envOr("HTTP_PORT", "8082"),
		DBHost:                envOr("DB_HOST", "localhost"),
		DBPort:                envOr("DB_PORT", "5432"),
		DBUser:                envOr("DB_USER", "postgres"),
		DBPassword:            envOr("DB_PASSWORD", "postgres"),
		DBName:                envOr("DB_NAME", "deliveryhub"),
		DBSslMode:             envOr("DB_SSLMODE", "disable"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		DirectoryCacheTTL:     durationOr("DIRECTORY_CACHE_TTL", redis.DefaultTTL),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		EventsExchange:        envOr("EVENTS_EXCHANGE", rabbitmq.DefaultExchange),
		SessionQueueSize:      intOr("SESSION_QUEUE_SIZE", 0),
		SessionIdleTimeout:    durationOr("SESSION_IDLE_TIMEOUT", jobs.DefaultSessionIdleTimeout),
		SessionSweepSchedule:  envOr("SESSION_SWEEP_SCHEDULE", jobs.DefaultSessionSweepSchedule),
		RegistryStatsSchedule: envOr("REGISTRY_STATS_SCHEDULE", jobs.DefaultRegistryStatsSchedule),
		SeedCatalog:           boolOr("SEED_CATALOG", false),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func intOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}

func boolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return b
}

func migrate(gormDB *gorm.DB, configs cmd.Config) error {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&memberrepo.MemberDTO{},
		&directoryrepo.ProductDTO{},
	)
	if err != nil {
		return err
	}
	if configs.SeedCatalog {
		return directoryrepo.SeedProducts(context.Background(), gormDB)
	}
	return nil
}

func run(app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return app.ConsumeEvents(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Close the registry first: hijacked websocket connections do not end with Shutdown.
		closeErr := app.Close()
		return errors.Join(e.Shutdown(shutdownCtx), closeErr)
	})

	return g.Wait()
}
