// Command authflowd serves the account authentication API over HTTP.
//
// The store backend (memory, redis, or postgres), the SMTP notifier, and the
// listen address come from authflowd.yaml or AUTHFLOW_* environment
// variables. Metrics are exposed at /metrics in Prometheus text format.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	authflow "github.com/inflowhq/authflow"
	"github.com/inflowhq/authflow/httpapi"
	"github.com/inflowhq/authflow/metrics/export/prometheus"
	"github.com/inflowhq/authflow/notify/smtp"
	memorystore "github.com/inflowhq/authflow/store/memory"
	postgresstore "github.com/inflowhq/authflow/store/postgres"
	redisstore "github.com/inflowhq/authflow/store/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "authflowd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	store, cleanup, err := openStore(cfg, sugar)
	if err != nil {
		return err
	}
	defer cleanup()

	notifier, err := openNotifier(cfg, sugar)
	if err != nil {
		return err
	}

	engineCfg := authflow.DefaultConfig()
	engineCfg.Reset.MailSubject = cfg.ResetSubject
	engineCfg.Reset.EnforcePasswordPolicy = cfg.EnforcePasswordPolicy
	engineCfg.Metrics.Enabled = cfg.MetricsEnabled

	engine, err := authflow.New().
		WithConfig(engineCfg).
		WithStore(store).
		WithNotifier(notifier).
		Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	app := httpapi.New(engine, sugar)
	if cfg.MetricsEnabled {
		exporter := prometheus.NewExporter(engine)
		app.Get("/metrics", adaptor.HTTPHandler(exporter.Handler()))
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
		errCh <- app.Listen(cfg.Addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		sugar.Infow("shutting down", "signal", sig.String())
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func openStore(cfg *appConfig, sugar *zap.SugaredLogger) (authflow.AccountStore, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		sugar.Warn("memory store selected; accounts do not survive restart")
		return memorystore.NewStore(), func() {}, nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.NewStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil

	case "postgres":
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres ping: %w", err)
		}
		if cfg.PostgresMigrate {
			if err := postgresstore.RunMigrations(context.Background(), db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return postgresstore.NewStore(db), func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func openNotifier(cfg *appConfig, sugar *zap.SugaredLogger) (authflow.Notifier, error) {
	if cfg.SMTPEnabled {
		return smtp.NewNotifier(cfg.SMTP, sugar)
	}
	sugar.Warn("smtp disabled; reset codes are logged instead of mailed")
	return logNotifier{sugar: sugar}, nil
}

// logNotifier stands in for SMTP in development setups.
type logNotifier struct {
	sugar *zap.SugaredLogger
}

func (n logNotifier) Send(_ context.Context, to, subject, htmlBody string) error {
	n.sugar.Infow("mail (not sent)", "to", to, "subject", subject, "body", htmlBody)
	return nil
}
