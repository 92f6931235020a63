package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/inflowhq/authflow/notify/smtp"
)

type appConfig struct {
	Env             string
	Addr            string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	StoreDriver string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	PostgresDSN     string
	PostgresMigrate bool

	SMTP        smtp.Config
	SMTPEnabled bool

	ResetSubject          string
	EnforcePasswordPolicy bool
}

// loadConfig reads authflowd.yaml from the working directory (or the path in
// AUTHFLOW_CONFIG), with environment variables overriding file values under
// the AUTHFLOW_ prefix.
func loadConfig() (*appConfig, error) {
	v := viper.New()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.shutdown_timeout", "10s")
	v.SetDefault("app.metrics", true)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.prefix", "af")
	v.SetDefault("postgres.migrate", true)
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("reset.subject", "Password Reset Code")
	v.SetDefault("reset.enforce_password_policy", true)

	v.SetConfigName("authflowd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/authflow")

	v.SetEnvPrefix("AUTHFLOW")
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No file is fine; defaults and environment carry the config.
	}

	cfg := &appConfig{
		Env:             v.GetString("app.env"),
		Addr:            v.GetString("app.addr"),
		ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
		MetricsEnabled:  v.GetBool("app.metrics"),

		StoreDriver: v.GetString("store.driver"),

		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		RedisDB:       v.GetInt("redis.db"),
		RedisPrefix:   v.GetString("redis.prefix"),

		PostgresDSN:     v.GetString("postgres.dsn"),
		PostgresMigrate: v.GetBool("postgres.migrate"),

		SMTPEnabled: v.GetBool("smtp.enabled"),
		SMTP: smtp.Config{
			Host:        v.GetString("smtp.host"),
			Port:        v.GetInt("smtp.port"),
			Username:    v.GetString("smtp.username"),
			Password:    v.GetString("smtp.password"),
			SenderEmail: v.GetString("smtp.sender_email"),
			SenderName:  v.GetString("smtp.sender_name"),
		},

		ResetSubject:          v.GetString("reset.subject"),
		EnforcePasswordPolicy: v.GetBool("reset.enforce_password_policy"),
	}

	switch cfg.StoreDriver {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "postgres" && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres driver requires postgres.dsn")
	}

	return cfg, nil
}
