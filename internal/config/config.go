package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN     string        `env:"DATABASE_DSN" envDefault:"tracker.db"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	Auth            Auth
	Telegram        Telegram
	Log             Log
}

type Auth struct {
	// Enabled=false serves everybody as a single local owner.
	Enabled  bool          `env:"AUTH_ENABLED" envDefault:"true"`
	Secret   string        `env:"JWT_SECRET"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"72h"`
}

type Telegram struct {
	Token   string `env:"TG_TOKEN"`
	Timeout int    `env:"TG_TIMEOUT" envDefault:"60"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config.Load, read .env error: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load, parse env error: %w", err)
	}
	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return nil, errors.New("config.Load: JWT_SECRET is required when AUTH_ENABLED is true")
	}
	return cfg, nil
}

// SetupLogger applies the log level and format to the standard logrus logger.
func (c *Config) SetupLogger() error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("config.SetupLogger: %w", err)
	}
	logrus.SetLevel(level)
	if c.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
