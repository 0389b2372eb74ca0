package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Telegram Telegram `envPrefix:"TELEGRAM_"`
	Store    Store
	Ledger   Ledger

	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8080"`
	Secret     string `env:"CRON_SECRET"`
	WebhookURL string `env:"DISCORD_WEBHOOK_URL"`
	BaseURL    string `env:"APP_URL" envDefault:"http://localhost:8080"`
	RemindAt   string `env:"REMIND_AT"` // HH:MM in TZ_NAME, empty disables the built-in scheduler
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

type Telegram struct {
	Token   string `env:"TOKEN"`
	ChatID  int64  `env:"CHAT_ID"`
	Timeout int    `env:"TIMEOUT" envDefault:"60"`
}

type Store struct {
	Driver           string `env:"STORE_DRIVER" envDefault:"postgres"`
	PostgresEndpoint string `env:"POSTGRES_ENDPOINT"`
	MongoURI         string `env:"MONGO_URI"`
	MongoDatabase    string `env:"MONGO_DATABASE" envDefault:"cashflow"`
}

type Ledger struct {
	WalletID     int64  `env:"WALLET_ID" envDefault:"1"`
	SafetyBuffer int64  `env:"SAFETY_BUFFER" envDefault:"0"` // used only when the wallet is provisioned
	WageAmount   int64  `env:"WAGE_AMOUNT" envDefault:"5040"`
	Timezone     string `env:"TZ_NAME" envDefault:"Asia/Tokyo"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load couldn't parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.PostgresEndpoint == "" {
			return fmt.Errorf("config: POSTGRES_ENDPOINT is required for the %s store", DriverPostgres)
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("config: MONGO_URI is required for the %s store", DriverMongo)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Ledger.WageAmount <= 0 {
		return fmt.Errorf("config: WAGE_AMOUNT must be positive, got %d", c.Ledger.WageAmount)
	}
	if c.Ledger.SafetyBuffer < 0 {
		return fmt.Errorf("config: SAFETY_BUFFER must not be negative, got %d", c.Ledger.SafetyBuffer)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the zone in which "today" is evaluated.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Ledger.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown TZ_NAME %q: %w", c.Ledger.Timezone, err)
	}
	return loc, nil
}

func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}
