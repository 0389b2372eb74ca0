// Package cmd is the cashflow command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chucky-1/cashflow/internal/config"
	"github.com/chucky-1/cashflow/internal/producer"
	"github.com/chucky-1/cashflow/internal/repository"
	"github.com/chucky-1/cashflow/internal/service"
)

const connectTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:          "cashflow",
	Short:        "Personal cash-flow tracker",
	Long:         "Track cash, receivables and payables, project the balance on the next payment date and book shift wages.",
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: unknown LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)
	return cfg, nil
}

// openStore connects the backend chosen by STORE_DRIVER. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (repository.Ledger, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Store.PostgresEndpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't create postgres pool: %w", err)
		}
		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("couldn't ping postgres: %w", err)
		}
		logrus.Info("connected to postgres")
		return repository.NewPostgres(pool), pool.Close, nil

	case config.DriverMongo:
		cli, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Store.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't connect to mongo: %w", err)
		}
		if err = cli.Ping(ctx, nil); err != nil {
			_ = cli.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("couldn't ping mongo: %w", err)
		}
		logrus.Info("connected to mongo")
		closeFn := func() {
			if err := cli.Disconnect(context.Background()); err != nil {
				logrus.Errorf("couldn't disconnect from mongo: %v", err)
			}
		}
		return repository.NewMongo(cli, cfg.Store.MongoDatabase), closeFn, nil
	}

	logrus.Warn("using in-memory store, nothing survives a restart")
	return repository.NewLocalStorage(), func() {}, nil
}

func newLedger(cfg *config.Config, store repository.Ledger) (*service.Ledger, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return service.NewLedger(store, store, store, validator.New(), service.Settings{
		WalletID:   cfg.Ledger.WalletID,
		WageAmount: cfg.Ledger.WageAmount,
		Location:   loc,
	}), nil
}

// newTelegramBot returns nil when Telegram isn't configured.
func newTelegramBot(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	if !cfg.TelegramEnabled() {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("couldn't create telegram bot: %w", err)
	}
	logrus.Infof("authorized on telegram account %s", bot.Self.UserName)
	return bot, nil
}

func newReminder(cfg *config.Config, bot *tgbotapi.BotAPI) *service.Reminder {
	var mirrors []service.Sink
	if bot != nil {
		mirrors = append(mirrors, producer.NewTelegram(bot, cfg.Telegram.ChatID))
	}
	return service.NewReminder(producer.NewDiscord(cfg.WebhookURL), cfg.BaseURL, cfg.Secret,
		cfg.Ledger.WageAmount, mirrors...)
}
