package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chucky-1/cashflow/internal/consumer"
	"github.com/chucky-1/cashflow/internal/producer"
	"github.com/chucky-1/cashflow/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server, the Telegram bot and the daily reminder",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ledger, err := newLedger(cfg, store)
	if err != nil {
		return err
	}
	bot, err := newTelegramBot(cfg)
	if err != nil {
		return err
	}
	reminder := newReminder(cfg, bot)

	var scheduler *producer.Scheduler
	if cfg.RemindAt != "" {
		at, err := producer.ParseClock(cfg.RemindAt)
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		scheduler = producer.NewScheduler(reminder, at, loc)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.NewHTTP(cfg.HTTPAddr, ledger, service.NewAuth(cfg.Secret), reminder).Consume(gctx)
	})

	if bot != nil {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = cfg.Telegram.Timeout
		updates := bot.GetUpdatesChan(u)
		g.Go(func() error {
			consumer.NewBot(bot, updates, ledger, cfg.Telegram.ChatID).Consume(gctx)
			bot.StopReceivingUpdates()
			return nil
		})
	}

	if scheduler != nil {
		scheduler.Produce(gctx)
	}

	err = g.Wait()
	logrus.Info("cashflow stopped")
	return err
}
