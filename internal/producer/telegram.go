package producer

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chucky-1/cashflow/internal/model"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram mirrors reminders into a single chat.
type Telegram struct {
	bot    sender
	chatID int64
}

func NewTelegram(bot *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
	}
}

func (t *Telegram) Send(_ context.Context, reminder *model.Reminder) error {
	message := tgbotapi.NewMessage(t.chatID, reminderText(reminder))
	message.DisableWebPagePreview = true
	if _, err := t.bot.Send(message); err != nil {
		return fmt.Errorf("telegram producer couldn't send reminder: %w", err)
	}
	return nil
}

func reminderText(reminder *model.Reminder) string {
	return fmt.Sprintf("%s\n%s\n\n¥%s (労働債権へ加算)\n%s",
		reminder.Title, reminder.Description, humanize.Comma(reminder.Amount), reminder.Link)
}
