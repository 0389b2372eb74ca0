// Package consumer receives requests from the outside: HTTP and Telegram.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/cashflow/internal/model"
	"github.com/chucky-1/cashflow/internal/service"
)

const (
	statusCommand = "status"
	spendCommand  = "spend"
	incomeCommand = "income"
	wageCommand   = "wage"
)

const helpMessage = "/status - current overview\n" +
	"/spend <amount> - cash out\n" +
	"/income <amount> - cash in\n" +
	"/wage - book one shift"

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers ledger commands in a single configured chat.
type Bot struct {
	bot         sender
	updatesChan tgbotapi.UpdatesChannel
	ledger      *service.Ledger
	chatID      int64
}

func NewBot(bot *tgbotapi.BotAPI, updatesChan tgbotapi.UpdatesChannel, ledger *service.Ledger, chatID int64) *Bot {
	return &Bot{
		bot:         bot,
		updatesChan: updatesChan,
		ledger:      ledger,
		chatID:      chatID,
	}
}

func (b *Bot) Consume(ctx context.Context) {
	logrus.Infof("telegram bot started consuming for chat %d", b.chatID)

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("telegram bot stopped: %v", ctx.Err())
			return

		case update, ok := <-b.updatesChan:
			if !ok {
				logrus.Info("telegram bot updates channel closed")
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if update.Message.Chat.ID != b.chatID {
				logrus.Warnf("telegram bot ignored command from chat %d", update.Message.Chat.ID)
				continue
			}

			reply := b.handle(ctx, update.Message.Command(), update.Message.CommandArguments())
			if err := b.sendMessage(update.Message, reply); err != nil {
				logrus.Error(err)
			}
		}
	}
}

func (b *Bot) handle(ctx context.Context, command, args string) string {
	newCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	switch command {
	case statusCommand:
		overview, err := b.ledger.Overview(newCtx)
		if err != nil {
			logrus.Errorf("telegram bot couldn't load overview: %v", err)
			return "Couldn't load the overview"
		}
		return FormatOverview(overview)

	case spendCommand, incomeCommand:
		amount, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
		if err != nil {
			return fmt.Sprintf("Usage: /%s <amount>", command)
		}
		direction := service.DirectionIncome
		if command == spendCommand {
			direction = service.DirectionSpend
		}
		wallet, err := b.ledger.UpdateCash(newCtx, service.CashInput{Direction: direction, Amount: amount})
		if err != nil {
			return errorReply(err)
		}
		return fmt.Sprintf("Cash: ¥%s", humanize.Comma(wallet.CurrentCash))

	case wageCommand:
		r, _, err := b.ledger.BookWage(newCtx)
		if err != nil {
			return errorReply(err)
		}
		return fmt.Sprintf("%s: ¥%s (due %s)", r.Title, humanize.Comma(r.Amount), r.DueDate)
	}
	return helpMessage
}

func errorReply(err error) string {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	logrus.Errorf("telegram bot command failed: %v", err)
	return "Something went wrong, try again later"
}

// FormatOverview renders the overview as plain text.
func FormatOverview(o *model.Overview) string {
	var sb strings.Builder
	p := o.Projection
	fmt.Fprintf(&sb, "Cash: ¥%s\n", humanize.Comma(o.Wallet.CurrentCash))
	fmt.Fprintf(&sb, "Disposable: ¥%s\n", humanize.Comma(p.CurrentDisposableIncome))
	fmt.Fprintf(&sb, "Balance on %s: ¥%s (%s)\n", p.Cutoff, humanize.Comma(p.ProjectedBalance), p.Risk)

	fmt.Fprintf(&sb, "\nReceivables ¥%s\n", humanize.Comma(p.TotalReceivables))
	for _, r := range o.Receivables {
		fmt.Fprintf(&sb, "  %s %s ¥%s\n", r.DueDate, r.Title, humanize.Comma(r.Amount))
	}
	fmt.Fprintf(&sb, "\nPayables ¥%s\n", humanize.Comma(p.TotalPayables))
	for _, pb := range o.Payables {
		fmt.Fprintf(&sb, "  %s %s ¥%s\n", pb.DueDate, pb.Title, humanize.Comma(pb.Amount))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *Bot) sendMessage(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID

	if _, err := b.bot.Send(msg); err != nil {
		return fmt.Errorf("sendMessage, telegram bot couldn't send message: %v", err)
	}
	return nil
}
