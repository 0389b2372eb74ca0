package consumer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/chucky-1/cashflow/internal/model"
	"github.com/chucky-1/cashflow/internal/repository"
)

const chatID = int64(42)

type fakeBot struct {
	sent chan tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent <- c.(tgbotapi.MessageConfig)
	return tgbotapi.Message{}, f.err
}

func newTestBot(t *testing.T) (*Bot, *fakeBot, chan tgbotapi.Update, *repository.LocalStorage) {
	t.Helper()
	storage := repository.NewLocalStorage()
	_, err := storage.ProvisionWallet(context.Background(), &model.Wallet{ID: 1, CurrentCash: 1000})
	require.NoError(t, err)

	fake := &fakeBot{sent: make(chan tgbotapi.MessageConfig, 10)}
	updates := make(chan tgbotapi.Update, 10)
	return &Bot{
		bot:         fake,
		updatesChan: updates,
		ledger:      newTestLedger(storage),
		chatID:      chatID,
	}, fake, updates, storage
}

func command(chat int64, text string) tgbotapi.Update {
	name, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 7,
			Text:      text,
			Chat:      &tgbotapi.Chat{ID: chat},
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
		},
	}
}

func TestBot_Handle(t *testing.T) {
	b, _, _, storage := newTestBot(t)
	ctx := context.Background()

	require.Equal(t, "Cash: ¥700", b.handle(ctx, spendCommand, "300"))
	require.Equal(t, "Cash: ¥1,950", b.handle(ctx, incomeCommand, " 1250 "))
	require.Equal(t, "Usage: /spend <amount>", b.handle(ctx, spendCommand, "a lot"))
	require.Equal(t, `invalid amount: failed "gt"`, b.handle(ctx, incomeCommand, "-5"))
	require.Equal(t, "1月分給与: ¥5,040 (due 2024-02-15)", b.handle(ctx, wageCommand, ""))
	require.Equal(t, helpMessage, b.handle(ctx, "help", ""))

	status := b.handle(ctx, statusCommand, "")
	require.Contains(t, status, "Cash: ¥1,950")
	require.Contains(t, status, "2024-02-15 1月分給与 ¥5,040")

	wallet, err := storage.GetWallet(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1950), wallet.CurrentCash)
}

func TestBot_Consume(t *testing.T) {
	b, fake, updates, storage := newTestBot(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Consume(ctx)

	updates <- command(99, "/spend 300")
	updates <- tgbotapi.Update{}
	updates <- command(chatID, "/spend 300")

	select {
	case reply := <-fake.sent:
		require.Equal(t, chatID, reply.ChatID)
		require.Equal(t, 7, reply.ReplyToMessageID)
		require.Equal(t, "Cash: ¥700", reply.Text)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply")
	}

	wallet, err := storage.GetWallet(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(700), wallet.CurrentCash)
	require.Empty(t, fake.sent)
}

func TestBot_ConsumeKeepsGoingOnSendError(t *testing.T) {
	b, fake, updates, _ := newTestBot(t)
	fake.err = errors.New("bad gateway")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Consume(ctx)

	updates <- command(chatID, "/wage")
	updates <- command(chatID, "/wage")

	for i := 0; i < 2; i++ {
		select {
		case <-fake.sent:
		case <-time.After(5 * time.Second):
			t.Fatal("no reply")
		}
	}
}

func TestFormatOverview(t *testing.T) {
	text := FormatOverview(&model.Overview{
		Wallet:      model.Wallet{ID: 1, CurrentCash: 120000},
		Receivables: []model.Receivable{{Title: "refund", Amount: 3000, DueDate: "2024-01-20"}},
		Payables:    []model.Payable{{Title: "card", Amount: 45000, DueDate: "2024-01-27"}},
		Projection: model.Projection{
			Cutoff:                  "2024-01-27",
			TotalReceivables:        3000,
			TotalPayables:           45000,
			CurrentDisposableIncome: 78000,
			ProjectedBalance:        78000,
			Risk:                    model.RiskSafe,
		},
	})

	require.Equal(t, "Cash: ¥120,000\n"+
		"Disposable: ¥78,000\n"+
		"Balance on 2024-01-27: ¥78,000 (safe)\n"+
		"\n"+
		"Receivables ¥3,000\n"+
		"  2024-01-20 refund ¥3,000\n"+
		"\n"+
		"Payables ¥45,000\n"+
		"  2024-01-27 card ¥45,000", text)
}
