package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/cashflow/internal/model"
)

const (
	reminderTitle       = "✅ シフト実績を登録する"
	reminderDescription = "お疲れ様でした！\n下のリンクをタップすると即座に登録されます。"
	quickAddPath        = "/api/quick-add"
)

// Sink delivers a reminder to a chat service.
type Sink interface {
	Send(ctx context.Context, reminder *model.Reminder) error
}

// Reminder asks to book the wage of a worked shift through a one-tap link.
type Reminder struct {
	primary    Sink
	mirrors    []Sink
	baseURL    string
	secret     string
	wageAmount int64
}

// NewReminder delivers through primary; mirrors are best effort.
func NewReminder(primary Sink, baseURL, secret string, wageAmount int64, mirrors ...Sink) *Reminder {
	return &Reminder{
		primary:    primary,
		mirrors:    mirrors,
		baseURL:    baseURL,
		secret:     secret,
		wageAmount: wageAmount,
	}
}

func (r *Reminder) Build() *model.Reminder {
	link := strings.TrimSuffix(r.baseURL, "/") + quickAddPath + "?" + url.Values{"key": {r.secret}}.Encode()
	return &model.Reminder{
		Title:       reminderTitle,
		Description: reminderDescription,
		Link:        link,
		Amount:      r.wageAmount,
	}
}

// Send fails only when the primary sink fails. No retries.
func (r *Reminder) Send(ctx context.Context) error {
	reminder := r.Build()
	if err := r.primary.Send(ctx, reminder); err != nil {
		return err
	}
	for _, mirror := range r.mirrors {
		if err := mirror.Send(ctx, reminder); err != nil {
			logrus.Errorf("reminder mirror couldn't send: %v", err)
		}
	}
	logrus.Info("reminder sent")
	return nil
}
