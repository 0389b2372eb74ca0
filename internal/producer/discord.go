package producer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chucky-1/cashflow/internal/model"
)

const (
	discordUsername = "給与管理Bot"
	discordColor    = 3066993 // green
	requestTimeout  = 10 * time.Second
	maxBodySize     = 1 << 16
)

var (
	ErrWebhookNotConfigured = errors.New("webhook URL not set")
	ErrDelivery             = errors.New("failed to send to Discord")
)

type webhookPayload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Color       int     `json:"color"`
	Fields      []field `json:"fields"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Discord posts reminders to a Discord webhook.
type Discord struct {
	webhookURL string
	http       *http.Client
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: requestTimeout},
	}
}

// Send makes exactly one POST. Any non-2xx answer is ErrDelivery.
func (d *Discord) Send(ctx context.Context, reminder *model.Reminder) error {
	if d.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	body, err := json.Marshal(newWebhookPayload(reminder))
	if err != nil {
		return fmt.Errorf("discord producer couldn't marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord producer couldn't create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}

func newWebhookPayload(reminder *model.Reminder) webhookPayload {
	return webhookPayload{
		Username: discordUsername,
		Embeds: []embed{
			{
				Title:       reminder.Title,
				Description: reminder.Description,
				URL:         reminder.Link,
				Color:       discordColor,
				Fields: []field{
					{
						Name:   "登録内容",
						Value:  fmt.Sprintf("¥%s (労働債権へ加算)", humanize.Comma(reminder.Amount)),
						Inline: true,
					},
				},
			},
		},
	}
}
