package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chucky-1/cashflow/internal/model"
)

type sinkFunc func(ctx context.Context, reminder *model.Reminder) error

func (f sinkFunc) Send(ctx context.Context, reminder *model.Reminder) error {
	return f(ctx, reminder)
}

func TestReminder_Build(t *testing.T) {
	testTable := []struct {
		name    string
		baseURL string
		secret  string
		link    string
	}{
		{
			name:    "Trailing slash",
			baseURL: "https://cash.example.com/",
			secret:  "s3cret",
			link:    "https://cash.example.com/api/quick-add?key=s3cret",
		},
		{
			name:    "Secret is escaped",
			baseURL: "https://cash.example.com",
			secret:  "a b&c",
			link:    "https://cash.example.com/api/quick-add?key=a+b%26c",
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			r := NewReminder(nil, testCase.baseURL, testCase.secret, 5040).Build()
			require.Equal(t, testCase.link, r.Link)
			require.Equal(t, int64(5040), r.Amount)
			require.Equal(t, reminderTitle, r.Title)
		})
	}
}

func TestReminder_Send(t *testing.T) {
	var primaryCalls, mirrorCalls int
	primary := sinkFunc(func(_ context.Context, r *model.Reminder) error {
		primaryCalls++
		return nil
	})
	failingMirror := sinkFunc(func(_ context.Context, r *model.Reminder) error {
		mirrorCalls++
		return errors.New("telegram is down")
	})

	err := NewReminder(primary, "https://cash.example.com", "s3cret", 5040, failingMirror).Send(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, primaryCalls)
	require.Equal(t, 1, mirrorCalls)
}

func TestReminder_SendPrimaryFailure(t *testing.T) {
	deliveryErr := errors.New("status 500")
	var mirrorCalls int
	primary := sinkFunc(func(_ context.Context, r *model.Reminder) error {
		return deliveryErr
	})
	mirror := sinkFunc(func(_ context.Context, r *model.Reminder) error {
		mirrorCalls++
		return nil
	})

	err := NewReminder(primary, "https://cash.example.com", "s3cret", 5040, mirror).Send(context.Background())
	require.ErrorIs(t, err, deliveryErr)
	require.Equal(t, 0, mirrorCalls)
}
