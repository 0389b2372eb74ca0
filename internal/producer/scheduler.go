package producer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Reminder is satisfied by service.Reminder.
type Reminder interface {
	Send(ctx context.Context) error
}

// Clock is a wall-clock time of day, e.g. 22:30.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(value string) (Clock, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return Clock{}, fmt.Errorf("producer couldn't parse clock %q: %w", value, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Scheduler sends the shift reminder once a day at a fixed local time.
type Scheduler struct {
	reminder Reminder
	at       Clock
	location *time.Location
	now      func() time.Time
}

func NewScheduler(reminder Reminder, at Clock, location *time.Location) *Scheduler {
	return &Scheduler{
		reminder: reminder,
		at:       at,
		location: location,
		now:      time.Now,
	}
}

func (s *Scheduler) Produce(ctx context.Context) {
	logrus.Infof("scheduler producer started, reminder at %02d:%02d %s", s.at.Hour, s.at.Minute, s.location)
	go s.waitTimeToSendReminder(ctx)
}

func (s *Scheduler) waitTimeToSendReminder(ctx context.Context) {
	for {
		wait := durationBeforeNextRun(s.now().In(s.location), s.at)
		logrus.Debugf("scheduler producer: next reminder in %v", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Infof("scheduler producer stopped: %v", ctx.Err())
			return
		case <-timer.C:
			s.send(ctx)
		}
	}
}

func (s *Scheduler) send(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if err := s.reminder.Send(ctx); err != nil {
		logrus.Errorf("scheduler producer couldn't send reminder: %v", err)
		return
	}
	logrus.Info("scheduler producer sent reminder")
}

// durationBeforeNextRun is never zero: at exactly the configured time the next run is tomorrow.
func durationBeforeNextRun(now time.Time, at Clock) time.Duration {
	year, month, day := now.Date()
	next := time.Date(year, month, day, at.Hour, at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(year, month, day+1, at.Hour, at.Minute, 0, 0, now.Location())
	}
	return next.Sub(now)
}
