package service

import (
	"fmt"
	"time"

	"github.com/chucky-1/cashflow/internal/model"
)

const (
	paymentDay = 27 // recurring debits are taken on this day
	wageDueDay = 15 // wages for a month are paid on this day of the next month
)

// Today returns the calendar date of t in loc, at midnight.
func Today(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// NextPaymentDate returns the 27th of today's month, or of the next month once
// today is past it.
func NextPaymentDate(today time.Time) time.Time {
	today = Today(today, today.Location())
	y, m, _ := today.Date()
	current := time.Date(y, m, paymentDay, 0, 0, 0, 0, today.Location())
	if today.After(current) {
		return time.Date(y, m+1, paymentDay, 0, 0, 0, 0, today.Location())
	}
	return current
}

// PayableDueDate returns the 27th of the month after today whatever today's day is.
func PayableDueDate(today time.Time) time.Time {
	y, m, _ := today.Date()
	return time.Date(y, m+1, paymentDay, 0, 0, 0, 0, today.Location())
}

// WageBookingPeriod returns when wages earned this month are paid and the
// receivable title for them. The label names today's month.
func WageBookingPeriod(today time.Time) (time.Time, string) {
	y, m, _ := today.Date()
	due := time.Date(y, m+1, wageDueDay, 0, 0, 0, 0, today.Location())
	return due, fmt.Sprintf("%d月分給与", int(m))
}

func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}
