package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical calendar date form. Lexicographic and
// chronological order coincide for it, so due dates are kept as strings.
const DateLayout = "2006-01-02"

// Receivable is money expected to come in
type Receivable struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Amount     int64     `json:"amount"`
	DueDate    string    `json:"due_date"`
	IsReceived bool      `json:"is_received"`
	CreatedAt  time.Time `json:"created_at"`
}

// Payable is money expected to go out
type Payable struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Amount    int64     `json:"amount"`
	DueDate   string    `json:"due_date"`
	IsPaid    bool      `json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is the part of a receivable or payable the projection works with.
type Item struct {
	Amount  int64
	DueDate string
}

func (r Receivable) Item() Item {
	return Item{Amount: r.Amount, DueDate: r.DueDate}
}

func (p Payable) Item() Item {
	return Item{Amount: p.Amount, DueDate: p.DueDate}
}
