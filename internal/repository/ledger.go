package repository

import (
	"context"
	"errors"

	"github.com/chucky-1/cashflow/internal/model"
)

var ErrWalletNotFound = errors.New("wallet doesn't exist")

//go:generate mockery --name=Wallets

type Wallets interface {
	// GetWallet returns nil, nil when the wallet isn't provisioned.
	GetWallet(ctx context.Context, id int64) (*model.Wallet, error)
	// AddCash atomically adds delta to current_cash and returns the updated wallet.
	AddCash(ctx context.Context, id int64, delta int64) (*model.Wallet, error)
	// ProvisionWallet creates the wallet unless it exists. It reports whether it was created.
	ProvisionWallet(ctx context.Context, wallet *model.Wallet) (bool, error)
}

//go:generate mockery --name=Receivables

type Receivables interface {
	CreateReceivable(ctx context.Context, receivable *model.Receivable) error
	// OutstandingReceivables returns receivables not yet received ordered by due date.
	OutstandingReceivables(ctx context.Context) ([]model.Receivable, error)
	// AccrueReceivable adds candidate.Amount to the outstanding receivable due on
	// candidate.DueDate and retitles it, or inserts candidate when there is none.
	// When several are outstanding on that date the oldest (then lowest id) is used.
	// The bool result reports whether candidate was inserted.
	AccrueReceivable(ctx context.Context, candidate *model.Receivable) (*model.Receivable, bool, error)
}

//go:generate mockery --name=Payables

type Payables interface {
	CreatePayable(ctx context.Context, payable *model.Payable) error
	// OutstandingPayables returns payables not yet paid ordered by due date.
	OutstandingPayables(ctx context.Context) ([]model.Payable, error)
}

// Ledger is implemented by every store backend.
type Ledger interface {
	Wallets
	Receivables
	Payables
	// Migrate prepares the schema (tables, indexes).
	Migrate(ctx context.Context) error
}
