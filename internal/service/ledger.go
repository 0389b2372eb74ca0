package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chucky-1/cashflow/internal/model"
	"github.com/chucky-1/cashflow/internal/repository"
)

const (
	DirectionSpend  = "spend"
	DirectionIncome = "income"
)

type ReceivableInput struct {
	Title   string `validate:"required"`
	Amount  int64  `validate:"gt=0"`
	DueDate string `validate:"required,datetime=2006-01-02"`
}

type PayableInput struct {
	Title  string `validate:"required"`
	Amount int64  `validate:"gt=0"`
}

type CashInput struct {
	Direction string `validate:"oneof=spend income"`
	Amount    int64  `validate:"gt=0"`
}

// ValidationError is returned when an input is rejected before anything is written.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: failed %q", strings.ToLower(e.Field), e.Rule)
}

type Settings struct {
	WalletID   int64
	WageAmount int64
	Location   *time.Location
	Clock      func() time.Time
}

// Ledger applies changes to the wallet, receivables and payables and
// computes the overview shown on the home view.
type Ledger struct {
	wallets     repository.Wallets
	receivables repository.Receivables
	payables    repository.Payables
	validator   *validator.Validate

	walletID   int64
	wageAmount int64
	location   *time.Location
	clock      func() time.Time
}

func NewLedger(wallets repository.Wallets, receivables repository.Receivables, payables repository.Payables,
	validator *validator.Validate, settings Settings) *Ledger {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.Clock == nil {
		settings.Clock = time.Now
	}
	return &Ledger{
		wallets:     wallets,
		receivables: receivables,
		payables:    payables,
		validator:   validator,
		walletID:    settings.WalletID,
		wageAmount:  settings.WageAmount,
		location:    settings.Location,
		clock:       settings.Clock,
	}
}

func (l *Ledger) WageAmount() int64 {
	return l.wageAmount
}

func (l *Ledger) today() time.Time {
	return Today(l.clock(), l.location)
}

func (l *Ledger) AddReceivable(ctx context.Context, in ReceivableInput) (*model.Receivable, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := l.validate(in); err != nil {
		return nil, err
	}

	receivable := &model.Receivable{
		ID:        uuid.New(),
		Title:     in.Title,
		Amount:    in.Amount,
		DueDate:   in.DueDate,
		CreatedAt: l.clock().UTC(),
	}
	if err := l.receivables.CreateReceivable(ctx, receivable); err != nil {
		return nil, err
	}
	logrus.Infof("receivable added: %s %d due %s", receivable.Title, receivable.Amount, receivable.DueDate)
	return receivable, nil
}

func (l *Ledger) AddPayable(ctx context.Context, in PayableInput) (*model.Payable, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := l.validate(in); err != nil {
		return nil, err
	}

	payable := &model.Payable{
		ID:        uuid.New(),
		Title:     in.Title,
		Amount:    in.Amount,
		DueDate:   FormatDate(PayableDueDate(l.today())),
		CreatedAt: l.clock().UTC(),
	}
	if err := l.payables.CreatePayable(ctx, payable); err != nil {
		return nil, err
	}
	logrus.Infof("payable added: %s %d due %s", payable.Title, payable.Amount, payable.DueDate)
	return payable, nil
}

// UpdateCash adds (income) or subtracts (spend) amount in a single atomic store update.
func (l *Ledger) UpdateCash(ctx context.Context, in CashInput) (*model.Wallet, error) {
	if err := l.validate(in); err != nil {
		return nil, err
	}

	delta := in.Amount
	if in.Direction == DirectionSpend {
		delta = -in.Amount
	}
	wallet, err := l.wallets.AddCash(ctx, l.walletID, delta)
	if err != nil {
		return nil, err
	}
	logrus.Infof("cash changed by %d, now %d", delta, wallet.CurrentCash)
	return wallet, nil
}

// BookWage credits one shift's wage to the receivable of the current pay
// period. Every call adds the wage again. The bool reports whether the
// receivable was created.
func (l *Ledger) BookWage(ctx context.Context) (*model.Receivable, bool, error) {
	due, label := WageBookingPeriod(l.today())
	receivable, created, err := l.receivables.AccrueReceivable(ctx, &model.Receivable{
		ID:        uuid.New(),
		Title:     label,
		Amount:    l.wageAmount,
		DueDate:   FormatDate(due),
		CreatedAt: l.clock().UTC(),
	})
	if err != nil {
		return nil, false, err
	}
	logrus.Infof("wage %d booked to %s (%s), total %d", l.wageAmount, receivable.Title, receivable.DueDate, receivable.Amount)
	return receivable, created, nil
}

// Overview loads outstanding items and projects the balance on the next payment date.
// A wallet that isn't provisioned counts as zero cash and zero buffer.
func (l *Ledger) Overview(ctx context.Context) (*model.Overview, error) {
	var (
		wallet      *model.Wallet
		receivables []model.Receivable
		payables    []model.Payable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wallet, err = l.wallets.GetWallet(gctx, l.walletID)
		return err
	})
	g.Go(func() (err error) {
		receivables, err = l.receivables.OutstandingReceivables(gctx)
		return err
	})
	g.Go(func() (err error) {
		payables, err = l.payables.OutstandingPayables(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if wallet == nil {
		logrus.Warnf("wallet %d isn't provisioned, projecting from zero", l.walletID)
		wallet = &model.Wallet{ID: l.walletID}
	}
	if receivables == nil {
		receivables = []model.Receivable{}
	}
	if payables == nil {
		payables = []model.Payable{}
	}

	cutoff := FormatDate(NextPaymentDate(l.today()))
	return &model.Overview{
		Wallet:      *wallet,
		Receivables: receivables,
		Payables:    payables,
		Projection:  Project(*wallet, receivables, payables, cutoff),
	}, nil
}

// ProvisionWallet creates the wallet singleton with zero cash if it doesn't exist yet.
func (l *Ledger) ProvisionWallet(ctx context.Context, safetyBuffer int64) (bool, error) {
	return l.wallets.ProvisionWallet(ctx, &model.Wallet{
		ID:           l.walletID,
		SafetyBuffer: safetyBuffer,
	})
}

func (l *Ledger) validate(in any) error {
	err := l.validator.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return &ValidationError{Field: fieldErrors[0].Field(), Rule: fieldErrors[0].Tag()}
	}
	return fmt.Errorf("service.Ledger couldn't validate input: %w", err)
}
