package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/cashflow/internal/model"
)

// LocalStorage keeps the ledger in process memory. Nothing survives a restart.
type LocalStorage struct {
	mu          sync.Mutex
	wallets     map[int64]model.Wallet
	receivables []model.Receivable
	payables    []model.Payable
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		wallets: make(map[int64]model.Wallet),
	}
}

func (l *LocalStorage) Migrate(_ context.Context) error {
	return nil
}

func (l *LocalStorage) GetWallet(_ context.Context, id int64) (*model.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (l *LocalStorage) AddCash(_ context.Context, id int64, delta int64) (*model.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.wallets[id]
	if !ok {
		return nil, ErrWalletNotFound
	}
	w.CurrentCash += delta
	l.wallets[id] = w
	return &w, nil
}

func (l *LocalStorage) ProvisionWallet(_ context.Context, wallet *model.Wallet) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.wallets[wallet.ID]; ok {
		return false, nil
	}
	l.wallets[wallet.ID] = *wallet
	return true, nil
}

func (l *LocalStorage) CreateReceivable(_ context.Context, r *model.Receivable) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.receivables = append(l.receivables, *r)
	return nil
}

func (l *LocalStorage) OutstandingReceivables(_ context.Context) ([]model.Receivable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]model.Receivable, 0, len(l.receivables))
	for _, r := range l.receivables {
		if !r.IsReceived {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DueDate != result[j].DueDate {
			return result[i].DueDate < result[j].DueDate
		}
		return older(result[i], result[j])
	})
	return result, nil
}

func (l *LocalStorage) AccrueReceivable(_ context.Context, candidate *model.Receivable) (*model.Receivable, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	match := -1
	for i, r := range l.receivables {
		if r.IsReceived || r.DueDate != candidate.DueDate {
			continue
		}
		if match >= 0 {
			logrus.Warnf("several outstanding receivables due on %s, accruing to the oldest", candidate.DueDate)
			if !older(r, l.receivables[match]) {
				continue
			}
		}
		match = i
	}

	if match < 0 {
		r := *candidate
		r.IsReceived = false
		l.receivables = append(l.receivables, r)
		return &r, true, nil
	}

	l.receivables[match].Amount += candidate.Amount
	l.receivables[match].Title = candidate.Title
	r := l.receivables[match]
	return &r, false, nil
}

func (l *LocalStorage) CreatePayable(_ context.Context, p *model.Payable) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.payables = append(l.payables, *p)
	return nil
}

func (l *LocalStorage) OutstandingPayables(_ context.Context) ([]model.Payable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]model.Payable, 0, len(l.payables))
	for _, p := range l.payables {
		if !p.IsPaid {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DueDate != result[j].DueDate {
			return result[i].DueDate < result[j].DueDate
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func older(a, b model.Receivable) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
