package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/cashflow/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	receivableColumns = `id, title, amount, to_char(due_date, 'YYYY-MM-DD'), is_received, created_at`
	payableColumns    = `id, title, amount, to_char(due_date, 'YYYY-MM-DD'), is_paid, created_at`
)

type Postgres struct {
	conn *pgxpool.Pool
}

func NewPostgres(conn *pgxpool.Pool) *Postgres {
	return &Postgres{
		conn: conn,
	}
}

// Migrate applies the embedded migrations that haven't been applied yet, each in its own transaction.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.conn.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS cashflow;
		CREATE TABLE IF NOT EXISTS cashflow.schema_migrations (
			filename   TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("repository.Postgres.Migrate couldn't create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("repository.Postgres.Migrate couldn't read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var exists bool
		err = p.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cashflow.schema_migrations WHERE filename=$1)`, name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("repository.Postgres.Migrate couldn't check migration %s: %w", name, err)
		}
		if exists {
			continue
		}

		body, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("repository.Postgres.Migrate couldn't read migration %s: %w", name, err)
		}
		if err = p.applyMigration(ctx, name, string(body)); err != nil {
			return err
		}
		logrus.Infof("migration %s applied", name)
	}
	return nil
}

func (p *Postgres) applyMigration(ctx context.Context, name, body string) error {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.Postgres.Migrate couldn't begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("repository.Postgres.Migrate, migration %s failed: %w", name, err)
	}
	if _, err = tx.Exec(ctx, `INSERT INTO cashflow.schema_migrations (filename) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("repository.Postgres.Migrate couldn't record migration %s: %w", name, err)
	}
	return tx.Commit(ctx)
}

func (p *Postgres) GetWallet(ctx context.Context, id int64) (*model.Wallet, error) {
	query := `SELECT id, current_cash, safety_buffer FROM cashflow.wallet WHERE id=$1`
	var wallet model.Wallet
	err := p.conn.QueryRow(ctx, query, id).Scan(&wallet.ID, &wallet.CurrentCash, &wallet.SafetyBuffer)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository.Postgres, get wallet error: %w", err)
	}
	return &wallet, nil
}

func (p *Postgres) AddCash(ctx context.Context, id int64, delta int64) (*model.Wallet, error) {
	query := `UPDATE cashflow.wallet SET current_cash = current_cash + $2 WHERE id=$1
		RETURNING id, current_cash, safety_buffer`
	var wallet model.Wallet
	err := p.conn.QueryRow(ctx, query, id, delta).Scan(&wallet.ID, &wallet.CurrentCash, &wallet.SafetyBuffer)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository.Postgres, add cash error: %w", err)
	}
	return &wallet, nil
}

func (p *Postgres) ProvisionWallet(ctx context.Context, wallet *model.Wallet) (bool, error) {
	query := `INSERT INTO cashflow.wallet (id, current_cash, safety_buffer) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	commandTag, err := p.conn.Exec(ctx, query, wallet.ID, wallet.CurrentCash, wallet.SafetyBuffer)
	if err != nil {
		return false, fmt.Errorf("repository.Postgres, provision wallet error: %w", err)
	}
	return commandTag.RowsAffected() == 1, nil
}

func (p *Postgres) CreateReceivable(ctx context.Context, r *model.Receivable) error {
	query := `INSERT INTO cashflow.receivables (id, title, amount, due_date, is_received, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6)`
	_, err := p.conn.Exec(ctx, query, r.ID, r.Title, r.Amount, r.DueDate, r.IsReceived, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.Postgres, create receivable error: %w", err)
	}
	return nil
}

func (p *Postgres) OutstandingReceivables(ctx context.Context) ([]model.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM cashflow.receivables
		WHERE NOT is_received ORDER BY due_date, created_at, id`
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.Postgres, outstanding receivables error: %w", err)
	}
	defer rows.Close()

	result := make([]model.Receivable, 0)
	for rows.Next() {
		var r model.Receivable
		if err = rows.Scan(&r.ID, &r.Title, &r.Amount, &r.DueDate, &r.IsReceived, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository.Postgres, scan receivable error: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// AccrueReceivable holds a transaction-scoped advisory lock on the due date, so
// concurrent bookings for the same period are applied one after another.
func (p *Postgres) AccrueReceivable(ctx context.Context, candidate *model.Receivable) (*model.Receivable, bool, error) {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("repository.Postgres, accrue receivable couldn't begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "receivables:"+candidate.DueDate); err != nil {
		return nil, false, fmt.Errorf("repository.Postgres, accrue receivable couldn't lock: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT id FROM cashflow.receivables
		WHERE due_date=$1::date AND NOT is_received
		ORDER BY created_at, id LIMIT 2 FOR UPDATE`, candidate.DueDate)
	if err != nil {
		return nil, false, fmt.Errorf("repository.Postgres, accrue receivable lookup error: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, false, fmt.Errorf("repository.Postgres, accrue receivable lookup error: %w", err)
	}
	if len(ids) > 1 {
		logrus.Warnf("several outstanding receivables due on %s, accruing to the oldest", candidate.DueDate)
	}

	var (
		r       model.Receivable
		created bool
		row     pgx.Row
	)
	if len(ids) == 0 {
		created = true
		row = tx.QueryRow(ctx, `INSERT INTO cashflow.receivables (id, title, amount, due_date, is_received, created_at)
			VALUES ($1, $2, $3, $4::date, FALSE, $5) RETURNING `+receivableColumns,
			candidate.ID, candidate.Title, candidate.Amount, candidate.DueDate, candidate.CreatedAt)
	} else {
		row = tx.QueryRow(ctx, `UPDATE cashflow.receivables SET amount = amount + $2, title = $3
			WHERE id=$1 RETURNING `+receivableColumns,
			ids[0], candidate.Amount, candidate.Title)
	}
	if err = row.Scan(&r.ID, &r.Title, &r.Amount, &r.DueDate, &r.IsReceived, &r.CreatedAt); err != nil {
		return nil, false, fmt.Errorf("repository.Postgres, accrue receivable write error: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("repository.Postgres, accrue receivable couldn't commit: %w", err)
	}
	return &r, created, nil
}

func (p *Postgres) CreatePayable(ctx context.Context, pb *model.Payable) error {
	query := `INSERT INTO cashflow.payables (id, title, amount, due_date, is_paid, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6)`
	_, err := p.conn.Exec(ctx, query, pb.ID, pb.Title, pb.Amount, pb.DueDate, pb.IsPaid, pb.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.Postgres, create payable error: %w", err)
	}
	return nil
}

func (p *Postgres) OutstandingPayables(ctx context.Context) ([]model.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM cashflow.payables
		WHERE NOT is_paid ORDER BY due_date, created_at, id`
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.Postgres, outstanding payables error: %w", err)
	}
	defer rows.Close()

	result := make([]model.Payable, 0)
	for rows.Next() {
		var pb model.Payable
		if err = rows.Scan(&pb.ID, &pb.Title, &pb.Amount, &pb.DueDate, &pb.IsPaid, &pb.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository.Postgres, scan payable error: %w", err)
		}
		result = append(result, pb)
	}
	return result, rows.Err()
}
