package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iums-ph/iums/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	id, customer, type, description, amount, date, confirmed, otp,
	created_by, created_at, confirmed_at, status, interest_rate,
	interest_amount, principal_amount, due_date
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var (
		tx          ledger.Transaction
		typeStr     string
		statusStr   string
		confirmedAt sql.NullTime
		dueDate     sql.NullTime
	)

	if err := s.Scan(
		&tx.ID, &tx.Customer, &typeStr, &tx.Description, &tx.Amount, &tx.Date,
		&tx.Confirmed, &tx.OTP, &tx.CreatedBy, &tx.CreatedAt, &confirmedAt,
		&statusStr, &tx.InterestRate, &tx.InterestAmount, &tx.PrincipalAmount,
		&dueDate,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)
	tx.Status = ledger.Status(statusStr)

	if confirmedAt.Valid {
		tx.ConfirmedAt = &confirmedAt.Time
	}

	if dueDate.Valid {
		tx.DueDate = &dueDate.Time
	}

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions
			(id, customer, type, description, amount, date, confirmed, otp,
			 created_by, created_at, status, interest_rate, interest_amount,
			 principal_amount, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var dueDate any
	if tx.DueDate != nil {
		dueDate = *tx.DueDate
	}

	_, err := s.db.ExecContext(ctx, query,
		tx.ID, tx.Customer, tx.Type, tx.Description, tx.Amount, tx.Date,
		tx.Confirmed, tx.OTP, tx.CreatedBy, tx.CreatedAt, tx.Status,
		tx.InterestRate, tx.InterestAmount, tx.PrincipalAmount, dueDate,
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// ConfirmTransaction is a conditional update so that two concurrent
// confirmations cannot both succeed.
func (s *Store) ConfirmTransaction(ctx context.Context, id uuid.UUID, confirmedAt time.Time) (bool, error) {
	query := `
		UPDATE transactions
		SET confirmed = TRUE, confirmed_at = $1, status = $2
		WHERE id = $3 AND confirmed = FALSE
	`

	res, err := s.db.ExecContext(ctx, query, confirmedAt, ledger.StatusConfirmed, id)
	if err != nil {
		return false, fmt.Errorf("confirming transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking confirmation result: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Customer != nil {
		query += fmt.Sprintf(" AND customer = $%d", argIdx)

		args = append(args, *filter.Customer)
		argIdx++
	}

	if len(filter.Customers) > 0 {
		query += fmt.Sprintf(" AND customer = ANY($%d)", argIdx)

		args = append(args, filter.Customers)
		argIdx++
	}

	if filter.Confirmed != nil {
		query += fmt.Sprintf(" AND confirmed = $%d", argIdx)

		args = append(args, *filter.Confirmed)
		argIdx++
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}
