package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/duedate"
	"github.com/iums-ph/iums/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// outstandingFilter keeps only rows whose customer still owes money:
// confirmed utang minus confirmed payments is positive.
const outstandingFilter = `
	(SELECT COALESCE(SUM(
		CASE WHEN t2.type = 'utang' THEN t2.amount ELSE -t2.amount END
	), 0)
	FROM transactions t2
	WHERE t2.customer = t.customer AND t2.confirmed = TRUE) > 0
`

func (s *Store) ListOutstandingDue(ctx context.Context, customers []string) ([]duedate.Debt, error) {
	query := `
		SELECT t.id, t.customer, t.description, t.amount, t.date, t.due_date
		FROM transactions t
		WHERE t.type = $1
		AND t.confirmed = TRUE
		AND t.due_date IS NOT NULL
		AND ` + outstandingFilter

	args := []any{ledger.TypeUtang}

	if len(customers) > 0 {
		query += ` AND t.customer = ANY($2)`

		args = append(args, customers)
	}

	query += ` ORDER BY t.due_date ASC`

	return s.listDebts(ctx, query, args...)
}

func (s *Store) ListCustomerDebts(ctx context.Context, customer string) ([]duedate.Debt, error) {
	query := `
		SELECT t.id, t.customer, t.description, t.amount, t.date, t.due_date
		FROM transactions t
		WHERE t.customer = $1
		AND t.type = $2
		AND t.confirmed = TRUE
		AND t.due_date IS NOT NULL
		ORDER BY t.date ASC, t.created_at ASC
	`

	return s.listDebts(ctx, query, customer, ledger.TypeUtang)
}

func (s *Store) listDebts(ctx context.Context, query string, args ...any) ([]duedate.Debt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []duedate.Debt

	for rows.Next() {
		var d duedate.Debt
		if err := rows.Scan(
			&d.ID, &d.Customer, &d.Description, &d.Amount, &d.Date, &d.DueDate,
		); err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debts: %w", err)
	}

	return debts, nil
}

func (s *Store) Outstanding(ctx context.Context, customer string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN type = 'utang' THEN amount ELSE -amount END
		), 0)
		FROM transactions
		WHERE customer = $1 AND confirmed = TRUE
	`

	var outstanding decimal.Decimal

	if err := s.db.QueryRowContext(ctx, query, customer).Scan(&outstanding); err != nil {
		return decimal.Zero, fmt.Errorf("summing outstanding: %w", err)
	}

	return outstanding, nil
}

func (s *Store) ClearDueDate(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET due_date = NULL WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("clearing due date: %w", err)
	}

	return nil
}

func (s *Store) ClearAllDueDates(ctx context.Context, customer string) error {
	query := `
		UPDATE transactions
		SET due_date = NULL
		WHERE customer = $1 AND type = $2 AND confirmed = TRUE
	`

	if _, err := s.db.ExecContext(ctx, query, customer, ledger.TypeUtang); err != nil {
		return fmt.Errorf("clearing due dates: %w", err)
	}

	return nil
}
