package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iums-ph/iums/internal/account"
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

const selectAccountColumns = `
	username, password, role, debt_limit, personal_info, created_at, created_by
`

func scanAccount(s scanner) (*account.Account, error) {
	var (
		a       account.Account
		roleStr string
		info    []byte
	)

	if err := s.Scan(
		&a.Username, &a.Password, &roleStr, &a.DebtLimit, &info, &a.CreatedAt, &a.CreatedBy,
	); err != nil {
		return nil, err
	}

	a.Role = account.Role(roleStr)

	if len(info) > 0 {
		if err := json.Unmarshal(info, &a.PersonalInfo); err != nil {
			return nil, fmt.Errorf("decoding personal info: %w", err)
		}
	}

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	info, err := json.Marshal(a.PersonalInfo)
	if err != nil {
		return fmt.Errorf("encoding personal info: %w", err)
	}

	query := `
		INSERT INTO accounts (username, password, role, debt_limit, personal_info, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(ctx, query,
		a.Username, a.Password, a.Role, a.DebtLimit, info, a.CreatedAt, a.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.ErrExists
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, username string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE username = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

// Exists satisfies the alert service's recipient check without loading the row.
func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking account: %w", err)
	}

	return exists, nil
}

func (s *Store) ListAccounts(ctx context.Context, role *account.Role) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts`

	var args []any

	if role != nil {
		query += ` WHERE role = $1`

		args = append(args, *role)
	}

	query += ` ORDER BY username ASC`

	return s.list(ctx, query, args...)
}

func (s *Store) ListByCreator(ctx context.Context, creator string) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE created_by = $1
		ORDER BY username ASC`

	return s.list(ctx, query, creator)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*account.Account, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) UpdatePassword(ctx context.Context, username, password string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET password = $1 WHERE username = $2`, password, username,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}

// RenameAccount changes the primary key; transaction and alert rows follow
// through the ON UPDATE CASCADE foreign keys on customer and username.
func (s *Store) RenameAccount(ctx context.Context, oldName, newName string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET username = $1 WHERE username = $2`, newName, oldName,
	)
	if err != nil {
		return fmt.Errorf("renaming account: %w", err)
	}

	return nil
}

// DeleteAccount removes the account and cascades to its transactions and
// alerts in one database transaction.
func (s *Store) DeleteAccount(ctx context.Context, username string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM alerts WHERE username = $1`,
		`DELETE FROM transactions WHERE customer = $1`,
		`DELETE FROM accounts WHERE username = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, username); err != nil {
			return fmt.Errorf("deleting account data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}
