package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iums-ph/iums/internal/alert"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAlert(ctx context.Context, a *alert.Alert) error {
	query := `
		INSERT INTO alerts (id, username, date, timestamp, message, read)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Username, a.Date, a.Timestamp, a.Message, a.Read,
	)
	if err != nil {
		return fmt.Errorf("creating alert: %w", err)
	}

	return nil
}

func (s *Store) ListAlerts(ctx context.Context, username string, limit int) ([]*alert.Alert, error) {
	query := `
		SELECT id, username, date, timestamp, message, read
		FROM alerts
		WHERE username = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*alert.Alert

	for rows.Next() {
		var a alert.Alert
		if err := rows.Scan(
			&a.ID, &a.Username, &a.Date, &a.Timestamp, &a.Message, &a.Read,
		); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}

		alerts = append(alerts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}

	return alerts, nil
}

func (s *Store) MarkAlertsRead(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET read = TRUE WHERE username = $1`, username,
	)
	if err != nil {
		return fmt.Errorf("marking alerts read: %w", err)
	}

	return nil
}

func (s *Store) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting alert: %w", err)
	}

	return nil
}
