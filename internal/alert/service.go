package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownRecipient = errors.New("alert recipient not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=alert
type Repository interface {
	CreateAlert(ctx context.Context, a *Alert) error
	ListAlerts(ctx context.Context, username string, limit int) ([]*Alert, error)
	MarkAlertsRead(ctx context.Context, username string) error
	DeleteAlert(ctx context.Context, id uuid.UUID) error
}

// Recipients answers whether an alert target exists. Satisfied by the account
// service.
type Recipients interface {
	Exists(ctx context.Context, username string) (bool, error)
}

type Service struct {
	repo       Repository
	recipients Recipients
}

func NewService(repo Repository, recipients Recipients) *Service {
	return &Service{repo: repo, recipients: recipients}
}

// Send records an in-app message for the user. Callers treat failures as
// non-fatal: a lost alert never blocks the operation that produced it.
func (s *Service) Send(ctx context.Context, username, message string) error {
	ok, err := s.recipients.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("checking recipient: %w", err)
	}

	if !ok {
		return ErrUnknownRecipient
	}

	now := time.Now()

	a := &Alert{
		ID:        uuid.New(),
		Username:  username,
		Date:      now,
		Timestamp: now,
		Message:   message,
	}

	if err := s.repo.CreateAlert(ctx, a); err != nil {
		return fmt.Errorf("creating alert: %w", err)
	}

	return nil
}

// List returns the user's most recent alerts, newest first.
func (s *Service) List(ctx context.Context, username string) ([]*Alert, error) {
	return s.repo.ListAlerts(ctx, username, 50)
}

func (s *Service) MarkRead(ctx context.Context, username string) error {
	return s.repo.MarkAlertsRead(ctx, username)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAlert(ctx, id)
}
