// Package duedate tracks which utang are coming due, reminds customers, and
// clears due dates off debts that payments have covered.
package duedate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/mail"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=duedate
type Repository interface {
	// ListOutstandingDue returns confirmed, dated utang rows whose customer
	// still has a positive outstanding balance. A nil customer set means all
	// customers.
	ListOutstandingDue(ctx context.Context, customers []string) ([]Debt, error)

	// ListCustomerDebts returns the customer's confirmed, dated utang rows
	// ordered oldest first.
	ListCustomerDebts(ctx context.Context, customer string) ([]Debt, error)

	// Outstanding sums confirmed utang minus confirmed payments.
	Outstanding(ctx context.Context, customer string) (decimal.Decimal, error)

	ClearDueDate(ctx context.Context, id uuid.UUID) error
	ClearAllDueDates(ctx context.Context, customer string) error
}

// Accounts supplies contact details for email reminders.
type Accounts interface {
	Get(ctx context.Context, username string) (*account.Account, error)
}

// Alerts is the in-app notification sink.
type Alerts interface {
	Send(ctx context.Context, username, message string) error
}

// Settings supplies reminder thresholds and currency formatting.
type Settings interface {
	ReminderDays(ctx context.Context) []int
	FormatAmount(ctx context.Context, amount decimal.Decimal) string
}

type Service struct {
	repo     Repository
	accounts Accounts
	alerts   Alerts
	mailer   mail.Mailer
	settings Settings
}

func NewService(
	repo Repository,
	accounts Accounts,
	alerts Alerts,
	mailer mail.Mailer,
	settings Settings,
) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		alerts:   alerts,
		mailer:   mailer,
		settings: settings,
	}
}

// Upcoming lists debts due within daysThreshold days for the given customers
// (nil = all). Overdue debts are included: their DaysUntilDue is negative.
func (s *Service) Upcoming(ctx context.Context, customers []string, daysThreshold int) ([]Entry, error) {
	debts, err := s.repo.ListOutstandingDue(ctx, customers)
	if err != nil {
		return nil, fmt.Errorf("listing outstanding debts: %w", err)
	}

	var entries []Entry

	for _, d := range debts {
		days := daysUntil(d.DueDate)
		if days > daysThreshold {
			continue
		}

		entries = append(entries, Entry{
			Customer:     d.Customer,
			Description:  d.Description,
			Amount:       d.Amount,
			DueDate:      d.DueDate,
			DaysUntilDue: days,
		})
	}

	return entries, nil
}

// Overdue lists debts past their due date for the given customers (nil = all).
func (s *Service) Overdue(ctx context.Context, customers []string) ([]OverdueEntry, error) {
	debts, err := s.repo.ListOutstandingDue(ctx, customers)
	if err != nil {
		return nil, fmt.Errorf("listing outstanding debts: %w", err)
	}

	var entries []OverdueEntry

	for _, d := range debts {
		days := daysUntil(d.DueDate)
		if days >= 0 {
			continue
		}

		entries = append(entries, OverdueEntry{
			Customer:    d.Customer,
			Description: d.Description,
			Amount:      d.Amount,
			DueDate:     d.DueDate,
			DaysOverdue: -days,
		})
	}

	return entries, nil
}

// ClearPaid reassigns which debts remain open after a payment confirmation.
// If the customer is fully settled, every due date is cleared. Otherwise the
// confirmed dated utang rows are walked newest-first and cleared while the
// already-paid balance covers each row in full, stopping at the first row it
// cannot cover. The amounts themselves are never touched, only due_date.
//
// Newest-first is the historical behavior of this ledger; tests pin it down
// so switching to oldest-first is a deliberate decision.
func (s *Service) ClearPaid(ctx context.Context, customer string) error {
	outstanding, err := s.repo.Outstanding(ctx, customer)
	if err != nil {
		return fmt.Errorf("computing outstanding: %w", err)
	}

	if !outstanding.IsPositive() {
		if err := s.repo.ClearAllDueDates(ctx, customer); err != nil {
			return fmt.Errorf("clearing due dates: %w", err)
		}

		s.notify(ctx, customer, "All utang fully paid! Due dates have been cleared.")

		return nil
	}

	debts, err := s.repo.ListCustomerDebts(ctx, customer)
	if err != nil {
		return fmt.Errorf("listing debts: %w", err)
	}

	remaining := outstanding

	for i := len(debts) - 1; i >= 0; i-- {
		if remaining.LessThan(debts[i].Amount) {
			break
		}

		if err := s.repo.ClearDueDate(ctx, debts[i].ID); err != nil {
			return fmt.Errorf("clearing due date: %w", err)
		}

		remaining = remaining.Sub(debts[i].Amount)
	}

	return nil
}

// SendReminders sweeps every outstanding dated utang and alerts customers
// whose due date falls within the configured thresholds. Email reminders are
// best effort.
func (s *Service) SendReminders(ctx context.Context) (SweepResult, error) {
	debts, err := s.repo.ListOutstandingDue(ctx, nil)
	if err != nil {
		return SweepResult{}, fmt.Errorf("listing outstanding debts: %w", err)
	}

	window := maxThreshold(s.settings.ReminderDays(ctx))

	var result SweepResult

	for _, d := range debts {
		result.Checked++

		days := daysUntil(d.DueDate)
		if days > window {
			continue
		}

		message := reminderMessage(d.Description, s.settings.FormatAmount(ctx, d.Amount), d.DueDate, days)

		if err := s.alerts.Send(ctx, d.Customer, message); err != nil {
			slog.Warn("failed to send reminder alert", "customer", d.Customer, "error", err)
		} else {
			result.AlertsSent++
		}

		if s.sendReminderEmail(ctx, d, days) {
			result.EmailsSent++
		}
	}

	return result, nil
}

func (s *Service) sendReminderEmail(ctx context.Context, d Debt, days int) bool {
	cust, err := s.accounts.Get(ctx, d.Customer)
	if err != nil || cust.PersonalInfo.Email == "" {
		return false
	}

	name := cust.PersonalInfo.FullName
	if name == "" {
		name = cust.Username
	}

	err = s.mailer.SendReminder(ctx, mail.Reminder{
		To:           cust.PersonalInfo.Email,
		Name:         name,
		Description:  d.Description,
		Amount:       d.Amount,
		DueDate:      d.DueDate,
		DaysUntilDue: days,
	})
	if err != nil {
		if err != mail.ErrNotConfigured {
			slog.Warn("failed to send reminder email", "customer", d.Customer, "error", err)
		}

		return false
	}

	return true
}

func reminderMessage(description, amount string, dueDate time.Time, days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("OVERDUE: Your utang %q for %s was due %d day(s) ago! Please pay immediately.",
			description, amount, -days)
	case days == 0:
		return fmt.Sprintf("DUE TODAY: Your utang %q for %s is due today! Please make payment immediately.",
			description, amount)
	case days <= 3:
		return fmt.Sprintf("URGENT: Your utang %q for %s is due in %d day(s) (%s). Please prepare payment.",
			description, amount, days, dueDate.Format(time.DateOnly))
	default:
		return fmt.Sprintf("REMINDER: Your utang %q for %s is due in %d day(s) (%s).",
			description, amount, days, dueDate.Format(time.DateOnly))
	}
}

func (s *Service) notify(ctx context.Context, username, message string) {
	if err := s.alerts.Send(ctx, username, message); err != nil {
		slog.Warn("failed to send alert", "username", username, "error", err)
	}
}

func maxThreshold(days []int) int {
	window := 0
	for _, d := range days {
		if d > window {
			window = d
		}
	}

	return window
}

// daysUntil counts whole calendar days from today to t; negative when t is
// in the past.
func daysUntil(t time.Time) int {
	now := time.Now()
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return int(b.Sub(a).Hours() / 24)
}
