package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/mail"
)

// maxAmount is a sanity ceiling on a single transaction, not a business rule.
var maxAmount = decimal.NewFromInt(1_000_000)

const defaultDueDays = 30

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// ConfirmTransaction flips the row to confirmed only if it is still
	// unconfirmed, and reports whether a row was updated. This makes
	// confirmation atomic under concurrent attempts.
	ConfirmTransaction(ctx context.Context, id uuid.UUID, confirmedAt time.Time) (bool, error)

	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

// ListFilter narrows a transaction listing. Customers scopes to an owner's
// customer set; a nil filter lists everything.
type ListFilter struct {
	Customer  *string
	Customers []string
	Confirmed *bool
}

// Accounts resolves customers and their debt limits.
type Accounts interface {
	Get(ctx context.Context, username string) (*account.Account, error)
}

// Alerts is the in-app notification sink. Failures are never fatal.
type Alerts interface {
	Send(ctx context.Context, username, message string) error
}

// DueDates runs the due-date clearing pass after a payment confirmation.
type DueDates interface {
	ClearPaid(ctx context.Context, customer string) error
}

// Settings formats currency for user-facing alert text.
type Settings interface {
	FormatAmount(ctx context.Context, amount decimal.Decimal) string
}

type Service struct {
	repo     Repository
	accounts Accounts
	alerts   Alerts
	mailer   mail.Mailer
	duedates DueDates
	settings Settings
}

func NewService(
	repo Repository,
	accounts Accounts,
	alerts Alerts,
	mailer mail.Mailer,
	duedates DueDates,
	settings Settings,
) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		alerts:   alerts,
		mailer:   mailer,
		duedates: duedates,
		settings: settings,
	}
}

type CreateParams struct {
	Customer     string
	Type         Type
	Description  string
	Amount       decimal.Decimal
	CreatedBy    string
	InterestRate decimal.Decimal
	DueDate      *time.Time
}

// CreatePending validates the request, persists a pending_otp transaction and
// delivers the OTP to the customer via alert and, best effort, email. The
// returned message annotates the email delivery status for the caller's UI.
//
// The customer's debt limit is deliberately not enforced here; exceeding it
// is a caller-side warning, not an engine invariant.
func (s *Service) CreatePending(ctx context.Context, params CreateParams) (*Transaction, string, error) {
	if params.Type != TypeUtang && params.Type != TypePayment {
		return nil, "", fmt.Errorf("%w: unknown transaction type %q", ErrValidation, params.Type)
	}

	cust, err := s.accounts.Get(ctx, params.Customer)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, "", ErrUnknownCustomer
		}

		return nil, "", fmt.Errorf("looking up customer: %w", err)
	}

	if !params.Amount.IsPositive() {
		return nil, "", fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}

	if params.Amount.GreaterThan(maxAmount) {
		return nil, "", fmt.Errorf("%w: amount is too large", ErrValidation)
	}

	principal := params.Amount.Round(2)
	interestAmount := decimal.Zero
	finalAmount := principal

	if params.Type == TypeUtang && params.InterestRate.IsPositive() {
		interestAmount = principal.Mul(params.InterestRate).Div(decimal.NewFromInt(100)).Round(2)
		finalAmount = principal.Add(interestAmount)
	}

	now := time.Now()

	var dueDate *time.Time

	if params.Type == TypeUtang {
		dueDate = params.DueDate
		if dueDate == nil {
			d := now.AddDate(0, 0, defaultDueDays)
			dueDate = &d
		}
	}

	createdBy := params.CreatedBy
	if createdBy == "" {
		createdBy = "system"
	}

	tx := &Transaction{
		ID:              uuid.New(),
		Customer:        params.Customer,
		Type:            params.Type,
		Description:     params.Description,
		Amount:          finalAmount,
		Date:            now,
		OTP:             generateOTP(),
		CreatedBy:       createdBy,
		CreatedAt:       now,
		Status:          StatusPendingOTP,
		InterestRate:    params.InterestRate,
		InterestAmount:  interestAmount,
		PrincipalAmount: principal,
		DueDate:         dueDate,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, "", fmt.Errorf("creating transaction: %w", err)
	}

	emailStatus := s.sendOTPEmail(ctx, cust, tx)

	s.notify(ctx, tx.Customer, s.pendingAlertMessage(ctx, tx))

	message := "OTP sent to customer. Ask the customer for the OTP to complete the transaction." + emailStatus

	return tx, message, nil
}

// Confirm validates the OTP and transitions the transaction to confirmed.
// Confirmation happens at most once; a correct OTP on an already confirmed
// transaction fails with ErrAlreadyConfirmed. Payment confirmations trigger
// the due-date clearing pass for the customer.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, otp string) (string, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return "", err
	}

	if tx.Confirmed {
		return "", ErrAlreadyConfirmed
	}

	// Exact string match, no normalization.
	if tx.OTP != otp {
		return "", ErrInvalidOTP
	}

	now := time.Now()

	updated, err := s.repo.ConfirmTransaction(ctx, id, now)
	if err != nil {
		return "", fmt.Errorf("confirming transaction: %w", err)
	}

	if !updated {
		// Lost the race against a concurrent confirmation.
		return "", ErrAlreadyConfirmed
	}

	tx.Confirmed = true
	tx.ConfirmedAt = &now
	tx.Status = StatusConfirmed

	if tx.Type == TypePayment {
		if err := s.duedates.ClearPaid(ctx, tx.Customer); err != nil {
			slog.Warn("due-date clearing failed", "customer", tx.Customer, "error", err)
		}
	}

	s.notify(ctx, tx.Customer, s.confirmedAlertMessage(ctx, tx))

	return "Transaction confirmed successfully", nil
}

// Delete hard-deletes a transaction regardless of status. Authorization is
// the caller's concern.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Balance replays the customer's confirmed transactions. Unconfirmed rows
// never contribute. An unknown customer yields a zero debt limit rather than
// an error so callers can render empty state.
func (s *Service) Balance(ctx context.Context, customer string) (*Balance, error) {
	debtLimit := decimal.Zero

	cust, err := s.accounts.Get(ctx, customer)
	switch {
	case err == nil:
		debtLimit = cust.DebtLimit
	case errors.Is(err, account.ErrNotFound):
		// Keep the zero limit.
	default:
		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	txs, err := s.repo.ListTransactions(ctx, ListFilter{Customer: &customer})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	b := &Balance{DebtLimit: debtLimit}

	for _, tx := range txs {
		if !tx.Confirmed {
			continue
		}

		switch tx.Type {
		case TypeUtang:
			b.TotalDebt = b.TotalDebt.Add(tx.Amount)
		case TypePayment:
			b.TotalPayment = b.TotalPayment.Add(tx.Amount)
		}

		// Interest recorded on either side counts toward the running total.
		b.TotalInterestPaid = b.TotalInterestPaid.Add(tx.InterestAmount)
	}

	b.Outstanding = b.TotalDebt.Sub(b.TotalPayment).Round(2)

	b.AvailableCredit = debtLimit.Sub(b.Outstanding)
	if b.AvailableCredit.IsNegative() {
		b.AvailableCredit = decimal.Zero
	}

	return b, nil
}

// Statistics aggregates the transactions of the given customers; a nil set
// covers every customer.
func (s *Service) Statistics(ctx context.Context, customers []string) (*Statistics, error) {
	txs, err := s.repo.ListTransactions(ctx, ListFilter{Customers: customers})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	stats := &Statistics{TotalTransactions: len(txs)}
	perCustomer := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if !tx.Confirmed {
			stats.PendingTransactions++
			continue
		}

		stats.ConfirmedTransactions++

		switch tx.Type {
		case TypeUtang:
			stats.UtangTransactions++
			stats.TotalUtangAmount = stats.TotalUtangAmount.Add(tx.Amount)
			stats.TotalInterestAmount = stats.TotalInterestAmount.Add(tx.InterestAmount)
			perCustomer[tx.Customer] = perCustomer[tx.Customer].Add(tx.Amount)
		case TypePayment:
			stats.PaymentTransactions++
			stats.TotalPaymentAmount = stats.TotalPaymentAmount.Add(tx.Amount)
			perCustomer[tx.Customer] = perCustomer[tx.Customer].Sub(tx.Amount)
		}
	}

	stats.NetOutstanding = stats.TotalUtangAmount.Sub(stats.TotalPaymentAmount)

	for _, outstanding := range perCustomer {
		if outstanding.IsPositive() {
			stats.CustomersWithDebt++
		}
	}

	return stats, nil
}

// TopDebtors ranks the given customers by outstanding balance, highest first.
func (s *Service) TopDebtors(ctx context.Context, customers []string, limit int) ([]Debtor, error) {
	var debtors []Debtor

	for _, customer := range customers {
		b, err := s.Balance(ctx, customer)
		if err != nil {
			return nil, fmt.Errorf("computing balance for %s: %w", customer, err)
		}

		if b.Outstanding.IsPositive() {
			debtors = append(debtors, Debtor{Customer: customer, Outstanding: b.Outstanding})
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		return debtors[i].Outstanding.GreaterThan(debtors[j].Outstanding)
	})

	if limit > 0 && len(debtors) > limit {
		debtors = debtors[:limit]
	}

	return debtors, nil
}

func (s *Service) sendOTPEmail(ctx context.Context, cust *account.Account, tx *Transaction) string {
	if cust.PersonalInfo.Email == "" {
		return " (email not configured)"
	}

	name := cust.PersonalInfo.FullName
	if name == "" {
		name = cust.Username
	}

	var dueDate *time.Time
	if tx.Type == TypeUtang {
		dueDate = tx.DueDate
	}

	err := s.mailer.SendOTP(ctx, mail.OTPMessage{
		To:              cust.PersonalInfo.Email,
		Name:            name,
		Code:            tx.OTP,
		TransactionType: string(tx.Type),
		Amount:          tx.Amount,
		Description:     tx.Description,
		DueDate:         dueDate,
	})
	if err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			return " (email not configured)"
		}

		slog.Warn("failed to send OTP email", "customer", tx.Customer, "error", err)

		return " (email failed)"
	}

	return " (email sent)"
}

func (s *Service) pendingAlertMessage(ctx context.Context, tx *Transaction) string {
	if tx.Type == TypePayment {
		return fmt.Sprintf("PAYMENT PENDING: %s\nAmount: %s\nOTP for confirmation: %s",
			tx.Description, s.settings.FormatAmount(ctx, tx.Amount), tx.OTP)
	}

	amountLine := fmt.Sprintf("Amount: %s", s.settings.FormatAmount(ctx, tx.Amount))
	if tx.InterestRate.IsPositive() {
		amountLine = fmt.Sprintf("Amount: %s (Principal: %s + %s%% Interest: %s)",
			s.settings.FormatAmount(ctx, tx.Amount),
			s.settings.FormatAmount(ctx, tx.PrincipalAmount),
			tx.InterestRate.String(),
			s.settings.FormatAmount(ctx, tx.InterestAmount),
		)
	}

	msg := fmt.Sprintf("NEW UTANG PENDING: %s\n%s", tx.Description, amountLine)

	if tx.DueDate != nil {
		msg += fmt.Sprintf("\nDue Date: %s (%d days from today)",
			tx.DueDate.Format(time.DateOnly), daysUntil(*tx.DueDate))
	}

	return msg + fmt.Sprintf("\nOTP for confirmation: %s", tx.OTP)
}

func (s *Service) confirmedAlertMessage(ctx context.Context, tx *Transaction) string {
	if tx.Type == TypePayment {
		return fmt.Sprintf("PAYMENT CONFIRMED: %s\nAmount: %s",
			tx.Description, s.settings.FormatAmount(ctx, tx.Amount))
	}

	msg := fmt.Sprintf("UTANG CONFIRMED: %s\nAmount: %s",
		tx.Description, s.settings.FormatAmount(ctx, tx.Amount))

	if tx.InterestRate.IsPositive() {
		msg = fmt.Sprintf("UTANG CONFIRMED: %s\nTotal: %s (Principal: %s + Interest: %s)",
			tx.Description,
			s.settings.FormatAmount(ctx, tx.Amount),
			s.settings.FormatAmount(ctx, tx.PrincipalAmount),
			s.settings.FormatAmount(ctx, tx.InterestAmount),
		)
	}

	if tx.DueDate != nil {
		msg += fmt.Sprintf("\nDue Date: %s (%d days from today)",
			tx.DueDate.Format(time.DateOnly), daysUntil(*tx.DueDate))
	}

	return msg
}

func (s *Service) notify(ctx context.Context, username, message string) {
	if err := s.alerts.Send(ctx, username, message); err != nil {
		slog.Warn("failed to send alert", "username", username, "error", err)
	}
}

// daysUntil counts whole calendar days from today to t; negative when t is
// in the past.
func daysUntil(t time.Time) int {
	return daysBetween(time.Now(), t)
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(b.Sub(a).Hours() / 24)
}
