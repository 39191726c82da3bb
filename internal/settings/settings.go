// Package settings holds the global key/value configuration shared by all
// read paths: currency symbol, app name, default credit limit and interest
// rate, and the due-date reminder thresholds. Services receive it at
// construction instead of reaching into the store ad hoc.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrNotFound = errors.New("setting not found")

// Keys of the seeded settings.
const (
	KeyCurrencySymbol      = "currencySymbol"
	KeyAppName             = "appName"
	KeyCustomerCreditLimit = "customerCreditLimit"
	KeyInterestRate        = "interestRate"
	KeyDueDateReminderDays = "dueDateReminderDays"
)

// Defaults are the values seeded on first start and restored by a data reset.
var Defaults = map[string]string{
	KeyCurrencySymbol:      "₱",
	KeyAppName:             "IUMS",
	KeyCustomerCreditLimit: "10000.00",
	KeyInterestRate:        "3.0",
	KeyDueDateReminderDays: "7,3,1,0",
}

//go:generate mockgen -source=settings.go -destination=repository_mock.go -package=settings
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)

	// Reset wipes accounts, transactions and alerts and reseeds the settings
	// table with the given defaults.
	Reset(ctx context.Context, defaults map[string]string) error
}

type Service struct {
	repo    Repository
	printer *message.Printer
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		printer: message.NewPrinter(language.English),
	}
}

func (s *Service) Get(ctx context.Context, key string) (string, error) {
	return s.repo.Get(ctx, key)
}

func (s *Service) Update(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("setting key must not be empty")
	}

	return s.repo.Set(ctx, key, value)
}

func (s *Service) All(ctx context.Context) (map[string]string, error) {
	return s.repo.All(ctx)
}

// ResetAllData wipes all accounts, transactions and alerts and restores the
// default settings. Destructive and unrecoverable.
func (s *Service) ResetAllData(ctx context.Context) error {
	if err := s.repo.Reset(ctx, Defaults); err != nil {
		return fmt.Errorf("resetting data: %w", err)
	}

	return nil
}

func (s *Service) CurrencySymbol(ctx context.Context) string {
	return s.stringSetting(ctx, KeyCurrencySymbol)
}

func (s *Service) AppName(ctx context.Context) string {
	return s.stringSetting(ctx, KeyAppName)
}

// DefaultCreditLimit is the debt limit assigned to newly created customers.
func (s *Service) DefaultCreditLimit(ctx context.Context) decimal.Decimal {
	return s.decimalSetting(ctx, KeyCustomerCreditLimit)
}

// DefaultInterestRate is the interest percentage suggested for new utang.
func (s *Service) DefaultInterestRate(ctx context.Context) decimal.Decimal {
	return s.decimalSetting(ctx, KeyInterestRate)
}

// ReminderDays parses the comma-separated reminder thresholds, e.g. "7,3,1,0".
func (s *Service) ReminderDays(ctx context.Context) []int {
	raw := s.stringSetting(ctx, KeyDueDateReminderDays)

	var days []int

	for _, part := range strings.Split(raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			slog.Warn("skipping invalid reminder threshold", "value", part)
			continue
		}

		days = append(days, d)
	}

	if len(days) == 0 {
		return []int{7, 3, 1, 0}
	}

	return days
}

// FormatAmount renders an amount with the configured currency symbol and
// grouped digits, e.g. "₱ 1,030.00".
func (s *Service) FormatAmount(ctx context.Context, amount decimal.Decimal) string {
	symbol := s.stringSetting(ctx, KeyCurrencySymbol)

	formatted := s.printer.Sprint(number.Decimal(
		amount.InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))

	return fmt.Sprintf("%s %s", symbol, formatted)
}

func (s *Service) stringSetting(ctx context.Context, key string) string {
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("failed to read setting", "key", key, "error", err)
		}

		return Defaults[key]
	}

	return value
}

func (s *Service) decimalSetting(ctx context.Context, key string) decimal.Decimal {
	raw := s.stringSetting(ctx, key)

	value, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("invalid decimal setting", "key", key, "value", raw)

		value, _ = decimal.NewFromString(Defaults[key])
	}

	return value
}
