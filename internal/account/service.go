package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, username string) (*Account, error)
	ListAccounts(ctx context.Context, role *Role) ([]*Account, error)
	ListByCreator(ctx context.Context, creator string) ([]*Account, error)
	UpdatePassword(ctx context.Context, username, password string) error
	RenameAccount(ctx context.Context, oldName, newName string) error

	// DeleteAccount removes the account together with its transactions and
	// alerts in a single database transaction.
	DeleteAccount(ctx context.Context, username string) error
}

// Settings supplies the default credit limit for new customers.
type Settings interface {
	DefaultCreditLimit(ctx context.Context) decimal.Decimal
}

// Alerts records in-app messages. Failures are logged, never propagated.
type Alerts interface {
	Send(ctx context.Context, username, message string) error
}

type Service struct {
	repo     Repository
	settings Settings
	alerts   Alerts
}

func NewService(repo Repository, settings Settings, alerts Alerts) *Service {
	return &Service{repo: repo, settings: settings, alerts: alerts}
}

type CreateParams struct {
	Username     string
	Password     string
	Role         Role
	PersonalInfo PersonalInfo
	CreatedBy    string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if params.Username == "" || params.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if params.Role != RoleOwner && params.Role != RoleCustomer {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, params.Role)
	}

	if _, err := s.repo.GetAccount(ctx, params.Username); err == nil {
		return nil, ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	debtLimit := decimal.Zero
	if params.Role == RoleCustomer {
		debtLimit = s.settings.DefaultCreditLimit(ctx)
	}

	createdBy := params.CreatedBy
	if createdBy == "" {
		createdBy = "system"
	}

	a := &Account{
		Username:     params.Username,
		Password:     params.Password,
		Role:         params.Role,
		DebtLimit:    debtLimit,
		PersonalInfo: params.PersonalInfo,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	if a.Role == RoleCustomer {
		s.notify(ctx, a.Username,
			fmt.Sprintf("Welcome! Your account has been created by %s.", createdBy))
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, username string) (*Account, error) {
	return s.repo.GetAccount(ctx, username)
}

// Exists satisfies the alert service's recipient check.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *Service) List(ctx context.Context, role *Role) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, role)
}

func (s *Service) ListByCreator(ctx context.Context, creator string) ([]*Account, error) {
	return s.repo.ListByCreator(ctx, creator)
}

// CustomerUsernames returns the usernames of the customers created by the
// given owner; used to scope transaction and due-date views per owner.
func (s *Service) CustomerUsernames(ctx context.Context, owner string) ([]string, error) {
	accounts, err := s.repo.ListByCreator(ctx, owner)
	if err != nil {
		return nil, err
	}

	var names []string

	for _, a := range accounts {
		if a.Role == RoleCustomer {
			names = append(names, a.Username)
		}
	}

	return names, nil
}

// Authenticate checks the credentials. No hashing is applied; password policy
// is out of scope here.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	a, err := s.repo.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if a.Password != password {
		return nil, ErrInvalidCredentials
	}

	return a, nil
}

func (s *Service) ChangePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password must not be empty", ErrValidation)
	}

	if _, err := s.repo.GetAccount(ctx, username); err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, username, newPassword); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	s.notify(ctx, username, "Your account password has been updated successfully.")

	return nil
}

// ChangeUsername renames the account. Transaction and alert rows follow via
// the schema's ON UPDATE CASCADE foreign keys.
func (s *Service) ChangeUsername(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: username must not be empty", ErrValidation)
	}

	if _, err := s.repo.GetAccount(ctx, newName); err == nil {
		return ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.repo.GetAccount(ctx, oldName); err != nil {
		return err
	}

	if err := s.repo.RenameAccount(ctx, oldName, newName); err != nil {
		return fmt.Errorf("renaming account: %w", err)
	}

	s.notify(ctx, newName,
		fmt.Sprintf("Your account username has been updated from %q to %q.", oldName, newName))

	return nil
}

// Delete removes an account and everything attached to it. Deleting your own
// account is refused, as is deleting an account you did not create.
func (s *Service) Delete(ctx context.Context, username, requestedBy string) error {
	if username == requestedBy {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
	}

	a, err := s.repo.GetAccount(ctx, username)
	if err != nil {
		return err
	}

	if a.CreatedBy != requestedBy {
		return fmt.Errorf("%w: you can only delete accounts you created", ErrForbidden)
	}

	if err := s.repo.DeleteAccount(ctx, username); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

func (s *Service) notify(ctx context.Context, username, message string) {
	if err := s.alerts.Send(ctx, username, message); err != nil {
		slog.Warn("failed to send alert", "username", username, "error", err)
	}
}
