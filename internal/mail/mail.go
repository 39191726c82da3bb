// Package mail delivers out-of-band OTP codes and due-date reminders by
// email. Delivery is best effort: the ledger treats any failure here as a
// status annotation, never as a reason to fail the transaction.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type OTPMessage struct {
	To              string
	Name            string
	Code            string
	TransactionType string
	Amount          decimal.Decimal
	Description     string
	DueDate         *time.Time
}

type Reminder struct {
	To           string
	Name         string
	Description  string
	Amount       decimal.Decimal
	DueDate      time.Time
	DaysUntilDue int
}

type Mailer interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
	SendReminder(ctx context.Context, msg Reminder) error
}

// Noop is used when no SMTP credentials are configured.
type Noop struct{}

func (Noop) SendOTP(context.Context, OTPMessage) error { return ErrNotConfigured }

func (Noop) SendReminder(context.Context, Reminder) error { return ErrNotConfigured }

var ErrNotConfigured = fmt.Errorf("mail: not configured")

type SMTP struct {
	host     string
	port     int
	username string
	password string
	appName  string
}

func NewSMTP(host string, port int, username, password, appName string) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		username: username,
		password: password,
		appName:  appName,
	}
}

func (m *SMTP) SendOTP(ctx context.Context, msg OTPMessage) error {
	subject := fmt.Sprintf("%s - OTP Verification for %s",
		m.appName, cases.Title(language.English).String(msg.TransactionType))

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", msg.Name)
	fmt.Fprintf(&b, "A new %s of %s is awaiting your confirmation.\n", msg.TransactionType, msg.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Description: %s\n", msg.Description)

	if msg.DueDate != nil {
		fmt.Fprintf(&b, "Due date: %s\n", msg.DueDate.Format(time.DateOnly))
	}

	fmt.Fprintf(&b, "\nYour one-time passcode: %s\n", msg.Code)
	fmt.Fprintf(&b, "\nShare this code with your tindera to confirm the transaction.\n")

	return m.send(ctx, msg.To, subject, b.String())
}

func (m *SMTP) SendReminder(ctx context.Context, msg Reminder) error {
	subject := fmt.Sprintf("%s - Due Date Reminder", m.appName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", msg.Name)

	switch {
	case msg.DaysUntilDue < 0:
		fmt.Fprintf(&b, "Your utang %q for %s was due %d day(s) ago (%s). Please pay immediately.\n",
			msg.Description, msg.Amount.StringFixed(2), -msg.DaysUntilDue, msg.DueDate.Format(time.DateOnly))
	case msg.DaysUntilDue == 0:
		fmt.Fprintf(&b, "Your utang %q for %s is due TODAY. Please make payment immediately.\n",
			msg.Description, msg.Amount.StringFixed(2))
	default:
		fmt.Fprintf(&b, "Your utang %q for %s is due in %d day(s) (%s).\n",
			msg.Description, msg.Amount.StringFixed(2), msg.DaysUntilDue, msg.DueDate.Format(time.DateOnly))
	}

	return m.send(ctx, msg.To, subject, b.String())
}

// send pushes the message through a STARTTLS session. net/smtp upgrades the
// connection automatically when the server advertises STARTTLS.
func (m *SMTP) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n", m.username, to, subject)
	payload := []byte(headers + strings.ReplaceAll(body, "\n", "\r\n"))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, payload); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}
