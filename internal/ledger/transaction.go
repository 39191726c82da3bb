package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes the two sides of the ledger: utang extends credit,
// payment settles it.
type Type string

const (
	TypeUtang   Type = "utang"
	TypePayment Type = "payment"
)

// Status is the lifecycle state of a transaction. A transaction is created
// pending and transitions to confirmed exactly once, on a correct OTP.
type Status string

const (
	StatusPendingOTP Status = "pending_otp"
	StatusConfirmed  Status = "confirmed"
)

// Transaction is a single ledger entry. For utang with interest,
// Amount = PrincipalAmount + InterestAmount. While unconfirmed, OTP holds the
// shared secret the customer must echo back; once confirmed it is never
// checked again.
type Transaction struct {
	ID              uuid.UUID
	Customer        string
	Type            Type
	Description     string
	Amount          decimal.Decimal
	Date            time.Time
	Confirmed       bool
	OTP             string
	CreatedBy       string
	CreatedAt       time.Time
	ConfirmedAt     *time.Time
	Status          Status
	InterestRate    decimal.Decimal
	InterestAmount  decimal.Decimal
	PrincipalAmount decimal.Decimal
	DueDate         *time.Time
}

// Balance is the state derived by replaying a customer's confirmed
// transactions. Outstanding may be negative when overpaid; callers clamp for
// display.
type Balance struct {
	TotalDebt         decimal.Decimal
	TotalPayment      decimal.Decimal
	Outstanding       decimal.Decimal
	DebtLimit         decimal.Decimal
	AvailableCredit   decimal.Decimal
	TotalInterestPaid decimal.Decimal
}

// Statistics aggregates a transaction set for dashboards.
type Statistics struct {
	TotalTransactions     int
	ConfirmedTransactions int
	PendingTransactions   int
	UtangTransactions     int
	PaymentTransactions   int
	TotalUtangAmount      decimal.Decimal
	TotalPaymentAmount    decimal.Decimal
	TotalInterestAmount   decimal.Decimal
	NetOutstanding        decimal.Decimal
	CustomersWithDebt     int
}

// Debtor pairs a customer with their outstanding balance.
type Debtor struct {
	Customer    string
	Outstanding decimal.Decimal
}
