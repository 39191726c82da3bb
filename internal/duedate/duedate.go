package duedate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Debt is a confirmed utang row that still carries a due date.
type Debt struct {
	ID          uuid.UUID
	Customer    string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	DueDate     time.Time
}

// Entry is a due-date listing row. DaysUntilDue is negative when overdue, so
// the upcoming and overdue sets overlap; callers de-duplicate if needed.
type Entry struct {
	Customer     string
	Description  string
	Amount       decimal.Decimal
	DueDate      time.Time
	DaysUntilDue int
}

// OverdueEntry is a debt past its due date.
type OverdueEntry struct {
	Customer    string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	DaysOverdue int
}

// SweepResult summarizes a reminder sweep.
type SweepResult struct {
	Checked    int
	AlertsSent int
	EmailsSent int
}
