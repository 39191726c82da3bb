package ledger_test

import (
	"context"
	"slices"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/duedate"
	"github.com/iums-ph/iums/internal/ledger"
	"github.com/iums-ph/iums/internal/mail"
)

// fakeStore is an in-memory transaction table backing both the ledger and
// the due-date repositories, including the same outstanding-balance gate the
// SQL store applies to due-date listings.
type fakeStore struct {
	txs []*ledger.Transaction
}

func (f *fakeStore) CreateTransaction(_ context.Context, tx *ledger.Transaction) error {
	cp := *tx
	f.txs = append(f.txs, &cp)

	return nil
}

func (f *fakeStore) find(id uuid.UUID) *ledger.Transaction {
	for _, tx := range f.txs {
		if tx.ID == id {
			return tx
		}
	}

	return nil
}

func (f *fakeStore) GetTransaction(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	tx := f.find(id)
	if tx == nil {
		return nil, ledger.ErrNotFound
	}

	cp := *tx

	return &cp, nil
}

func (f *fakeStore) ConfirmTransaction(_ context.Context, id uuid.UUID, confirmedAt time.Time) (bool, error) {
	tx := f.find(id)
	if tx == nil || tx.Confirmed {
		return false, nil
	}

	at := confirmedAt
	tx.Confirmed = true
	tx.ConfirmedAt = &at
	tx.Status = ledger.StatusConfirmed

	return true, nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	for i, tx := range f.txs {
		if tx.ID == id {
			f.txs = append(f.txs[:i], f.txs[i+1:]...)
			return nil
		}
	}

	return nil
}

func (f *fakeStore) ListTransactions(_ context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction

	for _, tx := range f.txs {
		if filter.Customer != nil && tx.Customer != *filter.Customer {
			continue
		}

		if len(filter.Customers) > 0 && !slices.Contains(filter.Customers, tx.Customer) {
			continue
		}

		if filter.Confirmed != nil && tx.Confirmed != *filter.Confirmed {
			continue
		}

		out = append(out, tx)
	}

	return out, nil
}

func (f *fakeStore) Outstanding(_ context.Context, customer string) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, tx := range f.txs {
		if tx.Customer != customer || !tx.Confirmed {
			continue
		}

		if tx.Type == ledger.TypeUtang {
			total = total.Add(tx.Amount)
		} else {
			total = total.Sub(tx.Amount)
		}
	}

	return total, nil
}

func (f *fakeStore) ListOutstandingDue(ctx context.Context, customers []string) ([]duedate.Debt, error) {
	var debts []duedate.Debt

	for _, tx := range f.txs {
		if !tx.Confirmed || tx.Type != ledger.TypeUtang || tx.DueDate == nil {
			continue
		}

		if len(customers) > 0 && !slices.Contains(customers, tx.Customer) {
			continue
		}

		// Settled customers never appear in due-date listings.
		outstanding, _ := f.Outstanding(ctx, tx.Customer)
		if !outstanding.IsPositive() {
			continue
		}

		debts = append(debts, toDebt(tx))
	}

	sort.Slice(debts, func(i, j int) bool { return debts[i].DueDate.Before(debts[j].DueDate) })

	return debts, nil
}

func (f *fakeStore) ListCustomerDebts(_ context.Context, customer string) ([]duedate.Debt, error) {
	var debts []duedate.Debt

	for _, tx := range f.txs {
		if tx.Customer == customer && tx.Confirmed && tx.Type == ledger.TypeUtang && tx.DueDate != nil {
			debts = append(debts, toDebt(tx))
		}
	}

	sort.Slice(debts, func(i, j int) bool { return debts[i].Date.Before(debts[j].Date) })

	return debts, nil
}

func (f *fakeStore) ClearDueDate(_ context.Context, id uuid.UUID) error {
	if tx := f.find(id); tx != nil {
		tx.DueDate = nil
	}

	return nil
}

func (f *fakeStore) ClearAllDueDates(_ context.Context, customer string) error {
	for _, tx := range f.txs {
		if tx.Customer == customer && tx.Confirmed && tx.Type == ledger.TypeUtang {
			tx.DueDate = nil
		}
	}

	return nil
}

func toDebt(tx *ledger.Transaction) duedate.Debt {
	return duedate.Debt{
		ID:          tx.ID,
		Customer:    tx.Customer,
		Description: tx.Description,
		Amount:      tx.Amount,
		Date:        tx.Date,
		DueDate:     *tx.DueDate,
	}
}

type fakeDirectory map[string]*account.Account

func (d fakeDirectory) Get(_ context.Context, username string) (*account.Account, error) {
	if a, ok := d[username]; ok {
		return a, nil
	}

	return nil, account.ErrNotFound
}

type alertLog struct {
	messages map[string][]string
}

func (l *alertLog) Send(_ context.Context, username, message string) error {
	l.messages[username] = append(l.messages[username], message)
	return nil
}

func (l *alertLog) received(username, substring string) bool {
	for _, m := range l.messages[username] {
		if strings.Contains(m, substring) {
			return true
		}
	}

	return false
}

type plainSettings struct{}

func (plainSettings) FormatAmount(_ context.Context, amount decimal.Decimal) string {
	return "₱ " + amount.StringFixed(2)
}

func (plainSettings) ReminderDays(context.Context) []int { return []int{7, 3, 1, 0} }

func newFlowFixture() (*ledger.Service, *duedate.Service, *fakeStore, *alertLog) {
	store := &fakeStore{}
	alerts := &alertLog{messages: map[string][]string{}}

	limit := decimal.NewFromInt(10000)
	directory := fakeDirectory{
		"alice": {Username: "alice", Role: account.RoleCustomer, DebtLimit: limit},
		"bob":   {Username: "bob", Role: account.RoleCustomer, DebtLimit: limit},
	}

	dueSvc := duedate.NewService(store, directory, alerts, mail.Noop{}, plainSettings{})
	ledgerSvc := ledger.NewService(store, directory, alerts, mail.Noop{}, dueSvc, plainSettings{})

	return ledgerSvc, dueSvc, store, alerts
}

func confirmTx(t *testing.T, svc *ledger.Service, tx *ledger.Transaction) {
	t.Helper()

	_, err := svc.Confirm(context.Background(), tx.ID, tx.OTP)
	require.NoError(t, err)
}

// TestUtangLifecycle walks the full flow: utang for two customers, a payment
// covering one of them, and the resulting balance, alert and due-date state.
func TestUtangLifecycle(t *testing.T) {
	ctx := context.Background()
	ledgerSvc, dueSvc, _, alerts := newFlowFixture()

	aliceUtang, message, err := ledgerSvc.CreatePending(ctx, ledger.CreateParams{
		Customer:     "alice",
		Type:         ledger.TypeUtang,
		Description:  "Rice and canned goods",
		Amount:       decimal.NewFromInt(1000),
		CreatedBy:    "tindahan",
		InterestRate: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Contains(t, message, "OTP sent to customer")

	// A wrong code is rejected without consuming the OTP.
	wrong := "000000"
	if aliceUtang.OTP == wrong {
		wrong = "000001"
	}

	_, err = ledgerSvc.Confirm(ctx, aliceUtang.ID, wrong)
	assert.ErrorIs(t, err, ledger.ErrInvalidOTP)

	confirmTx(t, ledgerSvc, aliceUtang)

	// The code is spent after the first successful confirmation.
	_, err = ledgerSvc.Confirm(ctx, aliceUtang.ID, aliceUtang.OTP)
	assert.ErrorIs(t, err, ledger.ErrAlreadyConfirmed)

	bobUtang, _, err := ledgerSvc.CreatePending(ctx, ledger.CreateParams{
		Customer:    "bob",
		Type:        ledger.TypeUtang,
		Description: "Cooking oil",
		Amount:      decimal.NewFromInt(200),
		CreatedBy:   "tindahan",
	})
	require.NoError(t, err)
	confirmTx(t, ledgerSvc, bobUtang)

	b, err := ledgerSvc.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, b.Outstanding.Equal(decimal.NewFromInt(1030)), "outstanding = %s", b.Outstanding)

	entries, err := dueSvc.Upcoming(ctx, nil, 60)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Alice pays in full; her due dates are cleared and bob's remain.
	payment, _, err := ledgerSvc.CreatePending(ctx, ledger.CreateParams{
		Customer:    "alice",
		Type:        ledger.TypePayment,
		Description: "Full payment",
		Amount:      decimal.NewFromInt(1030),
		CreatedBy:   "tindahan",
	})
	require.NoError(t, err)
	assert.Nil(t, payment.DueDate)
	confirmTx(t, ledgerSvc, payment)

	b, err = ledgerSvc.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, b.Outstanding.IsZero(), "outstanding = %s", b.Outstanding)
	assert.True(t, b.AvailableCredit.Equal(decimal.NewFromInt(10000)))

	assert.True(t, alerts.received("alice", "All utang fully paid!"))

	entries, err = dueSvc.Upcoming(ctx, nil, 60)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].Customer)

	overdue, err := dueSvc.Overdue(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

// TestSettledCustomerHiddenFromDueLists checks the listing gate directly: a
// debt row that still carries a due date disappears from upcoming and overdue
// views the moment the customer's balance reaches zero, and reappears when a
// partial repayment leaves something owed.
func TestSettledCustomerHiddenFromDueLists(t *testing.T) {
	ctx := context.Background()
	_, dueSvc, store, _ := newFlowFixture()

	pastDue := time.Now().AddDate(0, 0, -5)

	seed := func(txType ledger.Type, amount int64, dueDate *time.Time) {
		store.txs = append(store.txs, &ledger.Transaction{
			ID:        uuid.New(),
			Customer:  "alice",
			Type:      txType,
			Amount:    decimal.NewFromInt(amount),
			Date:      time.Now().AddDate(0, 0, -40),
			Confirmed: true,
			Status:    ledger.StatusConfirmed,
			DueDate:   dueDate,
		})
	}

	seed(ledger.TypeUtang, 500, &pastDue)
	seed(ledger.TypePayment, 500, nil)

	upcoming, err := dueSvc.Upcoming(ctx, nil, 365)
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	overdue, err := dueSvc.Overdue(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	// New debt makes the balance positive again, so the dated row is back.
	seed(ledger.TypeUtang, 100, nil)

	overdue, err = dueSvc.Overdue(ctx, nil)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, 5, overdue[0].DaysOverdue)
}

// TestCreatePendingBeyondDebtLimit pins the limit down as advisory: creation
// succeeds past it, and the balance reports zero available credit instead.
func TestCreatePendingBeyondDebtLimit(t *testing.T) {
	ctx := context.Background()
	ledgerSvc, _, _, _ := newFlowFixture()

	tx, _, err := ledgerSvc.CreatePending(ctx, ledger.CreateParams{
		Customer:    "alice",
		Type:        ledger.TypeUtang,
		Description: "Fiesta supplies",
		Amount:      decimal.NewFromInt(15000),
		CreatedBy:   "tindahan",
	})
	require.NoError(t, err)
	confirmTx(t, ledgerSvc, tx)

	b, err := ledgerSvc.Balance(ctx, "alice")
	require.NoError(t, err)

	assert.True(t, b.Outstanding.Equal(decimal.NewFromInt(15000)))
	assert.True(t, b.Outstanding.GreaterThan(b.DebtLimit))
	assert.True(t, b.AvailableCredit.IsZero())
}
