package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/ledger"
	"github.com/iums-ph/iums/internal/mail"
)

type serviceMocks struct {
	repo     *ledger.MockRepository
	accounts *ledger.MockAccounts
	duedates *ledger.MockDueDates
}

func newTestService(t *testing.T) (*ledger.Service, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:     ledger.NewMockRepository(ctrl),
		accounts: ledger.NewMockAccounts(ctrl),
		duedates: ledger.NewMockDueDates(ctrl),
	}

	alerts := ledger.NewMockAlerts(ctrl)
	alerts.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	settings := ledger.NewMockSettings(ctrl)
	settings.EXPECT().
		FormatAmount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, amount decimal.Decimal) string {
			return "₱ " + amount.StringFixed(2)
		}).
		AnyTimes()

	svc := ledger.NewService(m.repo, m.accounts, alerts, mail.Noop{}, m.duedates, settings)

	return svc, m
}

func customerAccount(username string) *account.Account {
	return &account.Account{
		Username:  username,
		Role:      account.RoleCustomer,
		DebtLimit: decimal.NewFromInt(10000),
	}
}

func TestService_CreatePending(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.CreateParams
		setupMock func(m serviceMocks)
		check     func(t *testing.T, tx *ledger.Transaction)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "UtangWithInterest",
			params: ledger.CreateParams{
				Customer:     "alice",
				Type:         ledger.TypeUtang,
				Description:  "Rice and canned goods",
				Amount:       decimal.NewFromInt(1000),
				CreatedBy:    "tindahan",
				InterestRate: decimal.NewFromInt(3),
			},
			setupMock: func(m serviceMocks) {
				m.accounts.EXPECT().
					Get(gomock.Any(), "alice").
					Return(customerAccount("alice"), nil)
				m.repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, tx *ledger.Transaction) {
				assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1030)), "amount = %s", tx.Amount)
				assert.True(t, tx.PrincipalAmount.Equal(decimal.NewFromInt(1000)))
				assert.True(t, tx.InterestAmount.Equal(decimal.NewFromInt(30)))
				assert.Equal(t, ledger.StatusPendingOTP, tx.Status)
				assert.False(t, tx.Confirmed)
				assert.Len(t, tx.OTP, 6)
				require.NotNil(t, tx.DueDate)
				assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *tx.DueDate, time.Minute)
			},
		},
		{
			name: "PaymentHasNoDueDateOrInterest",
			params: ledger.CreateParams{
				Customer:     "alice",
				Type:         ledger.TypePayment,
				Description:  "Weekly payment",
				Amount:       decimal.NewFromInt(500),
				CreatedBy:    "tindahan",
				InterestRate: decimal.NewFromInt(3),
			},
			setupMock: func(m serviceMocks) {
				m.accounts.EXPECT().
					Get(gomock.Any(), "alice").
					Return(customerAccount("alice"), nil)
				m.repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, tx *ledger.Transaction) {
				assert.True(t, tx.Amount.Equal(decimal.NewFromInt(500)))
				assert.True(t, tx.InterestAmount.IsZero())
				assert.Nil(t, tx.DueDate)
			},
		},
		{
			name: "UnknownCustomer",
			params: ledger.CreateParams{
				Customer: "ghost",
				Type:     ledger.TypeUtang,
				Amount:   decimal.NewFromInt(100),
			},
			setupMock: func(m serviceMocks) {
				m.accounts.EXPECT().
					Get(gomock.Any(), "ghost").
					Return(nil, account.ErrNotFound)
			},
			wantErr: ledger.ErrUnknownCustomer,
		},
		{
			name: "UnknownType",
			params: ledger.CreateParams{
				Customer: "alice",
				Type:     ledger.Type("loan"),
				Amount:   decimal.NewFromInt(100),
			},
			wantErr: ledger.ErrValidation,
		},
		{
			name: "ZeroAmount",
			params: ledger.CreateParams{
				Customer: "alice",
				Type:     ledger.TypeUtang,
				Amount:   decimal.Zero,
			},
			setupMock: func(m serviceMocks) {
				m.accounts.EXPECT().
					Get(gomock.Any(), "alice").
					Return(customerAccount("alice"), nil)
			},
			wantErr: ledger.ErrValidation,
		},
		{
			name: "AmountAboveCeiling",
			params: ledger.CreateParams{
				Customer: "alice",
				Type:     ledger.TypeUtang,
				Amount:   decimal.NewFromInt(2_000_000),
			},
			setupMock: func(m serviceMocks) {
				m.accounts.EXPECT().
					Get(gomock.Any(), "alice").
					Return(customerAccount("alice"), nil)
			},
			wantErr: ledger.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			tx, message, err := svc.CreatePending(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, tx)
			assert.Contains(t, message, "OTP sent to customer")
			assert.Contains(t, message, "email not configured")

			if tt.check != nil {
				tt.check(t, tx)
			}
		})
	}
}

func TestService_Confirm(t *testing.T) {
	id := uuid.New()

	pending := func(txType ledger.Type) *ledger.Transaction {
		return &ledger.Transaction{
			ID:       id,
			Customer: "alice",
			Type:     txType,
			Amount:   decimal.NewFromInt(500),
			OTP:      "123456",
			Status:   ledger.StatusPendingOTP,
		}
	}

	type testCase struct {
		name      string
		otp       string
		setupMock func(m serviceMocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "UtangSuccess",
			otp:  "123456",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(pending(ledger.TypeUtang), nil)
				m.repo.EXPECT().
					ConfirmTransaction(gomock.Any(), id, gomock.Any()).
					Return(true, nil)
			},
		},
		{
			name: "PaymentTriggersDueDateClearing",
			otp:  "123456",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(pending(ledger.TypePayment), nil)
				m.repo.EXPECT().
					ConfirmTransaction(gomock.Any(), id, gomock.Any()).
					Return(true, nil)
				m.duedates.EXPECT().
					ClearPaid(gomock.Any(), "alice").
					Return(nil)
			},
		},
		{
			name: "WrongOTP",
			otp:  "654321",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(pending(ledger.TypeUtang), nil)
			},
			wantErr: ledger.ErrInvalidOTP,
		},
		{
			name: "AlreadyConfirmed",
			otp:  "123456",
			setupMock: func(m serviceMocks) {
				tx := pending(ledger.TypeUtang)
				tx.Confirmed = true
				tx.Status = ledger.StatusConfirmed

				m.repo.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(tx, nil)
			},
			wantErr: ledger.ErrAlreadyConfirmed,
		},
		{
			name: "LostConfirmationRace",
			otp:  "123456",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(pending(ledger.TypeUtang), nil)
				m.repo.EXPECT().
					ConfirmTransaction(gomock.Any(), id, gomock.Any()).
					Return(false, nil)
			},
			wantErr: ledger.ErrAlreadyConfirmed,
		},
		{
			name: "NotFound",
			otp:  "123456",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(nil, ledger.ErrNotFound)
			},
			wantErr: ledger.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			message, err := svc.Confirm(context.Background(), id, tt.otp)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Transaction confirmed successfully", message)
		})
	}
}

func TestService_Balance(t *testing.T) {
	confirmed := func(txType ledger.Type, amount, interest int64) *ledger.Transaction {
		return &ledger.Transaction{
			ID:             uuid.New(),
			Customer:       "alice",
			Type:           txType,
			Amount:         decimal.NewFromInt(amount),
			InterestAmount: decimal.NewFromInt(interest),
			Confirmed:      true,
			Status:         ledger.StatusConfirmed,
		}
	}

	t.Run("ReplaysConfirmedOnly", func(t *testing.T) {
		svc, m := newTestService(t)

		pendingTx := &ledger.Transaction{
			ID:       uuid.New(),
			Customer: "alice",
			Type:     ledger.TypeUtang,
			Amount:   decimal.NewFromInt(9999),
		}

		m.accounts.EXPECT().
			Get(gomock.Any(), "alice").
			Return(customerAccount("alice"), nil)
		m.repo.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			Return([]*ledger.Transaction{
				confirmed(ledger.TypeUtang, 1030, 30),
				confirmed(ledger.TypePayment, 500, 0),
				pendingTx,
			}, nil)

		b, err := svc.Balance(context.Background(), "alice")
		require.NoError(t, err)

		assert.True(t, b.TotalDebt.Equal(decimal.NewFromInt(1030)), "debt = %s", b.TotalDebt)
		assert.True(t, b.TotalPayment.Equal(decimal.NewFromInt(500)))
		assert.True(t, b.Outstanding.Equal(decimal.NewFromInt(530)))
		assert.True(t, b.TotalInterestPaid.Equal(decimal.NewFromInt(30)))
		assert.True(t, b.AvailableCredit.Equal(decimal.NewFromInt(9470)))
	})

	t.Run("AvailableCreditClampedAtZero", func(t *testing.T) {
		svc, m := newTestService(t)

		m.accounts.EXPECT().
			Get(gomock.Any(), "alice").
			Return(customerAccount("alice"), nil)
		m.repo.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			Return([]*ledger.Transaction{
				confirmed(ledger.TypeUtang, 15000, 0),
			}, nil)

		b, err := svc.Balance(context.Background(), "alice")
		require.NoError(t, err)

		assert.True(t, b.Outstanding.Equal(decimal.NewFromInt(15000)))
		assert.True(t, b.AvailableCredit.IsZero())
	})

	t.Run("UnknownCustomerGetsZeroLimit", func(t *testing.T) {
		svc, m := newTestService(t)

		m.accounts.EXPECT().
			Get(gomock.Any(), "ghost").
			Return(nil, account.ErrNotFound)
		m.repo.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			Return(nil, nil)

		b, err := svc.Balance(context.Background(), "ghost")
		require.NoError(t, err)

		assert.True(t, b.DebtLimit.IsZero())
		assert.True(t, b.Outstanding.IsZero())
	})
}

func TestService_Statistics(t *testing.T) {
	svc, m := newTestService(t)

	txs := []*ledger.Transaction{
		{Customer: "alice", Type: ledger.TypeUtang, Amount: decimal.NewFromInt(1000), InterestAmount: decimal.NewFromInt(30), Confirmed: true},
		{Customer: "alice", Type: ledger.TypePayment, Amount: decimal.NewFromInt(400), Confirmed: true},
		{Customer: "bob", Type: ledger.TypeUtang, Amount: decimal.NewFromInt(200), Confirmed: true},
		{Customer: "bob", Type: ledger.TypePayment, Amount: decimal.NewFromInt(200), Confirmed: true},
		{Customer: "bob", Type: ledger.TypeUtang, Amount: decimal.NewFromInt(50)},
	}

	m.repo.EXPECT().
		ListTransactions(gomock.Any(), ledger.ListFilter{Customers: []string{"alice", "bob"}}).
		Return(txs, nil)

	stats, err := svc.Statistics(context.Background(), []string{"alice", "bob"})
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalTransactions)
	assert.Equal(t, 4, stats.ConfirmedTransactions)
	assert.Equal(t, 1, stats.PendingTransactions)
	assert.Equal(t, 2, stats.UtangTransactions)
	assert.Equal(t, 2, stats.PaymentTransactions)
	assert.True(t, stats.TotalUtangAmount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, stats.TotalPaymentAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, stats.NetOutstanding.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, stats.CustomersWithDebt)
}

func TestService_TopDebtors(t *testing.T) {
	svc, m := newTestService(t)

	balances := map[string]int64{"alice": 530, "bob": 0, "carol": 900}

	for customer, outstanding := range balances {
		customer := customer
		m.accounts.EXPECT().
			Get(gomock.Any(), customer).
			Return(customerAccount(customer), nil)

		var txs []*ledger.Transaction
		if outstanding > 0 {
			txs = append(txs, &ledger.Transaction{
				Customer:  customer,
				Type:      ledger.TypeUtang,
				Amount:    decimal.NewFromInt(outstanding),
				Confirmed: true,
			})
		}

		m.repo.EXPECT().
			ListTransactions(gomock.Any(), ledger.ListFilter{Customer: &customer}).
			Return(txs, nil)
	}

	debtors, err := svc.TopDebtors(context.Background(), []string{"alice", "bob", "carol"}, 5)
	require.NoError(t, err)

	require.Len(t, debtors, 2)
	assert.Equal(t, "carol", debtors[0].Customer)
	assert.Equal(t, "alice", debtors[1].Customer)
}

func TestDelete_ErrorPassthrough(t *testing.T) {
	svc, m := newTestService(t)

	id := uuid.New()
	m.repo.EXPECT().
		DeleteTransaction(gomock.Any(), id).
		Return(errors.New("db error"))

	assert.Error(t, svc.Delete(context.Background(), id))
}
