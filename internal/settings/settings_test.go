package settings_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iums-ph/iums/internal/settings"
)

func newTestService(t *testing.T) (*settings.Service, *settings.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)

	return settings.NewService(repo), repo
}

func TestService_ReminderDays(t *testing.T) {
	type testCase struct {
		name   string
		stored string
		err    error
		want   []int
	}

	tests := []testCase{
		{
			name:   "Configured",
			stored: "7,3,1,0",
			want:   []int{7, 3, 1, 0},
		},
		{
			name:   "WhitespaceTolerated",
			stored: " 14, 7 ,1",
			want:   []int{14, 7, 1},
		},
		{
			name:   "GarbagePartsSkipped",
			stored: "7,soon,1",
			want:   []int{7, 1},
		},
		{
			name:   "AllGarbageFallsBack",
			stored: "soon,later",
			want:   []int{7, 3, 1, 0},
		},
		{
			name: "MissingKeyFallsBack",
			err:  settings.ErrNotFound,
			want: []int{7, 3, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)

			repo.EXPECT().
				Get(gomock.Any(), settings.KeyDueDateReminderDays).
				Return(tt.stored, tt.err)

			assert.Equal(t, tt.want, svc.ReminderDays(context.Background()))
		})
	}
}

func TestService_FormatAmount(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		Get(gomock.Any(), settings.KeyCurrencySymbol).
		Return("₱", nil).
		AnyTimes()

	ctx := context.Background()

	assert.Equal(t, "₱ 1,030.00", svc.FormatAmount(ctx, decimal.NewFromInt(1030)))
	assert.Equal(t, "₱ 0.50", svc.FormatAmount(ctx, decimal.NewFromFloat(0.5)))
	assert.Equal(t, "₱ 1,234,567.89", svc.FormatAmount(ctx, decimal.NewFromFloat(1234567.89)))
}

func TestService_DefaultCreditLimit(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().
			Get(gomock.Any(), settings.KeyCustomerCreditLimit).
			Return("2500.00", nil)

		limit := svc.DefaultCreditLimit(context.Background())
		assert.True(t, limit.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("InvalidValueFallsBack", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().
			Get(gomock.Any(), settings.KeyCustomerCreditLimit).
			Return("plenty", nil)

		limit := svc.DefaultCreditLimit(context.Background())
		assert.True(t, limit.Equal(decimal.NewFromInt(10000)))
	})
}

func TestService_Update(t *testing.T) {
	t.Run("EmptyKeyRejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		assert.Error(t, svc.Update(context.Background(), "", "x"))
	})

	t.Run("Success", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().
			Set(gomock.Any(), settings.KeyAppName, "Aling Nena's Store").
			Return(nil)

		require.NoError(t, svc.Update(context.Background(), settings.KeyAppName, "Aling Nena's Store"))
	})
}

func TestService_ResetAllData(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		Reset(gomock.Any(), settings.Defaults).
		Return(nil)

	require.NoError(t, svc.ResetAllData(context.Background()))
}
