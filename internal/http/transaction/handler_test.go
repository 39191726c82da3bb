package transaction_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/duedate"
	transactionHandler "github.com/iums-ph/iums/internal/http/transaction"
	"github.com/iums-ph/iums/internal/ledger"
	"github.com/iums-ph/iums/internal/mail"
)

// Storage failures must never leak their error text to the client.
func TestList_ScopeLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	acctRepo := account.NewMockRepository(ctrl)
	acctRepo.EXPECT().
		ListByCreator(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	acctSvc := account.NewService(acctRepo, account.NewMockSettings(ctrl), account.NewMockAlerts(ctrl))

	ledgerSvc := ledger.NewService(
		ledger.NewMockRepository(ctrl),
		ledger.NewMockAccounts(ctrl),
		ledger.NewMockAlerts(ctrl),
		mail.Noop{},
		ledger.NewMockDueDates(ctrl),
		ledger.NewMockSettings(ctrl),
	)

	dueSvc := duedate.NewService(
		duedate.NewMockRepository(ctrl),
		duedate.NewMockAccounts(ctrl),
		duedate.NewMockAlerts(ctrl),
		mail.Noop{},
		duedate.NewMockSettings(ctrl),
	)

	router := chi.NewRouter()
	transactionHandler.NewHandler(ledgerSvc, acctSvc, dueSvc).Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?mine=true", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error\n", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
