package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/ledger"
)

// accountResponse never carries the password.
type accountResponse struct {
	Username     string               `json:"username"`
	Role         account.Role         `json:"role"`
	DebtLimit    decimal.Decimal      `json:"debt_limit"`
	PersonalInfo account.PersonalInfo `json:"personal_info"`
	CreatedAt    time.Time            `json:"created_at"`
	CreatedBy    string               `json:"created_by"`
}

type loginResponse struct {
	Token    string       `json:"token"`
	Username string       `json:"username"`
	Role     account.Role `json:"role"`
}

type balanceResponse struct {
	TotalDebt         decimal.Decimal `json:"total_debt"`
	TotalPayment      decimal.Decimal `json:"total_payment"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	DebtLimit         decimal.Decimal `json:"debt_limit"`
	AvailableCredit   decimal.Decimal `json:"available_credit"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		Username:     a.Username,
		Role:         a.Role,
		DebtLimit:    a.DebtLimit,
		PersonalInfo: a.PersonalInfo,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}

func toBalanceResponse(b *ledger.Balance) balanceResponse {
	return balanceResponse{
		TotalDebt:         b.TotalDebt,
		TotalPayment:      b.TotalPayment,
		Outstanding:       b.Outstanding,
		DebtLimit:         b.DebtLimit,
		AvailableCredit:   b.AvailableCredit,
		TotalInterestPaid: b.TotalInterestPaid,
	}
}
