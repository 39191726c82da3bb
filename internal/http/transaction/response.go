package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/ledger"
)

// transactionResponse never carries the OTP. The code reaches the
// customer through their alert feed and email only.
type transactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Customer        string          `json:"customer"`
	Type            ledger.Type     `json:"type"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	Date            string          `json:"date"`
	DueDate         *string         `json:"due_date,omitempty"`
	Confirmed       bool            `json:"confirmed"`
	Status          ledger.Status   `json:"status"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
}

type createResponse struct {
	Transaction transactionResponse `json:"transaction"`
	Message     string              `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statisticsResponse struct {
	TotalTransactions     int             `json:"total_transactions"`
	ConfirmedTransactions int             `json:"confirmed_transactions"`
	PendingTransactions   int             `json:"pending_transactions"`
	UtangTransactions     int             `json:"utang_transactions"`
	PaymentTransactions   int             `json:"payment_transactions"`
	TotalUtangAmount      decimal.Decimal `json:"total_utang_amount"`
	TotalPaymentAmount    decimal.Decimal `json:"total_payment_amount"`
	TotalInterestAmount   decimal.Decimal `json:"total_interest_amount"`
	NetOutstanding        decimal.Decimal `json:"net_outstanding"`
	CustomersWithDebt     int             `json:"customers_with_debt"`
	UpcomingDueCount      int             `json:"upcoming_due_count"`
	OverdueCount          int             `json:"overdue_count"`
}

type debtorResponse struct {
	Customer    string          `json:"customer"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:              tx.ID,
		Customer:        tx.Customer,
		Type:            tx.Type,
		Description:     tx.Description,
		Amount:          tx.Amount,
		PrincipalAmount: tx.PrincipalAmount,
		InterestRate:    tx.InterestRate,
		InterestAmount:  tx.InterestAmount,
		Date:            tx.Date.Format(time.DateOnly),
		Confirmed:       tx.Confirmed,
		Status:          tx.Status,
		CreatedBy:       tx.CreatedBy,
		CreatedAt:       tx.CreatedAt,
		ConfirmedAt:     tx.ConfirmedAt,
	}

	if tx.DueDate != nil {
		v := tx.DueDate.Format(time.DateOnly)
		resp.DueDate = &v
	}

	return resp
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}

	return resp
}

func toStatisticsResponse(stats *ledger.Statistics, upcoming, overdue int) statisticsResponse {
	return statisticsResponse{
		TotalTransactions:     stats.TotalTransactions,
		ConfirmedTransactions: stats.ConfirmedTransactions,
		PendingTransactions:   stats.PendingTransactions,
		UtangTransactions:     stats.UtangTransactions,
		PaymentTransactions:   stats.PaymentTransactions,
		TotalUtangAmount:      stats.TotalUtangAmount,
		TotalPaymentAmount:    stats.TotalPaymentAmount,
		TotalInterestAmount:   stats.TotalInterestAmount,
		NetOutstanding:        stats.NetOutstanding,
		CustomersWithDebt:     stats.CustomersWithDebt,
		UpcomingDueCount:      upcoming,
		OverdueCount:          overdue,
	}
}

func toDebtorResponseList(debtors []ledger.Debtor) []debtorResponse {
	resp := make([]debtorResponse, 0, len(debtors))
	for _, d := range debtors {
		resp = append(resp, debtorResponse{Customer: d.Customer, Outstanding: d.Outstanding})
	}

	return resp
}
