package duedate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/duedate"
)

type entryResponse struct {
	Customer     string          `json:"customer"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	DaysUntilDue int             `json:"days_until_due"`
}

type overdueResponse struct {
	Customer    string          `json:"customer"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	DaysOverdue int             `json:"days_overdue"`
}

type sweepResponse struct {
	Checked    int `json:"checked"`
	AlertsSent int `json:"alerts_sent"`
	EmailsSent int `json:"emails_sent"`
}

func toEntryResponseList(entries []duedate.Entry) []entryResponse {
	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, entryResponse{
			Customer:     e.Customer,
			Description:  e.Description,
			Amount:       e.Amount,
			DueDate:      e.DueDate.Format(time.DateOnly),
			DaysUntilDue: e.DaysUntilDue,
		})
	}

	return resp
}

func toOverdueResponseList(entries []duedate.OverdueEntry) []overdueResponse {
	resp := make([]overdueResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, overdueResponse{
			Customer:    e.Customer,
			Description: e.Description,
			Amount:      e.Amount,
			DueDate:     e.DueDate.Format(time.DateOnly),
			DaysOverdue: e.DaysOverdue,
		})
	}

	return resp
}

func toSweepResponse(result duedate.SweepResult) sweepResponse {
	return sweepResponse{
		Checked:    result.Checked,
		AlertsSent: result.AlertsSent,
		EmailsSent: result.EmailsSent,
	}
}
