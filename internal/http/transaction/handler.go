package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/auth"
	"github.com/iums-ph/iums/internal/duedate"
	"github.com/iums-ph/iums/internal/ledger"
)

type Handler struct {
	svc      *ledger.Service
	accounts *account.Service
	duedates *duedate.Service
}

func NewHandler(svc *ledger.Service, accounts *account.Service, duedates *duedate.Service) *Handler {
	return &Handler{svc: svc, accounts: accounts, duedates: duedates}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.statistics)
	r.Get("/debtors", h.topDebtors)
	r.Get("/{id}", h.get)
	r.Post("/{id}/confirm", h.confirm)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Customer     string          `json:"customer"`
	Type         ledger.Type     `json:"type"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	DueDate      string          `json:"due_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dueDate *time.Time

	if req.DueDate != "" {
		t, err := time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			http.Error(w, "invalid due_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		dueDate = &t
	}

	tx, message, err := h.svc.CreatePending(r.Context(), ledger.CreateParams{
		Customer:     req.Customer,
		Type:         req.Type,
		Description:  req.Description,
		Amount:       req.Amount,
		CreatedBy:    identity.Username,
		InterestRate: req.InterestRate,
		DueDate:      dueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	encode(w, http.StatusCreated, createResponse{
		Transaction: toResponse(tx),
		Message:     message,
	})
}

type confirmRequest struct {
	OTP string `json:"otp"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	message, err := h.svc.Confirm(r.Context(), id, req.OTP)
	if err != nil {
		writeError(w, err)
		return
	}

	encode(w, http.StatusOK, messageResponse{Message: message})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	encode(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromRequest(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	customers, err := h.scopeFromRequest(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	stats, err := h.svc.Statistics(r.Context(), customers)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	upcoming, err := h.duedates.Upcoming(r.Context(), customers, 7)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	overdue, err := h.duedates.Overdue(r.Context(), customers)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toStatisticsResponse(stats, len(upcoming), len(overdue)))
}

func (h *Handler) topDebtors(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	customers, err := h.scopeFromRequest(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if customers == nil {
		role := account.RoleCustomer

		accounts, err := h.accounts.List(r.Context(), &role)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		for _, a := range accounts {
			customers = append(customers, a.Username)
		}
	}

	debtors, err := h.svc.TopDebtors(r.Context(), customers, limit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toDebtorResponseList(debtors))
}

func (h *Handler) filterFromRequest(r *http.Request) (ledger.ListFilter, error) {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("customer"); s != "" {
		v := s
		filter.Customer = &v
	}

	if r.URL.Query().Get("pending") == "true" {
		v := false
		filter.Confirmed = &v
	}

	customers, err := h.scopeFromRequest(r)
	if err != nil {
		return filter, err
	}

	filter.Customers = customers

	return filter, nil
}

// scopeFromRequest resolves ?mine=true to the caller's customer set.
func (h *Handler) scopeFromRequest(r *http.Request) ([]string, error) {
	if r.URL.Query().Get("mine") != "true" {
		return nil, nil
	}

	identity, _ := auth.IdentityFrom(r.Context())

	return h.accounts.CustomerUsernames(r.Context(), identity.Username)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrUnknownCustomer):
		http.Error(w, "customer account not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrAlreadyConfirmed):
		http.Error(w, "transaction already confirmed", http.StatusConflict)
	case errors.Is(err, ledger.ErrInvalidOTP):
		http.Error(w, "invalid OTP", http.StatusBadRequest)
	case errors.Is(err, ledger.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func encode(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
