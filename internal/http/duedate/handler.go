package duedate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/auth"
	"github.com/iums-ph/iums/internal/duedate"
)

type Handler struct {
	svc      *duedate.Service
	accounts *account.Service
}

func NewHandler(svc *duedate.Service, accounts *account.Service) *Handler {
	return &Handler{svc: svc, accounts: accounts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/upcoming", h.upcoming)
	r.Get("/overdue", h.overdue)
	r.Post("/remind", h.remind)
}

func (h *Handler) upcoming(w http.ResponseWriter, r *http.Request) {
	days := 7
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}

		days = n
	}

	customers, err := h.scopeFromRequest(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entries, err := h.svc.Upcoming(r.Context(), customers, days)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toEntryResponseList(entries))
}

func (h *Handler) overdue(w http.ResponseWriter, r *http.Request) {
	customers, err := h.scopeFromRequest(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entries, err := h.svc.Overdue(r.Context(), customers)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toOverdueResponseList(entries))
}

// remind triggers a reminder sweep on demand, alongside the background
// ticker.
func (h *Handler) remind(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	if identity.Role != string(account.RoleOwner) {
		http.Error(w, "owner role required", http.StatusForbidden)
		return
	}

	result, err := h.svc.SendReminders(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toSweepResponse(result))
}

func (h *Handler) scopeFromRequest(r *http.Request) ([]string, error) {
	if r.URL.Query().Get("mine") != "true" {
		if customer := r.URL.Query().Get("customer"); customer != "" {
			return []string{customer}, nil
		}

		return nil, nil
	}

	identity, _ := auth.IdentityFrom(r.Context())

	return h.accounts.CustomerUsernames(r.Context(), identity.Username)
}

func encode(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
