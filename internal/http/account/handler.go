package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/auth"
	"github.com/iums-ph/iums/internal/ledger"
)

type Handler struct {
	svc    *account.Service
	ledger *ledger.Service
	tokens *auth.Manager
}

func NewHandler(svc *account.Service, ledgerSvc *ledger.Service, tokens *auth.Manager) *Handler {
	return &Handler{svc: svc, ledger: ledgerSvc, tokens: tokens}
}

// PublicRoutes are mounted outside the bearer middleware.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/signup", h.signup)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{username}", h.get)
	r.Delete("/{username}", h.delete)
	r.Patch("/{username}/password", h.changePassword)
	r.Patch("/{username}/username", h.changeUsername)
	r.Get("/{username}/balance", h.balance)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	token, err := h.tokens.Issue(a.Username, string(a.Role))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: a.Username,
		Role:     a.Role,
	})
}

type signupRequest struct {
	Username     string               `json:"username"`
	Password     string               `json:"password"`
	PersonalInfo account.PersonalInfo `json:"personal_info"`
}

// signup registers a new Owner. Customers are created by their owner through
// the authenticated create endpoint.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), account.CreateParams{
		Username:     req.Username,
		Password:     req.Password,
		Role:         account.RoleOwner,
		PersonalInfo: req.PersonalInfo,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	encode(w, http.StatusCreated, toResponse(a))
}

type createAccountRequest struct {
	Username     string               `json:"username"`
	Password     string               `json:"password"`
	Role         account.Role         `json:"role"`
	PersonalInfo account.PersonalInfo `json:"personal_info"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	role := req.Role
	if role == "" {
		role = account.RoleCustomer
	}

	a, err := h.svc.Create(r.Context(), account.CreateParams{
		Username:     req.Username,
		Password:     req.Password,
		Role:         role,
		PersonalInfo: req.PersonalInfo,
		CreatedBy:    identity.Username,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	encode(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	var (
		accounts []*account.Account
		err      error
	)

	if r.URL.Query().Get("mine") == "true" {
		accounts, err = h.svc.ListByCreator(r.Context(), identity.Username)
	} else {
		var role *account.Role

		if s := r.URL.Query().Get("role"); s != "" {
			v := account.Role(s)
			role = &v
		}

		accounts, err = h.svc.List(r.Context(), role)
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toResponseList(accounts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}

	encode(w, http.StatusOK, toResponse(a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	err := h.svc.Delete(r.Context(), chi.URLParam(r, "username"), identity.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), chi.URLParam(r, "username"), req.Password); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type changeUsernameRequest struct {
	Username string `json:"username"`
}

func (h *Handler) changeUsername(w http.ResponseWriter, r *http.Request) {
	var req changeUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.ChangeUsername(r.Context(), chi.URLParam(r, "username"), req.Username); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	b, err := h.ledger.Balance(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, toBalanceResponse(b))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound):
		http.Error(w, "account not found", http.StatusNotFound)
	case errors.Is(err, account.ErrExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, account.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, account.ErrValidation):
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
