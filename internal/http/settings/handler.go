package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iums-ph/iums/internal/account"
	"github.com/iums-ph/iums/internal/auth"
	"github.com/iums-ph/iums/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{key}", h.get)
	r.Put("/{key}", h.update)
	r.Post("/reset", h.reset)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, all)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.svc.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			http.Error(w, "setting not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	encode(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

type updateRequest struct {
	Value string `json:"value"`
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if !isOwner(r) {
		http.Error(w, "owner role required", http.StatusForbidden)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := chi.URLParam(r, "key")

	if err := h.svc.Update(r.Context(), key, req.Value); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	encode(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})
}

// reset wipes all accounts, transactions and alerts and restores the default
// settings.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if !isOwner(r) {
		http.Error(w, "owner role required", http.StatusForbidden)
		return
	}

	if err := h.svc.ResetAllData(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isOwner(r *http.Request) bool {
	identity, ok := auth.IdentityFrom(r.Context())

	return ok && identity.Role == string(account.RoleOwner)
}

func encode(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
