package alert

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iums-ph/iums/internal/alert"
	"github.com/iums-ph/iums/internal/auth"
)

type Handler struct {
	svc *alert.Service
}

func NewHandler(svc *alert.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/read", h.markRead)
	r.Delete("/{id}", h.delete)
}

type alertResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	alerts, err := h.svc.List(r.Context(), identity.Username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, alertResponse{
			ID:        a.ID,
			Username:  a.Username,
			Timestamp: a.Timestamp,
			Message:   a.Message,
			Read:      a.Read,
		})
	}

	encode(w, http.StatusOK, resp)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	if err := h.svc.MarkRead(r.Context(), identity.Username); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func encode(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
