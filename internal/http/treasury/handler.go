package treasury

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/auth"
	"github.com/peter86cu/contable-multiempresa/internal/treasury"
)

type Handler struct {
	svc *treasury.Service
}

func NewHandler(svc *treasury.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/movements", h.listMovements)
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	filter := treasury.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t := treasury.MovementType(s)
		filter.Type = &t
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	movements, err := h.svc.List(r.Context(), claims.CompanyID, filter)
	if err != nil {
		slog.Error("failed to list movements", "company_id", claims.CompanyID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(movements)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type movementResponse struct {
	ID             uuid.UUID                     `json:"id"`
	AccountID      uuid.UUID                     `json:"account_id"`
	Type           treasury.MovementType         `json:"type"`
	Amount         int64                         `json:"amount"`
	Concept        string                        `json:"concept"`
	Date           time.Time                     `json:"date"`
	Reference      string                        `json:"reference,omitempty"`
	Reconciliation treasury.ReconciliationStatus `json:"reconciliation"`
	CreatedAt      time.Time                     `json:"created_at"`
}

func toResponseList(movements []*treasury.Movement) []movementResponse {
	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = movementResponse{
			ID:             m.ID,
			AccountID:      m.AccountID,
			Type:           m.Type,
			Amount:         m.Amount,
			Concept:        m.Concept,
			Date:           m.Date,
			Reference:      m.Reference,
			Reconciliation: m.Reconciliation,
			CreatedAt:      m.CreatedAt,
		}
	}

	return resp
}
