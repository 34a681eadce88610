package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/auth"
	"github.com/peter86cu/contable-multiempresa/internal/document"
	"github.com/peter86cu/contable-multiempresa/internal/ledger"
	"github.com/peter86cu/contable-multiempresa/internal/posting"
)

type Handler struct {
	svc *posting.Service
}

func NewHandler(svc *posting.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{id}/payments", h.register)
	r.Get("/{id}/payments", h.list)
}

type registerPaymentRequest struct {
	Amount    int64                `json:"amount"`
	Method    ledger.PaymentMethod `json:"method"`
	Date      *time.Time           `json:"date,omitempty"`
	Reference string               `json:"reference,omitempty"`
	Notes     string               `json:"notes,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	documentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	var req registerPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := posting.PaymentParams{
		CompanyID:  claims.CompanyID,
		DocumentID: documentID,
		ActorID:    claims.UserID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
	}

	if req.Date != nil {
		params.Date = *req.Date
	}

	result, err := h.svc.RegisterPayment(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			http.Error(w, "document not found", http.StatusNotFound)
		case errors.Is(err, posting.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, posting.ErrUnauthenticated):
			http.Error(w, "not authenticated", http.StatusUnauthorized)
		default:
			slog.Error("failed to register payment", "document_id", documentID, "error", err)
			http.Error(w, "could not register payment", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResultResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	documentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	payments, err := h.svc.ListPayments(r.Context(), claims.CompanyID, documentID)
	if err != nil {
		slog.Error("failed to list payments", "document_id", documentID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPaymentResponseList(payments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
