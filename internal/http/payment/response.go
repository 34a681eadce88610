package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/document"
	"github.com/peter86cu/contable-multiempresa/internal/ledger"
	"github.com/peter86cu/contable-multiempresa/internal/posting"
	"github.com/peter86cu/contable-multiempresa/internal/treasury"
)

type paymentResponse struct {
	ID         uuid.UUID            `json:"id"`
	DocumentID uuid.UUID            `json:"document_id"`
	Amount     int64                `json:"amount"`
	Method     ledger.PaymentMethod `json:"method"`
	Date       time.Time            `json:"date"`
	Reference  string               `json:"reference,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type documentResponse struct {
	ID      uuid.UUID       `json:"id"`
	Number  string          `json:"number"`
	Total   int64           `json:"total"`
	Paid    int64           `json:"paid"`
	Balance int64           `json:"balance"`
	Status  document.Status `json:"status"`
}

type entryResponse struct {
	ID          uuid.UUID          `json:"id"`
	Number      string             `json:"number"`
	Description string             `json:"description"`
	Reference   string             `json:"reference,omitempty"`
	Status      ledger.EntryStatus `json:"status"`
	Lines       []lineResponse     `json:"lines"`
}

type lineResponse struct {
	AccountCode string `json:"account_code"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
	Description string `json:"description"`
}

type movementResponse struct {
	ID        uuid.UUID             `json:"id"`
	AccountID uuid.UUID             `json:"account_id"`
	Type      treasury.MovementType `json:"type"`
	Amount    int64                 `json:"amount"`
	Concept   string                `json:"concept"`
}

type resultResponse struct {
	Payment  paymentResponse   `json:"payment"`
	Document documentResponse  `json:"document"`
	Entry    *entryResponse    `json:"entry,omitempty"`
	Movement *movementResponse `json:"movement,omitempty"`
}

func toPaymentResponse(p *posting.Payment) paymentResponse {
	return paymentResponse{
		ID:         p.ID,
		DocumentID: p.DocumentID,
		Amount:     p.Amount,
		Method:     p.Method,
		Date:       p.Date,
		Reference:  p.Reference,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
	}
}

func toPaymentResponseList(payments []*posting.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

func toResultResponse(result *posting.Result) resultResponse {
	resp := resultResponse{
		Payment: toPaymentResponse(result.Payment),
		Document: documentResponse{
			ID:      result.Document.ID,
			Number:  result.Document.Number,
			Total:   result.Document.Total,
			Paid:    result.Document.Paid,
			Balance: result.Document.Balance,
			Status:  result.Document.Status,
		},
	}

	if result.Entry != nil {
		e := entryResponse{
			ID:          result.Entry.ID,
			Number:      result.Entry.Number,
			Description: result.Entry.Description,
			Reference:   result.Entry.Reference,
			Status:      result.Entry.Status,
		}

		for _, line := range result.Entry.Lines {
			e.Lines = append(e.Lines, lineResponse{
				AccountCode: line.AccountCode,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Description: line.Description,
			})
		}

		resp.Entry = &e
	}

	if result.Movement != nil {
		resp.Movement = &movementResponse{
			ID:        result.Movement.ID,
			AccountID: result.Movement.AccountID,
			Type:      result.Movement.Type,
			Amount:    result.Movement.Amount,
			Concept:   result.Movement.Concept,
		}
	}

	return resp
}
