package posting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/document"
	"github.com/peter86cu/contable-multiempresa/internal/ledger"
	"github.com/peter86cu/contable-multiempresa/internal/treasury"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=posting
type Repository interface {
	BeginPosting(ctx context.Context) (Tx, error)

	// LatestEntryNumber returns the highest entry number for the company,
	// or empty when the company has no entries yet.
	LatestEntryNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	CreateEntry(ctx context.Context, e *ledger.Entry) error

	GetEntry(ctx context.Context, companyID, id uuid.UUID) (*ledger.Entry, error)
	ListEntries(ctx context.Context, companyID uuid.UUID, filter ledger.ListFilter) ([]*ledger.Entry, error)
	ListPayments(ctx context.Context, companyID, documentID uuid.UUID) ([]*Payment, error)
}

// Tx is one atomic posting unit against the store: the document re-read, the
// payment insert, and the document update commit together or not at all. The
// re-read locks the document row, so concurrent payments on the same document
// serialize at the store.
type Tx interface {
	GetDocumentForUpdate(ctx context.Context, companyID, documentID uuid.UUID) (*document.Document, error)
	CreatePayment(ctx context.Context, p *Payment) error
	UpdateDocumentPayment(ctx context.Context, documentID uuid.UUID, state document.PaymentState) error
	Commit() error
	Rollback() error
}

// CashRecorder logs the treasury side effect of a posted payment.
type CashRecorder interface {
	Record(ctx context.Context, params treasury.RecordParams) *treasury.Movement
}

type Service struct {
	repo     Repository
	recorder CashRecorder
}

func NewService(repo Repository, recorder CashRecorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// PaymentParams describes one payment event against a document.
type PaymentParams struct {
	CompanyID  uuid.UUID
	DocumentID uuid.UUID
	ActorID    uuid.UUID
	Amount     int64
	Method     ledger.PaymentMethod
	Date       time.Time
	Reference  string
	Notes      string
}

// Result is everything a posted payment produced. Entry is nil when entry
// creation failed after the payment committed; Movement is nil when the
// treasury side effect was skipped or failed.
type Result struct {
	Payment  *Payment
	Document *document.Document
	Entry    *ledger.Entry
	Movement *treasury.Movement
}

// RegisterPayment applies a payment to a document and books its accounting
// effects. The document update and payment record commit in one atomic
// transaction; the accounting entry is written afterwards outside that
// transaction, and the cash movement after that, each downgrade-on-failure:
// an entry or movement failure leaves the payment applied and is only logged.
func (s *Service) RegisterPayment(ctx context.Context, params PaymentParams) (*Result, error) {
	if params.ActorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx, err := s.repo.BeginPosting(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning posting: %w", err)
	}
	defer tx.Rollback()

	doc, err := tx.GetDocumentForUpdate(ctx, params.CompanyID, params.DocumentID)
	if err != nil {
		return nil, err
	}

	state := doc.ApplyPayment(params.Amount)

	payment := &Payment{
		CompanyID:  params.CompanyID,
		DocumentID: doc.ID,
		Amount:     params.Amount,
		Method:     params.Method,
		Date:       date,
		Reference:  params.Reference,
		Notes:      params.Notes,
		CreatedBy:  params.ActorID,
	}

	if err := tx.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	if err := tx.UpdateDocumentPayment(ctx, doc.ID, state); err != nil {
		return nil, fmt.Errorf("updating document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing posting: %w", err)
	}

	doc.Paid = state.Paid
	doc.Balance = state.Balance
	doc.Status = state.Status

	result := &Result{Payment: payment, Document: doc}

	entry := s.createEntry(ctx, doc, payment)
	if entry == nil {
		return result, nil
	}

	result.Entry = entry

	movementType := treasury.MovementIncome
	if doc.Kind == document.KindBill {
		movementType = treasury.MovementExpense
	}

	result.Movement = s.recorder.Record(ctx, treasury.RecordParams{
		CompanyID: doc.CompanyID,
		Type:      movementType,
		Amount:    payment.Amount,
		Concept:   entry.Description,
		Date:      payment.Date,
		Reference: entry.Number,
		ActorID:   params.ActorID,
	})

	return result, nil
}

// createEntry builds and persists the balanced entry for a committed payment.
// Failures are logged and leave the payment applied without its entry.
func (s *Service) createEntry(ctx context.Context, doc *document.Document, payment *Payment) *ledger.Entry {
	now := time.Now()

	var number string

	latest, err := s.repo.LatestEntryNumber(ctx, doc.CompanyID)
	if err != nil {
		slog.Warn("entry number lookup failed, using timestamp fallback",
			"company_id", doc.CompanyID, "error", err)

		number = ledger.FallbackNumber(now)
	} else {
		number = ledger.NextNumber(latest, now)
	}

	direction := ledger.DirectionInflow
	if doc.Kind == document.KindBill {
		direction = ledger.DirectionOutflow
	}

	entry := ledger.BuildPaymentEntry(ledger.BuildParams{
		CompanyID:        doc.CompanyID,
		Number:           number,
		Date:             payment.Date,
		Method:           payment.Method,
		Direction:        direction,
		Amount:           payment.Amount,
		DocumentNumber:   doc.Number,
		CounterpartyName: doc.CounterpartyName,
		Reference:        payment.Reference,
		ActorID:          payment.CreatedBy,
	})

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		slog.Error("payment applied but entry creation failed",
			"payment_id", payment.ID, "document_id", doc.ID, "error", err)

		return nil
	}

	return entry
}

func (s *Service) GetEntry(ctx context.Context, companyID, id uuid.UUID) (*ledger.Entry, error) {
	return s.repo.GetEntry(ctx, companyID, id)
}

func (s *Service) ListEntries(ctx context.Context, companyID uuid.UUID, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	return s.repo.ListEntries(ctx, companyID, filter)
}

func (s *Service) ListPayments(ctx context.Context, companyID, documentID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, companyID, documentID)
}
