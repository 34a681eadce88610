package treasury

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=treasury
type Repository interface {
	// FindActiveAccount returns any active account for the company, or nil
	// when the company has none.
	FindActiveAccount(ctx context.Context, companyID uuid.UUID) (*BankAccount, error)
	CreateMovement(ctx context.Context, m *Movement) error
	ListMovements(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]*Movement, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordParams describes the cash effect of a posted payment.
type RecordParams struct {
	CompanyID uuid.UUID
	Type      MovementType
	Amount    int64
	Concept   string
	Date      time.Time
	Reference string
	ActorID   uuid.UUID
}

// Record creates a pending cash movement against one active account of the
// company. Best-effort: when no active account exists it skips, and every
// failure is logged rather than returned, so a treasury problem never undoes
// a posted payment. Returns the movement, or nil when nothing was recorded.
func (s *Service) Record(ctx context.Context, params RecordParams) *Movement {
	account, err := s.repo.FindActiveAccount(ctx, params.CompanyID)
	if err != nil {
		slog.Error("treasury account lookup failed", "company_id", params.CompanyID, "error", err)
		return nil
	}

	if account == nil {
		return nil
	}

	m := &Movement{
		CompanyID:      params.CompanyID,
		AccountID:      account.ID,
		Type:           params.Type,
		Amount:         params.Amount,
		Concept:        params.Concept,
		Date:           params.Date,
		Reference:      params.Reference,
		Reconciliation: ReconciliationPending,
		CreatedBy:      params.ActorID,
	}

	if err := s.repo.CreateMovement(ctx, m); err != nil {
		slog.Error("cash movement creation failed", "company_id", params.CompanyID, "account_id", account.ID, "error", err)
		return nil
	}

	return m
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, companyID, filter)
}
