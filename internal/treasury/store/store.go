package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/treasury"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindActiveAccount picks any active account for the company; which one is
// deliberately unspecified. Returns nil without error when none exist.
func (s *Store) FindActiveAccount(ctx context.Context, companyID uuid.UUID) (*treasury.BankAccount, error) {
	query := `
		SELECT id, company_id, name, iban, active, created_at
		FROM bank_accounts
		WHERE company_id = $1 AND active
		ORDER BY created_at ASC
		LIMIT 1
	`

	var account treasury.BankAccount

	err := s.db.QueryRowContext(ctx, query, companyID).Scan(
		&account.ID, &account.CompanyID, &account.Name,
		&account.IBAN, &account.Active, &account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding active account: %w", err)
	}

	return &account, nil
}

func (s *Store) CreateMovement(ctx context.Context, m *treasury.Movement) error {
	query := `
		INSERT INTO cash_movements (company_id, account_id, type, amount, concept, date, reference, reconciliation, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.CompanyID,
		m.AccountID,
		m.Type,
		m.Amount,
		m.Concept,
		m.Date,
		m.Reference,
		m.Reconciliation,
		m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating cash movement: %w", err)
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, companyID uuid.UUID, filter treasury.ListFilter) ([]*treasury.Movement, error) {
	query := `
		SELECT id, company_id, account_id, type, amount, concept, date, reference, reconciliation, created_by, created_at
		FROM cash_movements
		WHERE company_id = $1`

	args := []any{companyID}

	argIdx := 2

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cash movements: %w", err)
	}
	defer rows.Close()

	var movements []*treasury.Movement

	for rows.Next() {
		var m treasury.Movement

		var typeStr, reconStr string

		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.AccountID, &typeStr, &m.Amount,
			&m.Concept, &m.Date, &m.Reference, &reconStr, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning cash movement: %w", err)
		}

		m.Type = treasury.MovementType(typeStr)
		m.Reconciliation = treasury.ReconciliationStatus(reconStr)

		movements = append(movements, &m)
	}

	return movements, rows.Err()
}
