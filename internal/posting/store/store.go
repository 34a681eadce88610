package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/document"
	"github.com/peter86cu/contable-multiempresa/internal/ledger"
	"github.com/peter86cu/contable-multiempresa/internal/posting"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDocumentColumns = `
	id, company_id, kind, number, counterparty_id, counterparty_name,
	total, paid, balance, status, issue_date, due_date, created_at, updated_at
`

func scanDocument(s scanner) (*document.Document, error) {
	var doc document.Document

	var kindStr, statusStr string

	if err := s.Scan(
		&doc.ID, &doc.CompanyID, &kindStr, &doc.Number,
		&doc.CounterpartyID, &doc.CounterpartyName,
		&doc.Total, &doc.Paid, &doc.Balance, &statusStr,
		&doc.IssueDate, &doc.DueDate, &doc.CreatedAt, &doc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	doc.Kind = document.Kind(kindStr)
	doc.Status = document.Status(statusStr)

	return &doc, nil
}

type postingTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPosting(ctx context.Context) (posting.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning posting tx: %w", err)
	}

	return &postingTx{tx: dbTx}, nil
}

func (p *postingTx) Commit() error   { return p.tx.Commit() }
func (p *postingTx) Rollback() error { return p.tx.Rollback() }

// GetDocumentForUpdate re-reads the document inside the posting transaction
// and locks its row, serializing concurrent payments on the same document.
func (p *postingTx) GetDocumentForUpdate(ctx context.Context, companyID, documentID uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + `
		FROM documents
		WHERE id = $1 AND company_id = $2
		FOR UPDATE`

	doc, err := scanDocument(p.tx.QueryRowContext(ctx, query, documentID, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return doc, nil
}

func (p *postingTx) CreatePayment(ctx context.Context, payment *posting.Payment) error {
	query := `
		INSERT INTO payments (company_id, document_id, amount, method, date, reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := p.tx.QueryRowContext(ctx, query,
		payment.CompanyID,
		payment.DocumentID,
		payment.Amount,
		payment.Method,
		payment.Date,
		payment.Reference,
		payment.Notes,
		payment.CreatedBy,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (p *postingTx) UpdateDocumentPayment(ctx context.Context, documentID uuid.UUID, state document.PaymentState) error {
	query := `
		UPDATE documents
		SET paid = $1, balance = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := p.tx.ExecContext(ctx, query, state.Paid, state.Balance, state.Status, documentID)
	if err != nil {
		return fmt.Errorf("updating document payment: %w", err)
	}

	return nil
}

func (s *Store) LatestEntryNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	query := `
		SELECT number FROM entries
		WHERE company_id = $1
		ORDER BY number DESC
		LIMIT 1
	`

	var number string

	err := s.db.QueryRowContext(ctx, query, companyID).Scan(&number)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("getting latest entry number: %w", err)
	}

	return number, nil
}

// CreateEntry persists the entry header and its lines in one transaction.
func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning entry tx: %w", err)
	}
	defer dbTx.Rollback()

	headerQuery := `
		INSERT INTO entries (company_id, number, date, description, reference, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, headerQuery,
		e.CompanyID,
		e.Number,
		e.Date,
		e.Description,
		e.Reference,
		e.Status,
		e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	lineQuery := `
		INSERT INTO entry_lines (entry_id, line_no, account_code, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, line := range e.Lines {
		if _, err := dbTx.ExecContext(ctx, lineQuery,
			e.ID, i+1, line.AccountCode, line.Debit, line.Credit, line.Description,
		); err != nil {
			return fmt.Errorf("creating entry line: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing entry: %w", err)
	}

	return nil
}

const selectEntryColumns = `
	id, company_id, number, date, description, reference, status, created_by, created_at
`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var statusStr string

	if err := s.Scan(
		&e.ID, &e.CompanyID, &e.Number, &e.Date, &e.Description,
		&e.Reference, &statusStr, &e.CreatedBy, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Status = ledger.EntryStatus(statusStr)

	return &e, nil
}

func (s *Store) GetEntry(ctx context.Context, companyID, id uuid.UUID) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM entries
		WHERE id = $1 AND company_id = $2`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	lines, err := s.entryLines(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	e.Lines = lines

	return e, nil
}

func (s *Store) entryLines(ctx context.Context, entryID uuid.UUID) ([]ledger.Line, error) {
	query := `
		SELECT account_code, debit, credit, description
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY line_no ASC
	`

	rows, err := s.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("listing entry lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.Line

	for rows.Next() {
		var line ledger.Line
		if err := rows.Scan(&line.AccountCode, &line.Debit, &line.Credit, &line.Description); err != nil {
			return nil, fmt.Errorf("scanning entry line: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (s *Store) ListEntries(ctx context.Context, companyID uuid.UUID, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM entries
		WHERE company_id = $1`

	args := []any{companyID}

	argIdx := 2

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

	query += " ORDER BY number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) ListPayments(ctx context.Context, companyID, documentID uuid.UUID) ([]*posting.Payment, error) {
	query := `
		SELECT id, company_id, document_id, amount, method, date, reference, notes, created_by, created_at
		FROM payments
		WHERE company_id = $1 AND document_id = $2
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, companyID, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*posting.Payment

	for rows.Next() {
		var p posting.Payment

		var methodStr string

		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.DocumentID, &p.Amount, &methodStr,
			&p.Date, &p.Reference, &p.Notes, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Method = ledger.PaymentMethod(methodStr)

		payments = append(payments, &p)
	}

	return payments, rows.Err()
}
