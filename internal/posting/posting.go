package posting

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/peter86cu/contable-multiempresa/internal/ledger"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
)

// Payment is an immutable record of one payment applied to a document.
// Amounts are in cents.
type Payment struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	DocumentID uuid.UUID
	Amount     int64
	Method     ledger.PaymentMethod
	Date       time.Time
	Reference  string
	Notes      string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
}
