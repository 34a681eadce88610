package treasury

import (
	"time"

	"github.com/google/uuid"
)

// MovementType is the direction of a cash movement.
type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

// ReconciliationStatus tracks whether a movement has been matched against a
// bank statement. Movements created by the posting engine start pending.
type ReconciliationStatus string

const (
	ReconciliationPending    ReconciliationStatus = "pending"
	ReconciliationReconciled ReconciliationStatus = "reconciled"
)

// BankAccount is a cash or bank account owned by one company.
type BankAccount struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	IBAN      string
	Active    bool
	CreatedAt time.Time
}

// Movement records one cash inflow or outflow against a bank account,
// independent of the double-entry ledger. Amounts are in cents.
type Movement struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	AccountID      uuid.UUID
	Type           MovementType
	Amount         int64
	Concept        string
	Date           time.Time
	Reference      string
	Reconciliation ReconciliationStatus
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
}

// ListFilter narrows movement listings.
type ListFilter struct {
	Type      *MovementType
	StartDate *time.Time
	EndDate   *time.Time
}
