package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("entry not found")

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodCard         PaymentMethod = "card"
	MethodOther        PaymentMethod = "other"
)

// Direction is the cash flow direction of a payment: inflow for money
// received on a receivable, outflow for money paid on a payable.
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// EntryStatus represents the lifecycle state of an accounting entry.
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "draft"
	EntryStatusPosted EntryStatus = "posted"
)

// Entry is a balanced accounting entry: a header owning an ordered list of
// debit/credit lines. Entries generated by the posting engine always carry
// exactly two lines and are created already posted.
type Entry struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	Number      string
	Date        time.Time
	Description string
	Reference   string
	Status      EntryStatus
	Lines       []Line
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

// Line is one row of an entry, carrying a debit amount xor a credit amount
// (in cents) against one account code.
type Line struct {
	AccountCode string
	Debit       int64
	Credit      int64
	Description string
}

// Balanced reports whether the entry's debit total equals its credit total.
func (e *Entry) Balanced() bool {
	var debit, credit int64

	for _, l := range e.Lines {
		debit += l.Debit
		credit += l.Credit
	}

	return debit == credit
}

// ListFilter narrows entry listings.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}
