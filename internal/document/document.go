package document

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("document not found")

// Kind distinguishes receivable invoices from payable bills.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindBill    Kind = "bill"
)

// Status represents the payment lifecycle state of a document.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusVoid    Status = "void"
)

// Document is a receivable invoice or payable bill tracking an amount owed
// and its payment progress. Amounts are in cents.
type Document struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Kind             Kind
	Number           string
	CounterpartyID   uuid.UUID
	CounterpartyName string
	Total            int64
	Paid             int64
	Balance          int64
	Status           Status
	IssueDate        time.Time
	DueDate          *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// PaymentState is the document's paid/balance/status after applying a payment.
type PaymentState struct {
	Paid    int64
	Balance int64
	Status  Status
}

// ApplyPayment computes the document state after a payment of amount cents.
// The balance never goes negative; a fully covered document becomes paid, a
// partially covered one partial, anything else keeps its current status.
func (d *Document) ApplyPayment(amount int64) PaymentState {
	paid := d.Paid + amount

	balance := d.Total - paid
	if balance < 0 {
		balance = 0
	}

	status := d.Status

	switch {
	case balance <= 0:
		status = StatusPaid
	case paid > 0 && paid < d.Total:
		status = StatusPartial
	}

	return PaymentState{Paid: paid, Balance: balance, Status: status}
}
