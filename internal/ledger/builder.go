package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildParams carries everything needed to materialize a payment entry.
type BuildParams struct {
	CompanyID        uuid.UUID
	Number           string
	Date             time.Time
	Method           PaymentMethod
	Direction        Direction
	Amount           int64
	DocumentNumber   string
	CounterpartyName string
	Reference        string
	ActorID          uuid.UUID
}

// BuildPaymentEntry produces the two-line entry for a payment: one debit line
// and one credit line, each carrying the full amount. The balance invariant
// holds by construction. The reference defaults to the payment reference, or
// the document number when absent.
func BuildPaymentEntry(p BuildParams) *Entry {
	debit, credit := ResolveAccounts(p.Method, p.Direction)

	verb := "Payment"
	if p.Direction == DirectionInflow {
		verb = "Collection"
	}

	description := fmt.Sprintf("%s invoice %s - %s", verb, p.DocumentNumber, p.CounterpartyName)

	reference := p.Reference
	if reference == "" {
		reference = p.DocumentNumber
	}

	return &Entry{
		CompanyID:   p.CompanyID,
		Number:      p.Number,
		Date:        p.Date,
		Description: description,
		Reference:   reference,
		Status:      EntryStatusPosted,
		Lines: []Line{
			{AccountCode: debit, Debit: p.Amount, Description: description},
			{AccountCode: credit, Credit: p.Amount, Description: description},
		},
		CreatedBy: p.ActorID,
	}
}
