package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter86cu/contable-multiempresa/internal/document"
)

func TestDocument_ApplyPayment(t *testing.T) {
	type testCase struct {
		name   string
		doc    document.Document
		amount int64
		want   document.PaymentState
	}

	tests := []testCase{
		{
			name:   "FullPaymentMarksPaid",
			doc:    document.Document{Total: 118000, Paid: 0, Status: document.StatusPending},
			amount: 118000,
			want:   document.PaymentState{Paid: 118000, Balance: 0, Status: document.StatusPaid},
		},
		{
			name:   "PartialPayment",
			doc:    document.Document{Total: 295000, Paid: 100000, Status: document.StatusPartial},
			amount: 95000,
			want:   document.PaymentState{Paid: 195000, Balance: 100000, Status: document.StatusPartial},
		},
		{
			name:   "FirstPartialPaymentFromPending",
			doc:    document.Document{Total: 50000, Paid: 0, Status: document.StatusPending},
			amount: 20000,
			want:   document.PaymentState{Paid: 20000, Balance: 30000, Status: document.StatusPartial},
		},
		{
			name:   "OverpaymentClampsBalance",
			doc:    document.Document{Total: 40000, Paid: 30000, Status: document.StatusPartial},
			amount: 30000,
			want:   document.PaymentState{Paid: 60000, Balance: 0, Status: document.StatusPaid},
		},
		{
			name:   "OverduePartialPaymentBecomesPartial",
			doc:    document.Document{Total: 100000, Paid: 0, Status: document.StatusOverdue},
			amount: 25000,
			want:   document.PaymentState{Paid: 25000, Balance: 75000, Status: document.StatusPartial},
		},
		{
			name:   "ZeroAmountKeepsStatus",
			doc:    document.Document{Total: 100000, Paid: 0, Status: document.StatusOverdue},
			amount: 0,
			want:   document.PaymentState{Paid: 0, Balance: 100000, Status: document.StatusOverdue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.doc.ApplyPayment(tt.amount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_ApplyPayment_SequentialNeverNegative(t *testing.T) {
	doc := document.Document{Total: 40000, Paid: 0, Status: document.StatusPending}

	first := doc.ApplyPayment(30000)
	assert.Equal(t, document.StatusPartial, first.Status)
	assert.Equal(t, int64(10000), first.Balance)

	doc.Paid = first.Paid
	doc.Balance = first.Balance
	doc.Status = first.Status

	second := doc.ApplyPayment(30000)
	assert.Equal(t, document.StatusPaid, second.Status)
	assert.Equal(t, int64(0), second.Balance)
	assert.GreaterOrEqual(t, second.Balance, int64(0))
}
