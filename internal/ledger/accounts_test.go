package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter86cu/contable-multiempresa/internal/ledger"
)

func TestResolveAccounts(t *testing.T) {
	type testCase struct {
		name       string
		method     ledger.PaymentMethod
		direction  ledger.Direction
		wantDebit  string
		wantCredit string
	}

	tests := []testCase{
		{
			name:       "InflowCash",
			method:     ledger.MethodCash,
			direction:  ledger.DirectionInflow,
			wantDebit:  ledger.AccountCash,
			wantCredit: ledger.AccountReceivable,
		},
		{
			name:       "InflowBankTransfer",
			method:     ledger.MethodBankTransfer,
			direction:  ledger.DirectionInflow,
			wantDebit:  ledger.AccountBank,
			wantCredit: ledger.AccountReceivable,
		},
		{
			name:       "InflowCheck",
			method:     ledger.MethodCheck,
			direction:  ledger.DirectionInflow,
			wantDebit:  ledger.AccountBank,
			wantCredit: ledger.AccountReceivable,
		},
		{
			name:       "InflowCard",
			method:     ledger.MethodCard,
			direction:  ledger.DirectionInflow,
			wantDebit:  ledger.AccountCard,
			wantCredit: ledger.AccountReceivable,
		},
		{
			name:       "InflowOther",
			method:     ledger.MethodOther,
			direction:  ledger.DirectionInflow,
			wantDebit:  ledger.AccountCash,
			wantCredit: ledger.AccountReceivable,
		},
		{
			name:       "OutflowCash",
			method:     ledger.MethodCash,
			direction:  ledger.DirectionOutflow,
			wantDebit:  ledger.AccountPayable,
			wantCredit: ledger.AccountCash,
		},
		{
			name:       "OutflowBankTransfer",
			method:     ledger.MethodBankTransfer,
			direction:  ledger.DirectionOutflow,
			wantDebit:  ledger.AccountPayable,
			wantCredit: ledger.AccountBank,
		},
		{
			name:       "OutflowCard",
			method:     ledger.MethodCard,
			direction:  ledger.DirectionOutflow,
			wantDebit:  ledger.AccountPayable,
			wantCredit: ledger.AccountCard,
		},
		{
			name:       "UnknownMethodFallsBackToCash",
			method:     ledger.PaymentMethod("wire"),
			direction:  ledger.DirectionInflow,
			wantDebit:  ledger.AccountCash,
			wantCredit: ledger.AccountReceivable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit := ledger.ResolveAccounts(tt.method, tt.direction)
			assert.Equal(t, tt.wantDebit, debit)
			assert.Equal(t, tt.wantCredit, credit)
		})
	}
}

func TestResolveAccounts_Pure(t *testing.T) {
	for i := 0; i < 3; i++ {
		debit, credit := ledger.ResolveAccounts(ledger.MethodCard, ledger.DirectionOutflow)
		assert.Equal(t, ledger.AccountPayable, debit)
		assert.Equal(t, ledger.AccountCard, credit)
	}
}
