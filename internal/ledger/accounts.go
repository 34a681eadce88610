package ledger

// Account codes used by the automatic posting engine.
const (
	AccountCash       = "1011"
	AccountBank       = "1041"
	AccountCard       = "1042"
	AccountReceivable = "1212"
	AccountPayable    = "4212"
)

var methodAccounts = map[PaymentMethod]string{
	MethodCash:         AccountCash,
	MethodBankTransfer: AccountBank,
	MethodCheck:        AccountBank,
	MethodCard:         AccountCard,
	MethodOther:        AccountCash,
}

// ResolveAccounts returns the account codes to debit and credit for a payment
// with the given method and direction. An inflow debits the cash/bank account
// selected by method and credits accounts receivable; an outflow debits
// accounts payable and credits the cash/bank account. Unknown methods map to
// the cash account. Total function: never fails.
func ResolveAccounts(method PaymentMethod, direction Direction) (debit, credit string) {
	cashAccount, ok := methodAccounts[method]
	if !ok {
		cashAccount = AccountCash
	}

	if direction == DirectionInflow {
		return cashAccount, AccountReceivable
	}

	return AccountPayable, cashAccount
}
