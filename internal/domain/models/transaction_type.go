package models

type TransactionType string

const (
	TypeDebit      TransactionType = "DEBIT"
	TypeCredit     TransactionType = "CREDIT"
	TypeTransfer   TransactionType = "TRANSFER"
	TypePayment    TransactionType = "PAYMENT"
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
)

var ValidTypes = map[TransactionType]struct{}{
	TypeDebit:      {},
	TypeCredit:     {},
	TypeTransfer:   {},
	TypePayment:    {},
	TypeDeposit:    {},
	TypeWithdrawal: {},
}

func (t TransactionType) Valid() bool {
	_, ok := ValidTypes[t]
	return ok
}
