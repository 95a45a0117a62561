package models

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusCompleted  TransactionStatus = "COMPLETED"
	StatusFailed     TransactionStatus = "FAILED"
	StatusCancelled  TransactionStatus = "CANCELLED"
	StatusProcessing TransactionStatus = "PROCESSING"
)

var ValidStatuses = map[TransactionStatus]struct{}{
	StatusPending:    {},
	StatusCompleted:  {},
	StatusFailed:     {},
	StatusCancelled:  {},
	StatusProcessing: {},
}

func (s TransactionStatus) Valid() bool {
	_, ok := ValidStatuses[s]
	return ok
}
