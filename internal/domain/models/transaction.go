package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	Amount        decimal.Decimal   `json:"amount"`
	Description   string            `json:"description"`
	Type          TransactionType   `json:"type"`
	AccountNumber string            `json:"accountNumber"`
	Timestamp     time.Time         `json:"timestamp"`
	Status        TransactionStatus `json:"status"`
}

// EqualsForDuplication reports whether both transactions carry the same
// amount, description, type and account number. Amounts compare by value,
// so 150.75 and 150.750 match.
func (t Transaction) EqualsForDuplication(other Transaction) bool {
	return t.Amount.Equal(other.Amount) &&
		t.Description == other.Description &&
		t.Type == other.Type &&
		t.AccountNumber == other.AccountNumber
}

// IsPotentialDuplicate reports whether the other transaction looks like a
// repeat of this one on the same account recorded within windowSeconds.
func (t Transaction) IsPotentialDuplicate(other Transaction, windowSeconds int64) bool {
	if t.AccountNumber != other.AccountNumber {
		return false
	}

	if !t.Amount.Equal(other.Amount) || t.Description != other.Description || t.Type != other.Type {
		return false
	}

	between := t.Timestamp.Sub(other.Timestamp)
	if between < 0 {
		between = -between
	}

	return between <= time.Duration(windowSeconds)*time.Second
}
