package dtos

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/banking/transaction-service/internal/domain/models"
)

type TransactionCreateDTO struct {
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
	Type          string           `json:"type"`
	AccountNumber string           `json:"accountNumber"`
}

// Validate returns the offending fields with their messages, empty when the
// request satisfies every record constraint.
func (d TransactionCreateDTO) Validate() map[string]string {
	errs := make(map[string]string)

	if d.Amount == nil {
		errs["amount"] = "Amount is required"
	} else if !d.Amount.IsPositive() {
		errs["amount"] = "Amount must be positive"
	}

	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "Description is required"
	}

	if d.Type == "" {
		errs["type"] = "Transaction type is required"
	} else if !models.TransactionType(d.Type).Valid() {
		errs["type"] = "Invalid transaction type"
	}

	if strings.TrimSpace(d.AccountNumber) == "" {
		errs["accountNumber"] = "Account number is required"
	}

	return errs
}

// TransactionUpdateDTO is a partial patch: nil means the field was absent
// from the request and the stored value stays untouched.
type TransactionUpdateDTO struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Type          *string          `json:"type,omitempty"`
	AccountNumber *string          `json:"accountNumber,omitempty"`
	Status        *string          `json:"status,omitempty"`
}

// Validate checks only the fields present in the patch.
func (d TransactionUpdateDTO) Validate() map[string]string {
	errs := make(map[string]string)

	if d.Amount != nil && !d.Amount.IsPositive() {
		errs["amount"] = "Amount must be positive"
	}

	if d.Description != nil && strings.TrimSpace(*d.Description) == "" {
		errs["description"] = "Description is required"
	}

	if d.Type != nil && !models.TransactionType(*d.Type).Valid() {
		errs["type"] = "Invalid transaction type"
	}

	if d.AccountNumber != nil && strings.TrimSpace(*d.AccountNumber) == "" {
		errs["accountNumber"] = "Account number is required"
	}

	if d.Status != nil && !models.TransactionStatus(*d.Status).Valid() {
		errs["status"] = "Invalid transaction status"
	}

	return errs
}

// ValidationMessage flattens field errors into a single deterministic message.
func ValidationMessage(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, errs[field]))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

type TransactionResponseDTO struct {
	ID            uuid.UUID                `json:"id"`
	Amount        decimal.Decimal          `json:"amount"`
	Description   string                   `json:"description"`
	Type          models.TransactionType   `json:"type"`
	AccountNumber string                   `json:"accountNumber"`
	Timestamp     time.Time                `json:"timestamp"`
	Status        models.TransactionStatus `json:"status"`
}

type PageResponseDTO struct {
	Content       []TransactionResponseDTO `json:"content"`
	PageNumber    int                      `json:"pageNumber"`
	PageSize      int                      `json:"pageSize"`
	TotalElements int64                    `json:"totalElements"`
	TotalPages    int                      `json:"totalPages"`
	First         bool                     `json:"first"`
	Last          bool                     `json:"last"`
}
