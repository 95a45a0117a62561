package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	ErrorFailedToRunTheServer      = "Failed to run the server"
	ErrorFailedToShutdownTheServer = "Failed to shutdown the server"
	ErrFailedDecodeRequestBody     = "Failed to decode request body"
	ErrInvalidRequestBody          = "Invalid request body"
	ErrInvalidTransactionID        = "Invalid transaction id"
	ErrFailedCreateTransaction     = "Failed to create transaction"
	ErrFailedGetTransaction        = "Failed to get transaction"
	ErrFailedUpdateTransaction     = "Failed to update transaction"
	ErrFailedDeleteTransaction     = "Failed to delete transaction"
)

type BadRequestError struct {
	Message string
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string {
	return e.Message
}

type TransactionNotFoundError struct {
	ID uuid.UUID
}

func NewTransactionNotFoundError(id uuid.UUID) *TransactionNotFoundError {
	return &TransactionNotFoundError{ID: id}
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("Transaction not found with id: %s", e.ID)
}

type DuplicateTransactionError struct {
	WindowSeconds int64
}

func NewDuplicateTransactionError(windowSeconds int64) *DuplicateTransactionError {
	return &DuplicateTransactionError{WindowSeconds: windowSeconds}
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("A duplicate transaction was detected within %d seconds", e.WindowSeconds)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
