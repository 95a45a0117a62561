package repositories

import (
	"github.com/google/uuid"

	"github.com/banking/transaction-service/internal/domain/models"
)

// TransactionRepository is the storage abstraction for transaction records.
// Implementations must be safe for concurrent use and must hand out
// snapshots, never references into live storage.
type TransactionRepository interface {
	Save(transaction models.Transaction) models.Transaction
	FindByID(id uuid.UUID) (models.Transaction, bool)
	FindAll() []models.Transaction
	FindPage(page, size int) []models.Transaction
	Count() int
	DeleteByID(id uuid.UUID)
	ExistsByID(id uuid.UUID) bool
	IsDuplicateWithin(candidate models.Transaction, windowSeconds int64) bool
}
