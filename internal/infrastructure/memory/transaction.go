package memory

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/banking/transaction-service/internal/domain/models"
	"github.com/banking/transaction-service/internal/domain/repositories"
)

// TransactionRepositoryImpl keeps every transaction in process memory,
// guarded by a read-write lock. Records are stored and returned by value,
// so callers never observe concurrent mutation through a shared reference.
type TransactionRepositoryImpl struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Transaction
}

// NewTransactionRepositoryImpl creates new instance of TransactionRepositoryImpl.
func NewTransactionRepositoryImpl() repositories.TransactionRepository {
	return &TransactionRepositoryImpl{
		items: make(map[uuid.UUID]models.Transaction),
	}
}

// Save inserts the record or replaces the one stored under the same id.
func (r *TransactionRepositoryImpl) Save(transaction models.Transaction) models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[transaction.ID] = transaction
	return transaction
}

func (r *TransactionRepositoryImpl) FindByID(id uuid.UUID) (models.Transaction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transaction, ok := r.items[id]
	return transaction, ok
}

// FindAll returns a snapshot of every stored record. Order is unspecified.
func (r *TransactionRepositoryImpl) FindAll() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Transaction, 0, len(r.items))
	for _, transaction := range r.items {
		all = append(all, transaction)
	}
	return all
}

// FindPage returns the page-th window of size records from the sequence
// sorted by timestamp descending, ties broken by id for determinism.
func (r *TransactionRepositoryImpl) FindPage(page, size int) []models.Transaction {
	all := r.FindAll()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Timestamp.Equal(all[j].Timestamp) {
			return bytes.Compare(all[i].ID[:], all[j].ID[:]) < 0
		}
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	from := page * size
	if from >= len(all) {
		return []models.Transaction{}
	}

	to := from + size
	if to > len(all) {
		to = len(all)
	}
	return all[from:to]
}

func (r *TransactionRepositoryImpl) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// DeleteByID removes the record if present. Deleting an absent id is a no-op.
func (r *TransactionRepositoryImpl) DeleteByID(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
}

func (r *TransactionRepositoryImpl) ExistsByID(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}

// IsDuplicateWithin reports whether some stored record other than the
// candidate itself matches it on account, amount, description and type.
// With windowSeconds > 0 the records must also lie within that many seconds
// of each other; otherwise the time of recording is ignored.
func (r *TransactionRepositoryImpl) IsDuplicateWithin(candidate models.Transaction, windowSeconds int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.items {
		if existing.ID == candidate.ID {
			continue
		}

		if windowSeconds <= 0 {
			if existing.EqualsForDuplication(candidate) {
				return true
			}
			continue
		}

		if existing.IsPotentialDuplicate(candidate, windowSeconds) {
			return true
		}
	}
	return false
}
