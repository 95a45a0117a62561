package interactor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/banking/transaction-service/internal/domain/models"
	"github.com/banking/transaction-service/internal/domain/repositories"
	apperrors "github.com/banking/transaction-service/internal/errors"
	"github.com/banking/transaction-service/internal/infrastructure/cache"
	"github.com/banking/transaction-service/internal/usecases/dtos"
	"github.com/banking/transaction-service/pkg/log"
)

// TransactionInteractor binds the store and the response caches. It owns
// the duplicate policy and keeps the caches coherent around every store
// mutation: writes put the fresh single-item snapshot and drop the cached
// listing, deletes drop both.
type TransactionInteractor struct {
	transactionRepository repositories.TransactionRepository
	cache                 *cache.ResponseCache
	windowSeconds         int64
	logger                *zerolog.Logger

	// accountLocks serializes check-then-save per account number so that
	// of two concurrent identical writes exactly one wins.
	accountLocksMu sync.Mutex
	accountLocks   map[string]*sync.Mutex
}

func NewTransactionInteractor(transactionRepository repositories.TransactionRepository, responseCache *cache.ResponseCache, windowSeconds int64) *TransactionInteractor {
	l := log.GetLogger()
	return &TransactionInteractor{
		transactionRepository: transactionRepository,
		cache:                 responseCache,
		windowSeconds:         windowSeconds,
		logger:                &l,
		accountLocks:          make(map[string]*sync.Mutex),
	}
}

func (i *TransactionInteractor) accountLock(accountNumber string) *sync.Mutex {
	i.accountLocksMu.Lock()
	l, ok := i.accountLocks[accountNumber]
	if !ok {
		l = &sync.Mutex{}
		i.accountLocks[accountNumber] = l
	}
	i.accountLocksMu.Unlock()
	return l
}

// CreateTransaction records a new transaction unless an equal one was
// recorded on the same account within the duplicate window.
func (i *TransactionInteractor) CreateTransaction(ctx context.Context, dto *dtos.TransactionCreateDTO) (*dtos.TransactionResponseDTO, error) {
	transaction := models.Transaction{
		ID:            uuid.New(),
		Amount:        *dto.Amount,
		Description:   dto.Description,
		Type:          models.TransactionType(dto.Type),
		AccountNumber: dto.AccountNumber,
		Timestamp:     time.Now().UTC(),
		Status:        models.StatusPending,
	}

	lock := i.accountLock(transaction.AccountNumber)
	lock.Lock()
	defer lock.Unlock()

	if i.transactionRepository.IsDuplicateWithin(transaction, i.windowSeconds) {
		i.logger.Error().Str("account", transaction.AccountNumber).Msg("Duplicate transaction detected within the time window")
		return nil, apperrors.NewDuplicateTransactionError(i.windowSeconds)
	}

	saved := i.transactionRepository.Save(transaction)
	response := mapToResponseDTO(saved)

	i.cache.PutTransaction(response)
	i.cache.EvictAllTransactions()

	i.logger.Info().Str("id", response.ID.String()).Msg("Transaction created")
	return &response, nil
}

// GetTransactionByID is a cache-aside read: single cache, then store, then
// cache fill.
func (i *TransactionInteractor) GetTransactionByID(ctx context.Context, id uuid.UUID) (*dtos.TransactionResponseDTO, error) {
	if response, ok := i.cache.GetTransaction(id); ok {
		return &response, nil
	}

	transaction, ok := i.transactionRepository.FindByID(id)
	if !ok {
		i.logger.Error().Str("id", id.String()).Msg("Transaction not found")
		return nil, apperrors.NewTransactionNotFoundError(id)
	}

	response := mapToResponseDTO(transaction)
	i.cache.PutTransaction(response)
	return &response, nil
}

// GetAllTransactions is a cache-aside read of the full listing.
func (i *TransactionInteractor) GetAllTransactions(ctx context.Context) ([]dtos.TransactionResponseDTO, error) {
	if cached, ok := i.cache.GetAllTransactions(); ok {
		return cached, nil
	}

	all := i.transactionRepository.FindAll()
	responses := make([]dtos.TransactionResponseDTO, 0, len(all))
	for _, transaction := range all {
		responses = append(responses, mapToResponseDTO(transaction))
	}

	i.cache.PutAllTransactions(responses)
	return responses, nil
}

// GetTransactionsPaginated reads directly from the store; paged listings
// are not cached.
func (i *TransactionInteractor) GetTransactionsPaginated(ctx context.Context, page, size int) (*dtos.PageResponseDTO, error) {
	items := i.transactionRepository.FindPage(page, size)
	content := make([]dtos.TransactionResponseDTO, 0, len(items))
	for _, transaction := range items {
		content = append(content, mapToResponseDTO(transaction))
	}

	total := i.transactionRepository.Count()
	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}

	return &dtos.PageResponseDTO{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: int64(total),
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page == totalPages-1 || totalPages == 0,
	}, nil
}

// UpdateTransaction applies a partial patch. The id and the original
// timestamp never change. The patched record is rejected when it would
// duplicate another record within the window; the store is left untouched
// in that case.
func (i *TransactionInteractor) UpdateTransaction(ctx context.Context, id uuid.UUID, dto *dtos.TransactionUpdateDTO) (*dtos.TransactionResponseDTO, error) {
	transaction, ok := i.transactionRepository.FindByID(id)
	if !ok {
		i.logger.Error().Str("id", id.String()).Msg("Transaction not found")
		return nil, apperrors.NewTransactionNotFoundError(id)
	}

	if dto.Amount != nil {
		transaction.Amount = *dto.Amount
	}
	if dto.Description != nil {
		transaction.Description = *dto.Description
	}
	if dto.Type != nil {
		transaction.Type = models.TransactionType(*dto.Type)
	}
	if dto.AccountNumber != nil {
		transaction.AccountNumber = *dto.AccountNumber
	}
	if dto.Status != nil {
		transaction.Status = models.TransactionStatus(*dto.Status)
	}

	lock := i.accountLock(transaction.AccountNumber)
	lock.Lock()
	defer lock.Unlock()

	if i.transactionRepository.IsDuplicateWithin(transaction, i.windowSeconds) {
		i.logger.Error().Str("id", id.String()).Msg("Update would duplicate an existing transaction within the time window")
		return nil, apperrors.NewDuplicateTransactionError(i.windowSeconds)
	}

	saved := i.transactionRepository.Save(transaction)
	response := mapToResponseDTO(saved)

	i.cache.PutTransaction(response)
	i.cache.EvictAllTransactions()

	i.logger.Info().Str("id", response.ID.String()).Msg("Transaction updated")
	return &response, nil
}

// DeleteTransaction removes the record and drops it from both caches.
func (i *TransactionInteractor) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if !i.transactionRepository.ExistsByID(id) {
		i.logger.Error().Str("id", id.String()).Msg("Transaction not found")
		return apperrors.NewTransactionNotFoundError(id)
	}

	i.transactionRepository.DeleteByID(id)

	i.cache.EvictTransaction(id)
	i.cache.EvictAllTransactions()

	i.logger.Info().Str("id", id.String()).Msg("Transaction deleted")
	return nil
}

func mapToResponseDTO(transaction models.Transaction) dtos.TransactionResponseDTO {
	return dtos.TransactionResponseDTO{
		ID:            transaction.ID,
		Amount:        transaction.Amount,
		Description:   transaction.Description,
		Type:          transaction.Type,
		AccountNumber: transaction.AccountNumber,
		Timestamp:     transaction.Timestamp,
		Status:        transaction.Status,
	}
}
