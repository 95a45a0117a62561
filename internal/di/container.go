package di

import (
	"github.com/banking/transaction-service/internal/config"
	"github.com/banking/transaction-service/internal/infrastructure/api/handlers"
	"github.com/banking/transaction-service/internal/infrastructure/cache"
	"github.com/banking/transaction-service/internal/infrastructure/memory"
	"github.com/banking/transaction-service/internal/usecases/interactor"
)

type Container struct {
	TransactionHandler    *handlers.TransactionHandler
	TransactionInteractor *interactor.TransactionInteractor
	ResponseCache         *cache.ResponseCache
}

// NewContainer creates a new Container instance.
func NewContainer(cfg *config.Config) *Container {
	transactionRepository := memory.NewTransactionRepositoryImpl()
	responseCache := cache.NewResponseCache(cfg.Cache.Capacity(), cfg.Cache.TTL())

	transactionInteractor := interactor.NewTransactionInteractor(transactionRepository, responseCache, cfg.Duplicate.Window())
	transactionHandler := handlers.NewTransactionHandler(transactionInteractor)

	return &Container{
		TransactionHandler:    transactionHandler,
		TransactionInteractor: transactionInteractor,
		ResponseCache:         responseCache,
	}
}
