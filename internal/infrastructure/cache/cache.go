package cache

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/banking/transaction-service/internal/usecases/dtos"
)

const (
	TransactionCacheName  = "transactionCache"
	TransactionsCacheName = "transactionsCache"

	// allKey is the single key under which the full listing is cached.
	allKey = "all"
)

// ResponseCache holds response snapshots in front of the store: one cache
// keyed by transaction id and one holding the full listing under a sentinel
// key. Entries expire a fixed time after they were written; reads do not
// extend an entry's life. The cache performs no invalidation of its own,
// the service drives evictions around every store mutation.
type ResponseCache struct {
	single *ttlcache.Cache[uuid.UUID, dtos.TransactionResponseDTO]
	list   *ttlcache.Cache[string, []dtos.TransactionResponseDTO]
}

// NewResponseCache creates both caches with the shared policy: at most
// capacity entries each and expire-after-write ttl.
func NewResponseCache(capacity uint64, ttl time.Duration) *ResponseCache {
	single := ttlcache.New[uuid.UUID, dtos.TransactionResponseDTO](
		ttlcache.WithTTL[uuid.UUID, dtos.TransactionResponseDTO](ttl),
		ttlcache.WithCapacity[uuid.UUID, dtos.TransactionResponseDTO](capacity),
		ttlcache.WithDisableTouchOnHit[uuid.UUID, dtos.TransactionResponseDTO](),
	)

	list := ttlcache.New[string, []dtos.TransactionResponseDTO](
		ttlcache.WithTTL[string, []dtos.TransactionResponseDTO](ttl),
		ttlcache.WithCapacity[string, []dtos.TransactionResponseDTO](capacity),
		ttlcache.WithDisableTouchOnHit[string, []dtos.TransactionResponseDTO](),
	)

	return &ResponseCache{single: single, list: list}
}

// Start begins the background expiry loops.
func (c *ResponseCache) Start() {
	go c.single.Start()
	go c.list.Start()
}

// Stop stops the background expiry loops.
func (c *ResponseCache) Stop() {
	c.single.Stop()
	c.list.Stop()
}

func (c *ResponseCache) GetTransaction(id uuid.UUID) (dtos.TransactionResponseDTO, bool) {
	item := c.single.Get(id)
	if item == nil {
		return dtos.TransactionResponseDTO{}, false
	}
	return item.Value(), true
}

// PutTransaction inserts or replaces the snapshot, resetting its expiry.
func (c *ResponseCache) PutTransaction(transaction dtos.TransactionResponseDTO) {
	c.single.Set(transaction.ID, transaction, ttlcache.DefaultTTL)
}

func (c *ResponseCache) EvictTransaction(id uuid.UUID) {
	c.single.Delete(id)
}

func (c *ResponseCache) GetAllTransactions() ([]dtos.TransactionResponseDTO, bool) {
	item := c.list.Get(allKey)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *ResponseCache) PutAllTransactions(transactions []dtos.TransactionResponseDTO) {
	c.list.Set(allKey, transactions, ttlcache.DefaultTTL)
}

func (c *ResponseCache) EvictAllTransactions() {
	c.list.DeleteAll()
}

// Metrics returns hit and miss counters per cache name.
func (c *ResponseCache) Metrics() map[string]ttlcache.Metrics {
	return map[string]ttlcache.Metrics{
		TransactionCacheName:  c.single.Metrics(),
		TransactionsCacheName: c.list.Metrics(),
	}
}
