package app

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/banking/transaction-service/internal/config"
	"github.com/banking/transaction-service/internal/infrastructure/cache"
	"github.com/banking/transaction-service/pkg/log"
)

// CacheStatsReporter periodically writes the recorded cache metrics to the
// log so hit rates stay observable without an external metrics backend.
type CacheStatsReporter struct {
	cache  *cache.ResponseCache
	config config.Process
	logger *zerolog.Logger
}

func NewCacheStatsReporter(c *cache.ResponseCache, cfg config.Process) *CacheStatsReporter {
	l := log.GetLogger()
	return &CacheStatsReporter{cache: c, config: cfg, logger: &l}
}

// Run reports cache metrics on the configured interval until the context is
// cancelled.
func (p *CacheStatsReporter) Run(ctx context.Context) error {
	interval, err := strconv.Atoi(p.config.StatsInterval)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.report()
		}
	}
}

func (p *CacheStatsReporter) report() {
	for name, m := range p.cache.Metrics() {
		p.logger.Info().
			Str("cache", name).
			Uint64("insertions", m.Insertions).
			Uint64("hits", m.Hits).
			Uint64("misses", m.Misses).
			Uint64("evictions", m.Evictions).
			Msg("Cache stats")
	}
}
