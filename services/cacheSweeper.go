package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type purger interface {
	Purge()
	Stats() map[string]interface{}
}

// CacheSweeper periodically drops expired username cache entries.
type CacheSweeper struct {
	cache    purger
	interval time.Duration
	log      *zap.Logger
}

func NewCacheSweeper(cache purger, interval time.Duration, log *zap.Logger) *CacheSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CacheSweeper{cache: cache, interval: interval, log: log}
}

// Start sweeps every interval until ctx is cancelled.
func (s *CacheSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *CacheSweeper) Sweep() {
	s.cache.Purge()
	s.log.Debug("username cache swept", zap.Any("stats", s.cache.Stats()))
}

func (s *CacheSweeper) Stats() map[string]interface{} {
	return s.cache.Stats()
}
