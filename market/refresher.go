package market

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Feed fetches a fresh price table from an external source.
type Feed interface {
	Name() string
	FetchPrices(ctx context.Context) (PriceTable, error)
}

// RefreshObserver is told about every refresh attempt.
type RefreshObserver func(source string, err error)

// Refresher periodically loads prices from a Feed into an Oracle.
type Refresher struct {
	feed     Feed
	oracle   *Oracle
	interval time.Duration
	log      *zap.Logger
	observe  RefreshObserver
	now      func() time.Time
}

// NewRefresher creates a refresher. A nil logger is replaced by a no-op one.
func NewRefresher(feed Feed, oracle *Oracle, interval time.Duration, log *zap.Logger, observe RefreshObserver) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{
		feed:     feed,
		oracle:   oracle,
		interval: interval,
		log:      log,
		observe:  observe,
		now:      time.Now,
	}
}

// Refresh fetches once and stores the result. On failure the previous
// snapshot stays in place.
func (r *Refresher) Refresh(ctx context.Context) error {
	prices, err := r.feed.FetchPrices(ctx)
	if r.observe != nil {
		r.observe(r.feed.Name(), err)
	}
	if err != nil {
		return fmt.Errorf("failed to refresh prices from %s: %w", r.feed.Name(), err)
	}

	r.oracle.Update(r.feed.Name(), prices, r.now())
	r.log.Debug("prices refreshed",
		zap.String("source", r.feed.Name()),
		zap.Strings("currencies", prices.Currencies()),
	)
	return nil
}

// Run refreshes immediately and then on every tick until ctx is done.
// Refresh failures are logged, not returned.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
			r.log.Warn("price refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
