package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// BookProvider is the slice of the market service the refresher needs.
type BookProvider interface {
	GetOrderBook(ctx context.Context, q market.SearchQuery) (model.OrderBook, error)
}

// BookRefresher re-runs watched book queries on an interval so the search
// cache stays warm between user requests. Queries arrive over a channel;
// the refresh loop owns the watched set, so no lock guards it.
type BookRefresher struct {
	provider BookProvider
	queryCh  chan market.SearchQuery
	interval time.Duration
	stopped  bool
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewBookRefresher creates a refresher with the given polling interval.
func NewBookRefresher(provider BookProvider, interval time.Duration) *BookRefresher {
	return &BookRefresher{
		provider: provider,
		queryCh:  make(chan market.SearchQuery, 16),
		interval: interval,
		logger:   slog.Default(),
	}
}

// Watch registers a query for periodic refresh. Safe to call from any
// goroutine; a no-op once the refresher has stopped.
func (br *BookRefresher) Watch(q market.SearchQuery) {
	br.mu.RLock()
	defer br.mu.RUnlock()
	if br.stopped {
		return
	}
	br.queryCh <- q
}

// Start runs the refresh loop until the context is cancelled.
func (br *BookRefresher) Start(ctx context.Context) {
	br.logger.Info("starting book refresher", "interval", br.interval)

	go func() {
		defer br.logger.Info("book refresher stopped")

		ticker := time.NewTicker(br.interval)
		defer ticker.Stop()

		var watched []market.SearchQuery
		for {
			select {
			case q := <-br.queryCh:
				watched = append(watched, q)
				br.refresh(ctx, q)

			case <-ticker.C:
				for _, q := range watched {
					br.refresh(ctx, q)
				}

			case <-ctx.Done():
				br.mu.Lock()
				br.stopped = true
				br.mu.Unlock()
				return
			}
		}
	}()
}

func (br *BookRefresher) refresh(ctx context.Context, q market.SearchQuery) {
	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ob, err := br.provider.GetOrderBook(refreshCtx, q)
	if err != nil {
		br.logger.Error("book refresh failed",
			"page", q.Page,
			"count", string(q.Count),
			"error", err)
		return
	}
	br.logger.Debug("book refreshed",
		"orders", len(ob.Orders),
		"total", ob.Total,
		"has_more", ob.HasMore)
}
