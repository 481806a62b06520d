package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/deusflow/newspulse/internal/metrics"
	"github.com/deusflow/newspulse/internal/news"
)

// MultiTier serves aggregation results memory-first, then from the shared
// tier, then by running the refresh function. Concurrent misses on one key
// collapse into a single refresh whose result every waiter shares, so a
// burst of identical requests costs one pass over the feed sources.
type MultiTier struct {
	local  *Memory
	shared Shared // nil when no backend is configured
	ttl    time.Duration
	group  singleflight.Group
}

// NewMultiTier wires the tiers together. shared may be nil.
func NewMultiTier(local *Memory, shared Shared, ttl time.Duration) *MultiTier {
	return &MultiTier{local: local, shared: shared, ttl: ttl}
}

// GetOrRefresh returns the cached items for key, refreshing at most once per
// key at a time. The refresh is detached from the triggering caller's
// cancellation; waiters joining mid-flight share its outcome either way.
func (m *MultiTier) GetOrRefresh(ctx context.Context, key string, refresh func(context.Context) ([]news.Item, error)) ([]news.Item, error) {
	if e, ok := m.local.Get(key); ok {
		metrics.Global.IncrementCacheHit()
		return e.Items, nil
	}

	if m.shared != nil {
		if items, ok := m.shared.Get(ctx, key); ok {
			metrics.Global.IncrementCacheHit()
			m.local.Set(key, items, m.ttl)
			return items, nil
		}
	}
	metrics.Global.IncrementCacheMiss()

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		// A refresh may have landed between our miss and winning the flight.
		if e, ok := m.local.Get(key); ok {
			return e.Items, nil
		}

		// The flight's result is shared and cached for the full TTL, so the
		// caller that happened to trigger it must not be able to abort it:
		// a mid-refresh disconnect would store whatever partial list the
		// aggregator had at that moment. Only the refresh's own deadlines
		// bound it.
		ctx := context.WithoutCancel(ctx)

		items, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		if m.shared != nil {
			m.shared.Set(ctx, key, items, m.ttl)
		}
		m.local.Set(key, items, m.ttl)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]news.Item), nil
}
