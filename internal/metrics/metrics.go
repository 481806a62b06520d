package metrics

import (
	"sync"
	"time"
)

// Metrics is operational visibility only: nothing here feeds back into
// scoring or ordering.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	CacheHits          int64
	CacheMisses        int64
	Refreshes          int64
	SourcesOK          int64
	SourcesFailed      int64
	ItemsAggregated    int64
	DuplicatesFiltered int64

	// Timings
	LastRefreshDuration    time.Duration
	AverageRefreshDuration time.Duration
	totalRefreshDuration   time.Duration

	// Status
	LastRefreshTime time.Time
	LastErrorTime   time.Time
	LastError       string
	IsHealthy       bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) IncrementCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *Metrics) AddSourceResults(ok, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesOK += int64(ok)
	m.SourcesFailed += int64(failed)
}

func (m *Metrics) AddItemsAggregated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsAggregated += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) RecordRefresh(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Refreshes++
	m.LastRefreshDuration = duration
	m.totalRefreshDuration += duration
	m.AverageRefreshDuration = m.totalRefreshDuration / time.Duration(m.Refreshes)
	m.LastRefreshTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"cache_hits":          m.CacheHits,
		"cache_misses":        m.CacheMisses,
		"refreshes":           m.Refreshes,
		"sources_ok":          m.SourcesOK,
		"sources_failed":      m.SourcesFailed,
		"items_aggregated":    m.ItemsAggregated,
		"duplicates_filtered": m.DuplicatesFiltered,
		"last_refresh_ms":     m.LastRefreshDuration.Milliseconds(),
		"average_refresh_ms":  m.AverageRefreshDuration.Milliseconds(),
		"last_refresh_time":   m.LastRefreshTime.Format(time.RFC3339),
		"last_error_time":     m.LastErrorTime.Format(time.RFC3339),
		"last_error":          m.LastError,
		"is_healthy":          m.IsHealthy,
	}
}
