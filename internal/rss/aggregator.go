package rss

import (
	"context"
	"time"

	"github.com/deusflow/newspulse/internal/logger"
	"github.com/deusflow/newspulse/internal/source"
)

// Result is the fan-in of one aggregation pass: whatever items arrived
// before the deadline, plus the per-source outcome map.
type Result struct {
	Items        []Item
	SourceStatus map[string]Status
}

// Aggregator fans fetches out over a bounded worker pool and collects
// partial results under a hard overall deadline. One slow source can cost at
// most its own per-source timeout; it never blocks the rest of the batch.
type Aggregator struct {
	fetcher       Fetcher
	maxConcurrent int
	deadline      time.Duration
}

// NewAggregator creates an aggregator over the given fetcher.
func NewAggregator(fetcher Fetcher, maxConcurrent int, deadline time.Duration) *Aggregator {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Aggregator{
		fetcher:       fetcher,
		maxConcurrent: maxConcurrent,
		deadline:      deadline,
	}
}

type sourceResult struct {
	name  string
	items []Item
	stat  Status
}

// Aggregate fetches every source concurrently, at most maxConcurrent in
// flight. Sources still unfinished when the overall deadline fires are
// recorded as timeout; results that already arrived are kept. In-flight
// fetches observe the context and wind down on their own.
func (a *Aggregator) Aggregate(ctx context.Context, sources []source.Source) Result {
	ctx, cancel := context.WithTimeout(ctx, a.deadline)
	defer cancel()

	res := Result{SourceStatus: make(map[string]Status, len(sources))}
	for _, src := range sources {
		// Overwritten as fetches report back; whatever is left unfinished
		// at the deadline stays marked timeout.
		res.SourceStatus[src.Name] = StatusTimeout
	}

	results := make(chan sourceResult, len(sources))
	sem := make(chan struct{}, a.maxConcurrent)

	for _, src := range sources {
		go func(s source.Source) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			items, stat := a.fetcher.Fetch(ctx, s)
			select {
			case results <- sourceResult{name: s.Name, items: items, stat: stat}:
			case <-ctx.Done():
			}
		}(src)
	}

	start := time.Now()
	for done := 0; done < len(sources); done++ {
		select {
		case r := <-results:
			res.SourceStatus[r.name] = r.stat
			if r.stat == StatusOK {
				res.Items = append(res.Items, r.items...)
			}
		case <-ctx.Done():
			logger.Warn("aggregation deadline hit",
				"collected", done, "sources", len(sources), "elapsed", time.Since(start))
			return res
		}
	}
	return res
}
