package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deusflow/newspulse/internal/cache"
	"github.com/deusflow/newspulse/internal/logger"
	"github.com/deusflow/newspulse/internal/metrics"
	"github.com/deusflow/newspulse/internal/news"
	"github.com/deusflow/newspulse/internal/rss"
	"github.com/deusflow/newspulse/internal/source"
)

// Limit bounds for one feed request.
const (
	MinLimit = 5
	MaxLimit = 100
)

// Query is a validated-on-entry feed request.
type Query struct {
	Category string // all | ai | politics | business | conflict | society
	Limit    int    // 0 means the service default
	Lang     string // auto | ru | en
}

// Feed is the response shape served to callers. An empty feed is a valid,
// if degraded, answer; Success stays true.
type Feed struct {
	Success  bool        `json:"success"`
	Count    int         `json:"count"`
	Category string      `json:"category"`
	News     []news.Item `json:"news"`
}

// SourceHealth is the last observed per-source outcome, introspection only.
type SourceHealth struct {
	Name    string     `json:"name"`
	Status  rss.Status `json:"status"`
	Checked time.Time  `json:"checked"`
}

// Service runs the aggregation pipeline behind the cache: fetch, dedupe,
// categorize, score, order, truncate.
type Service struct {
	registry    *source.Registry
	aggregator  *rss.Aggregator
	categorizer *news.Categorizer
	scorer      *news.Scorer
	cache       *cache.MultiTier

	defaultLimit int

	mu     sync.RWMutex
	health map[string]SourceHealth
}

// NewService wires the pipeline together.
func NewService(registry *source.Registry, aggregator *rss.Aggregator, categorizer *news.Categorizer, scorer *news.Scorer, tiers *cache.MultiTier, defaultLimit int) *Service {
	if defaultLimit < MinLimit || defaultLimit > MaxLimit {
		defaultLimit = 10
	}
	return &Service{
		registry:     registry,
		aggregator:   aggregator,
		categorizer:  categorizer,
		scorer:       scorer,
		cache:        tiers,
		defaultLimit: defaultLimit,
		health:       make(map[string]SourceHealth),
	}
}

// GetFeed validates the query, then serves from cache or refreshes. All
// validation happens before any fetching; a bad request never hits the
// sources.
func (s *Service) GetFeed(ctx context.Context, q Query) (*Feed, error) {
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == "" {
		category = "all"
	}
	if category != "all" {
		if _, ok := news.ParseCategory(category); !ok {
			return nil, fmt.Errorf("unknown category %q", q.Category)
		}
	}

	limit := q.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < MinLimit || limit > MaxLimit {
		return nil, fmt.Errorf("limit %d out of range [%d,%d]", q.Limit, MinLimit, MaxLimit)
	}

	lang := strings.ToLower(strings.TrimSpace(q.Lang))
	if lang == "" {
		lang = "auto"
	}
	if lang != "auto" && lang != "ru" && lang != "en" {
		return nil, fmt.Errorf("unknown language %q", q.Lang)
	}

	key := fmt.Sprintf("%s|%d|%s", category, limit, lang)
	items, err := s.cache.GetOrRefresh(ctx, key, func(ctx context.Context) ([]news.Item, error) {
		return s.refresh(ctx, category, limit, lang)
	})
	if err != nil {
		return nil, err
	}

	return &Feed{
		Success:  true,
		Count:    len(items),
		Category: category,
		News:     items,
	}, nil
}

// refresh runs one full aggregation pass for a cache key.
func (s *Service) refresh(ctx context.Context, category string, limit int, lang string) ([]news.Item, error) {
	start := time.Now()

	sources := s.registry.ForCategory(category)
	result := s.aggregator.Aggregate(ctx, sources)
	okCount, failedCount := s.recordHealth(result.SourceStatus)

	deduped := news.Dedupe(result.Items, func(it rss.Item) string {
		return string(s.categorizer.Categorize(it.Title + " " + it.Summary))
	})
	metrics.Global.AddDuplicatesFiltered(len(result.Items) - len(deduped))

	items := make([]news.Item, 0, len(deduped))
	for _, raw := range deduped {
		text := raw.Title + " " + raw.Summary
		score := s.scorer.Score(raw.Title, raw.Summary)
		item := news.Item{
			ID:          news.ItemID(raw.Link, raw.Title, raw.SourceName),
			Title:       raw.Title,
			Summary:     raw.Summary,
			Link:        raw.Link,
			SourceName:  raw.SourceName,
			Published:   raw.Published,
			Category:    s.categorizer.Categorize(text),
			Language:    news.DetectLanguage(text),
			Controversy: score,
			IsHot:       score.Value >= s.scorer.HotThreshold(),
		}
		if lang != "auto" && item.Language != lang {
			continue
		}
		items = append(items, item)
	}

	// Newest first; stable sort keeps the pass's insertion order on ties.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})

	// Truncation comes strictly after ordering; cutting earlier would favor
	// whichever source answered first.
	if len(items) > limit {
		items = items[:limit]
	}

	metrics.Global.AddItemsAggregated(len(items))
	metrics.Global.RecordRefresh(time.Since(start))
	if failedCount > 0 && okCount == 0 {
		metrics.Global.SetError(fmt.Sprintf("refresh %q: all %d sources failed", category, failedCount))
	}
	logger.Info("feed refreshed",
		"category", category, "lang", lang,
		"sources", len(sources), "items", len(items),
		"elapsed", time.Since(start))
	return items, nil
}

func (s *Service) recordHealth(statuses map[string]rss.Status) (ok, failed int) {
	now := time.Now()
	s.mu.Lock()
	for name, stat := range statuses {
		s.health[name] = SourceHealth{Name: name, Status: stat, Checked: now}
		if stat == rss.StatusOK {
			ok++
		} else {
			failed++
		}
	}
	s.mu.Unlock()
	metrics.Global.AddSourceResults(ok, failed)
	return ok, failed
}

// Health returns the per-source outcome of the most recent refresh that
// touched each source.
func (s *Service) Health() []SourceHealth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SourceHealth, 0, len(s.health))
	for _, h := range s.health {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Sources exposes the configured source list for introspection.
func (s *Service) Sources() []source.Source {
	return s.registry.Sources()
}
