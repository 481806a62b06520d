package rss

import (
	"context"
	"errors"
	"html"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/deusflow/newspulse/internal/logger"
	"github.com/deusflow/newspulse/internal/source"
)

// Status classifies the outcome of one source fetch. Failures are values,
// not errors: the aggregator records them per source and moves on.
type Status string

const (
	StatusOK         Status = "ok"
	StatusTimeout    Status = "timeout"
	StatusHTTPError  Status = "http_error"
	StatusParseError Status = "parse_error"
)

// Item is one raw feed entry, normalized but not yet deduplicated,
// categorized or scored.
type Item struct {
	Title      string
	Summary    string
	Link       string
	Published  time.Time
	SourceName string
}

// Fetcher retrieves the newest entries of one source.
type Fetcher interface {
	Fetch(ctx context.Context, src source.Source) ([]Item, Status)
}

// Some feeds block generic Go user agents.
const userAgent = "Mozilla/5.0 (compatible; newspulse/1.0; +https://github.com/deusflow/newspulse)"

// HTTPFetcher fetches and parses RSS/Atom feeds over HTTP.
type HTTPFetcher struct {
	client       *http.Client
	parser       *gofeed.Parser
	timeout      time.Duration
	maxPerSource int
	maxBody      int64
}

// NewHTTPFetcher creates a fetcher with a per-source timeout, an entry cap
// per feed and a response size cap.
func NewHTTPFetcher(timeout time.Duration, maxPerSource int, maxBody int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:       &http.Client{Timeout: timeout},
		parser:       gofeed.NewParser(),
		timeout:      timeout,
		maxPerSource: maxPerSource,
		maxBody:      maxBody,
	}
}

// Fetch performs one GET against the source URL. It never returns an error:
// every failure mode maps onto a Status so a bad source cannot abort a batch.
func (f *HTTPFetcher) Fetch(ctx context.Context, src source.Source) ([]Item, Status) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, StatusHTTPError
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			logger.Debug("source timed out", "source", src.Name, "url", src.URL)
			return nil, StatusTimeout
		}
		logger.Debug("source request failed", "source", src.Name, "error", err)
		return nil, StatusHTTPError
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("source returned non-2xx", "source", src.Name, "status", resp.StatusCode)
		return nil, StatusHTTPError
	}

	feed, err := f.parser.Parse(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		if isTimeout(err) {
			return nil, StatusTimeout
		}
		logger.Debug("source parse failed", "source", src.Name, "error", err)
		return nil, StatusParseError
	}

	fetchedAt := time.Now()
	items := make([]Item, 0, f.maxPerSource)
	for _, entry := range feed.Items {
		if len(items) >= f.maxPerSource {
			break
		}
		items = append(items, Item{
			Title:      CleanText(entry.Title),
			Summary:    CleanText(entry.Description),
			Link:       strings.TrimSpace(entry.Link),
			Published:  publishedTime(entry, fetchedAt),
			SourceName: src.Name,
		})
	}
	return items, StatusOK
}

func publishedTime(entry *gofeed.Item, fallback time.Time) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return fallback
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// CleanText normalizes feed-entry text: decodes (possibly double-encoded)
// HTML entities until stable, strips markup, collapses whitespace.
// Idempotent, so re-cleaning cached text changes nothing.
func CleanText(s string) string {
	for i := 0; i < 3; i++ {
		unescaped := html.UnescapeString(s)
		if unescaped == s {
			break
		}
		s = unescaped
	}
	if strings.Contains(s, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
