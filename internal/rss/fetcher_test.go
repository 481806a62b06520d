package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/newspulse/internal/source"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Tom &amp;amp; Jerry&amp;nbsp;return</title>
      <description>&lt;p&gt;A &lt;b&gt;bold&lt;/b&gt;   comeback&lt;/p&gt;</description>
      <link>https://example.com/story/1</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <description>plain text</description>
      <link>https://example.com/story/2</link>
      <pubDate>Mon, 02 Jan 2006 14:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Third story beyond the cap</title>
      <link>https://example.com/story/3</link>
    </item>
  </channel>
</rss>`

func testSource(url string) source.Source {
	return source.Source{Name: "test", URL: url, Enabled: true}
}

func TestFetchParsesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, 2, 1<<20)
	items, status := f.Fetch(context.Background(), testSource(srv.URL))

	require.Equal(t, StatusOK, status)
	require.Len(t, items, 2, "entry cap per source")

	// Double-encoded entities decoded, markup stripped, whitespace collapsed.
	assert.Equal(t, "Tom & Jerry return", items[0].Title)
	assert.Equal(t, "A bold comeback", items[0].Summary)
	assert.Equal(t, "https://example.com/story/1", items[0].Link)
	assert.Equal(t, 2006, items[0].Published.Year())
	assert.Equal(t, "test", items[0].SourceName)
}

func TestFetchMissingDateDefaultsToNow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>no date</title><link>https://example.com/x</link></item></channel></rss>`)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, 2, 1<<20)
	before := time.Now()
	items, status := f.Fetch(context.Background(), testSource(srv.URL))

	require.Equal(t, StatusOK, status)
	require.Len(t, items, 1)
	assert.False(t, items[0].Published.Before(before))
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, 2, 1<<20)
	items, status := f.Fetch(context.Background(), testSource(srv.URL))

	assert.Equal(t, StatusHTTPError, status)
	assert.Empty(t, items)
}

func TestFetchParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not a feed at all")
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, 2, 1<<20)
	items, status := f.Fetch(context.Background(), testSource(srv.URL))

	assert.Equal(t, StatusParseError, status)
	assert.Empty(t, items)
}

func TestFetchTimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	f := NewHTTPFetcher(100*time.Millisecond, 2, 1<<20)
	start := time.Now()
	items, status := f.Fetch(context.Background(), testSource(srv.URL))

	assert.Equal(t, StatusTimeout, status)
	assert.Empty(t, items)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "must return near the per-source timeout")
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"Tom &amp;amp; Jerry",
		"<p>nested <b>tags</b></p>",
		"  spaced\t\tout \n text ",
		"&lt;p&gt;encoded markup&lt;/p&gt;",
		"",
	}
	for _, in := range inputs {
		once := CleanText(in)
		twice := CleanText(once)
		assert.Equal(t, once, twice, "input=%q", in)
	}
}

func TestCleanTextStripsMarkup(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", CleanText("Tom &amp;amp; Jerry"))
	assert.Equal(t, "bold and plain", CleanText("<b>bold</b> and plain"))
	assert.Equal(t, "a b c", CleanText("  a \n b\t c "))
}
