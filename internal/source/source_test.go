package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeedsYAML = `sources:
  - name: "Лента"
    url: "https://lenta.example/rss"
    categories: [politics, society]
    lang: ru
  - name: "Verge AI"
    url: "https://verge.example/ai.xml"
    categories: [ai]
    lang: en
  - name: "Dead Feed"
    url: "https://dead.example/rss"
    categories: [politics]
    enabled: false
  - url: "https://anon.example/rss"
`

func writeFeeds(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFeedsYAML), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	reg, err := Load(writeFeeds(t))
	require.NoError(t, err)

	all := reg.Sources()
	require.Len(t, all, 4)
	assert.Equal(t, "Лента", all[0].Name)
	assert.True(t, all[0].Enabled, "enabled defaults to true")
	assert.False(t, all[2].Enabled)
	assert.Equal(t, "https://anon.example/rss", all[3].Name, "nameless sources fall back to the URL")
}

func TestLoadRejectsMissingURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - name: broken\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestForCategory(t *testing.T) {
	reg, err := Load(writeFeeds(t))
	require.NoError(t, err)

	politics := reg.ForCategory("politics")
	require.Len(t, politics, 1, "disabled sources stay excluded")
	assert.Equal(t, "Лента", politics[0].Name)

	ai := reg.ForCategory("AI")
	require.Len(t, ai, 1, "category match is case-insensitive")
	assert.Equal(t, "Verge AI", ai[0].Name)

	assert.Len(t, reg.ForCategory("all"), 3)
	assert.Len(t, reg.ForCategory(""), 3)
	assert.Empty(t, reg.ForCategory("business"))
}

func TestAllSkipsDisabled(t *testing.T) {
	reg := NewRegistry([]Source{
		{Name: "a", URL: "https://a.example", Enabled: true},
		{Name: "b", URL: "https://b.example", Enabled: false},
	})
	all := reg.All()
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].Name)
}
