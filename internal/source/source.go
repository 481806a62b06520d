package source

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one configured feed endpoint. Immutable after load; identified
// by URL. Categories are topic hints used to pick sources for a request,
// not the per-item classification.
type Source struct {
	Name       string
	URL        string
	Categories []string
	Lang       string
	Enabled    bool
}

// HasCategory reports whether the source is hinted for the given category.
func (s Source) HasCategory(cat string) bool {
	for _, c := range s.Categories {
		if strings.EqualFold(c, cat) {
			return true
		}
	}
	return false
}

type sourceYAML struct {
	Name       string   `yaml:"name"`
	URL        string   `yaml:"url"`
	Categories []string `yaml:"categories"`
	Lang       string   `yaml:"lang"`
	Enabled    *bool    `yaml:"enabled"` // omitted means enabled
}

type feedsYAML struct {
	Sources []sourceYAML `yaml:"sources"`
}

// Registry holds the loaded source list. Read-only after construction;
// flipping Enabled at runtime is a future health-monitoring hook.
type Registry struct {
	sources []Source
}

// NewRegistry wraps an already-built source list (used by tests and embeds).
func NewRegistry(sources []Source) *Registry {
	return &Registry{sources: sources}
}

// Load reads the feeds YAML file.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feeds config: %w", err)
	}
	defer f.Close()

	var cfg feedsYAML
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode feeds config %s: %w", path, err)
	}

	sources := make([]Source, 0, len(cfg.Sources))
	for _, y := range cfg.Sources {
		if y.URL == "" {
			return nil, fmt.Errorf("feeds config %s: source %q has no url", path, y.Name)
		}
		name := y.Name
		if name == "" {
			name = y.URL
		}
		sources = append(sources, Source{
			Name:       name,
			URL:        y.URL,
			Categories: y.Categories,
			Lang:       y.Lang,
			Enabled:    y.Enabled == nil || *y.Enabled,
		})
	}
	return &Registry{sources: sources}, nil
}

// All returns the enabled sources.
func (r *Registry) All() []Source {
	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// ForCategory returns the enabled sources hinted for cat. "all" (or empty)
// means every enabled source.
func (r *Registry) ForCategory(cat string) []Source {
	if cat == "" || strings.EqualFold(cat, "all") {
		return r.All()
	}
	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Enabled && s.HasCategory(cat) {
			out = append(out, s)
		}
	}
	return out
}

// Sources returns every configured source, disabled ones included. Used by
// the introspection surface.
func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}
