// Package feeds maintains the canonical feed configuration and domain allowlist.
// One Registry instance is shared by reference between the ingestor and the HTTP
// layer, so both always validate against the same source set, and a reload swaps
// the whole unit atomically.
package feeds

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"gridiron-feed/internal/domain/entity"
)

// DefaultAllowedDomains is the hardcoded domain allowlist for feed URLs.
// Feed entries whose hostname is not in (or under) one of these domains are
// discarded at load time.
var DefaultAllowedDomains = []string{
	"arrowheadpride.com",
	"usatoday.com",
	"espn.com",
	"nfl.com",
	"sbnation.com",
}

// FeedConfig describes one configured feed: a display name, the feed URL, and
// the short source label stamped onto every article ingested from it.
type FeedConfig struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Source string `yaml:"source"`
}

type feedsFile struct {
	Feeds []FeedConfig `yaml:"feeds"`
}

// Registry holds the currently configured feed list. It is safe for concurrent
// use; Reload replaces the list in one step.
type Registry struct {
	path           string
	allowedDomains []string
	logger         *slog.Logger

	mu    sync.RWMutex
	feeds []FeedConfig
}

// NewRegistry creates a registry backed by the YAML file at path and performs
// the initial load. Loading fails open: a missing or malformed file yields an
// empty feed list, logged but never fatal.
func NewRegistry(path string, allowedDomains []string, logger *slog.Logger) *Registry {
	r := &Registry{
		path:           path,
		allowedDomains: allowedDomains,
		logger:         logger,
	}
	r.Reload()
	return r
}

// Feeds returns the current feed list. The returned slice is a copy; callers
// may range over it while a reload happens.
func (r *Registry) Feeds() []FeedConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FeedConfig, len(r.feeds))
	copy(out, r.feeds)
	return out
}

// Sources returns the source labels of the configured feeds, deduplicated,
// in configuration order. This is the allowlist the HTTP layer validates
// the :source path parameter against.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.feeds))
	sources := make([]string, 0, len(r.feeds))
	for _, f := range r.feeds {
		if _, ok := seen[f.Source]; ok {
			continue
		}
		seen[f.Source] = struct{}{}
		sources = append(sources, f.Source)
	}
	return sources
}

// Reload re-reads and re-filters the configuration file, replacing the
// in-memory list so new feeds take effect without a restart.
func (r *Registry) Reload() {
	loaded := r.load()

	r.mu.Lock()
	r.feeds = loaded
	r.mu.Unlock()

	r.logger.Info("feed configuration loaded",
		slog.String("path", r.path),
		slog.Int("feeds", len(loaded)))
}

// load reads the YAML feed file and discards entries that fail the domain
// allowlist or basic field checks. Every rejection is logged individually.
func (r *Registry) load() []FeedConfig {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("failed to read feeds file, using empty feed list",
			slog.String("path", r.path),
			slog.Any("error", err))
		return nil
	}

	var file feedsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		r.logger.Error("failed to parse feeds file, using empty feed list",
			slog.String("path", r.path),
			slog.Any("error", err))
		return nil
	}

	valid := make([]FeedConfig, 0, len(file.Feeds))
	for _, f := range file.Feeds {
		if err := r.validateEntry(f); err != nil {
			r.logger.Warn("rejecting feed entry",
				slog.String("name", f.Name),
				slog.String("url", f.URL),
				slog.Any("error", err))
			continue
		}
		valid = append(valid, f)
	}
	return valid
}

func (r *Registry) validateEntry(f FeedConfig) error {
	if f.Name == "" {
		return fmt.Errorf("feed name is required")
	}
	if f.Source == "" {
		return fmt.Errorf("feed source is required")
	}
	if !entity.IsValidFeedURL(f.URL, r.allowedDomains) {
		return fmt.Errorf("feed URL %q is not on the domain allowlist", f.URL)
	}
	return nil
}
