package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridiron-feed/internal/domain/entity"
	"gridiron-feed/internal/feeds"
	"gridiron-feed/internal/repository"
)

// fakeFetcher returns canned items per URL and tracks in-flight concurrency.
type fakeFetcher struct {
	mu       sync.Mutex
	items    map[string][]FeedItem
	errs     map[string]error
	delay    time.Duration
	inFlight int64
	maxSeen  int64
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]FeedItem, error) {
	cur := atomic.AddInt64(&f.inFlight, 1)
	defer atomic.AddInt64(&f.inFlight, -1)
	for {
		prev := atomic.LoadInt64(&f.maxSeen)
		if cur <= prev || atomic.CompareAndSwapInt64(&f.maxSeen, prev, cur) {
			break
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.items[url], nil
}

// memoryRepo is an in-memory ArticleRepository keyed by link.
type memoryRepo struct {
	mu       sync.Mutex
	articles map[string]*entity.Article
	failOn   string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{articles: make(map[string]*entity.Article)}
}

func (m *memoryRepo) InsertIfAbsent(_ context.Context, a *entity.Article) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.Link == m.failOn && m.failOn != "" {
		return false, fmt.Errorf("storage unavailable")
	}
	if _, exists := m.articles[a.Link]; exists {
		return false, nil
	}
	m.articles[a.Link] = a
	return true, nil
}

func (m *memoryRepo) List(context.Context, int, int) ([]*entity.Article, error) { return nil, nil }
func (m *memoryRepo) ListBySource(context.Context, string, int, int) ([]*entity.Article, error) {
	return nil, nil
}
func (m *memoryRepo) ListRecent(context.Context, int) ([]*entity.Article, error) { return nil, nil }
func (m *memoryRepo) CountTotal(context.Context) (int64, error)                  { return 0, nil }
func (m *memoryRepo) GroupBySource(context.Context) ([]repository.SourceCount, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t *testing.T, configs []feeds.FeedConfig) *feeds.Registry {
	t.Helper()
	content := "feeds:\n"
	for _, c := range configs {
		content += fmt.Sprintf("  - name: %s\n    url: %s\n    source: %s\n", c.Name, c.URL, c.Source)
	}
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return feeds.NewRegistry(path, nil, testLogger())
}

func feedItem(link string) FeedItem {
	return FeedItem{
		Title:       "Story at " + link,
		Link:        link,
		Description: "body",
		PublishedAt: time.Now(),
	}
}

func TestFetchAllCountsOnlyNewArticles(t *testing.T) {
	registry := testRegistry(t, []feeds.FeedConfig{
		{Name: "Feed A", URL: "https://example.com/a", Source: "A"},
	})
	repo := newMemoryRepo()
	// Pre-seed one of the three links so it counts as a duplicate.
	_, err := repo.InsertIfAbsent(context.Background(), &entity.Article{Link: "https://example.com/2"})
	require.NoError(t, err)

	fetcher := &fakeFetcher{items: map[string][]FeedItem{
		"https://example.com/a": {
			feedItem("https://example.com/1"),
			feedItem("https://example.com/2"),
			feedItem("https://example.com/3"),
		},
	}}

	svc := NewService(registry, repo, fetcher, testLogger())
	got := svc.FetchAll(context.Background())
	assert.Equal(t, 2, got)
}

func TestFetchAllIsolatesFeedFailures(t *testing.T) {
	var configs []feeds.FeedConfig
	items := make(map[string][]FeedItem)
	errs := make(map[string]error)
	for i := 0; i < 7; i++ {
		url := fmt.Sprintf("https://example.com/feed%d", i)
		configs = append(configs, feeds.FeedConfig{
			Name:   fmt.Sprintf("Feed %d", i),
			URL:    url,
			Source: fmt.Sprintf("Source %d", i),
		})
		if i < 2 {
			errs[url] = fmt.Errorf("connection refused")
			continue
		}
		items[url] = []FeedItem{feedItem(fmt.Sprintf("https://example.com/story%d", i))}
	}

	registry := testRegistry(t, configs)
	fetcher := &fakeFetcher{items: items, errs: errs}
	svc := NewService(registry, newMemoryRepo(), fetcher, testLogger())

	got := svc.FetchAll(context.Background())
	assert.Equal(t, 5, got, "failed feeds contribute zero, the rest still ingest")
}

func TestFetchAllBoundsConcurrency(t *testing.T) {
	var configs []feeds.FeedConfig
	items := make(map[string][]FeedItem)
	for i := 0; i < 9; i++ {
		url := fmt.Sprintf("https://example.com/feed%d", i)
		configs = append(configs, feeds.FeedConfig{
			Name:   fmt.Sprintf("Feed %d", i),
			URL:    url,
			Source: "S",
		})
		items[url] = []FeedItem{feedItem(fmt.Sprintf("https://example.com/story%d", i))}
	}

	registry := testRegistry(t, configs)
	fetcher := &fakeFetcher{items: items, delay: 20 * time.Millisecond}
	svc := NewService(registry, newMemoryRepo(), fetcher, testLogger())

	svc.FetchAll(context.Background())
	assert.LessOrEqual(t, atomic.LoadInt64(&fetcher.maxSeen), int64(3),
		"at most three fetches may be in flight")
}

func TestFetchAllEmptyRegistry(t *testing.T) {
	registry := testRegistry(t, nil)
	svc := NewService(registry, newMemoryRepo(), &fakeFetcher{}, testLogger())
	assert.Equal(t, 0, svc.FetchAll(context.Background()))
}

func TestParseFeedSkipsInvalidItems(t *testing.T) {
	registry := testRegistry(t, nil)
	repo := newMemoryRepo()
	fetcher := &fakeFetcher{items: map[string][]FeedItem{
		"https://example.com/f": {
			feedItem("https://example.com/good"),
			{Title: "", Link: "https://example.com/untitled"},
			{Title: "Bad link", Link: "not-a-url"},
		},
	}}

	svc := NewService(registry, repo, fetcher, testLogger())
	got := svc.ParseFeed(context.Background(), feeds.FeedConfig{
		Name: "F", URL: "https://example.com/f", Source: "F",
	})
	assert.Equal(t, 1, got)
	assert.Len(t, repo.articles, 1)
}

func TestParseFeedContinuesPastInsertFailure(t *testing.T) {
	registry := testRegistry(t, nil)
	repo := newMemoryRepo()
	repo.failOn = "https://example.com/broken"
	fetcher := &fakeFetcher{items: map[string][]FeedItem{
		"https://example.com/f": {
			feedItem("https://example.com/broken"),
			feedItem("https://example.com/fine"),
		},
	}}

	svc := NewService(registry, repo, fetcher, testLogger())
	got := svc.ParseFeed(context.Background(), feeds.FeedConfig{
		Name: "F", URL: "https://example.com/f", Source: "F",
	})
	assert.Equal(t, 1, got)
}

func TestSanitizeItem(t *testing.T) {
	svc := NewService(testRegistry(t, nil), newMemoryRepo(), &fakeFetcher{}, testLogger())
	cfg := feeds.FeedConfig{Name: "F", URL: "https://example.com/f", Source: "F"}

	t.Run("truncates oversized fields", func(t *testing.T) {
		item := feedItem("https://example.com/long")
		for len(item.Title) <= entity.MaxTitleLength {
			item.Title += "0123456789"
		}
		a := svc.sanitizeItem(item, cfg)
		require.NotNil(t, a)
		assert.Len(t, []rune(a.Title), entity.MaxTitleLength)
	})

	t.Run("zero published date falls back to now", func(t *testing.T) {
		item := feedItem("https://example.com/nodate")
		item.PublishedAt = time.Time{}
		a := svc.sanitizeItem(item, cfg)
		require.NotNil(t, a)
		assert.False(t, a.PubDate.IsZero())
	})

	t.Run("invalid image URL is dropped, not fatal", func(t *testing.T) {
		item := feedItem("https://example.com/badimg")
		item.ImageURL = "javascript:alert(1)"
		a := svc.sanitizeItem(item, cfg)
		require.NotNil(t, a)
		assert.Empty(t, a.ImageURL)
	})

	t.Run("invalid link rejects the item", func(t *testing.T) {
		item := feedItem("not-a-url")
		assert.Nil(t, svc.sanitizeItem(item, cfg))
	})
}
