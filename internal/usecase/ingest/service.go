// Package ingest implements the feed ingestion pipeline: fetch each configured
// feed, normalize and validate its items, and dedup-insert them into the store.
package ingest

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"gridiron-feed/internal/domain/entity"
	"gridiron-feed/internal/feeds"
	"gridiron-feed/internal/observability/metrics"
	"gridiron-feed/internal/repository"
)

// fetchBatchSize bounds how many feed fetches are in flight simultaneously.
// The cap limits outbound connection count; unbounded parallel fetch against
// many feeds risks overwhelming the process or the remote servers.
const fetchBatchSize = 3

// FeedItem represents a single normalized item from an RSS/Atom feed.
// PublishedAt is always set: fetchers substitute the fetch time when the
// source omits a parseable date.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
	ImageURL    string
}

// FeedFetcher is an interface for fetching and parsing a feed from a URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// Service orchestrates ingestion passes over the configured feed list.
type Service struct {
	Registry *feeds.Registry
	Repo     repository.ArticleRepository
	Fetcher  FeedFetcher
	Logger   *slog.Logger
}

// NewService creates an ingest Service with the provided dependencies.
func NewService(registry *feeds.Registry, repo repository.ArticleRepository, fetcher FeedFetcher, logger *slog.Logger) *Service {
	return &Service{
		Registry: registry,
		Repo:     repo,
		Fetcher:  fetcher,
		Logger:   logger,
	}
}

// FetchAll runs one full ingestion pass over every configured feed, at most
// fetchBatchSize fetches in flight at a time, and returns the total number of
// newly inserted articles. Per-feed failures are isolated; the pass always
// completes with a best-effort count. Returns 0 immediately when no valid
// feeds are configured.
func (s *Service) FetchAll(ctx context.Context) int {
	configured := s.Registry.Feeds()
	if len(configured) == 0 {
		s.Logger.Warn("no valid feeds configured, skipping ingestion pass")
		return 0
	}

	start := time.Now()
	s.Logger.Info("ingestion pass started", slog.Int("feeds", len(configured)))

	var totalNew int64
	var g errgroup.Group
	g.SetLimit(fetchBatchSize)

	for _, cfg := range configured {
		feedCfg := cfg
		g.Go(func() error {
			count := s.ParseFeed(ctx, feedCfg)
			atomic.AddInt64(&totalNew, int64(count))
			return nil
		})
	}
	// ParseFeed never returns an error; a feed's failure never aborts the batch.
	_ = g.Wait()

	duration := time.Since(start)
	s.Logger.Info("ingestion pass completed",
		slog.Int("feeds", len(configured)),
		slog.Int64("new_articles", atomic.LoadInt64(&totalNew)),
		slog.Duration("duration", duration))
	metrics.RecordIngestionPass(duration, atomic.LoadInt64(&totalNew))

	return int(atomic.LoadInt64(&totalNew))
}

// ParseFeed fetches and ingests one feed, returning the number of newly
// inserted articles. The fetcher handles retry with backoff internally; when
// it gives up, the feed contributes 0 for this cycle.
func (s *Service) ParseFeed(ctx context.Context, cfg feeds.FeedConfig) int {
	items, err := s.Fetcher.Fetch(ctx, cfg.URL)
	if err != nil {
		s.Logger.Warn("failed to fetch feed",
			slog.String("feed", cfg.Name),
			slog.String("url", cfg.URL),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(cfg.Source, "fetch_failed")
		return 0
	}

	newCount := 0
	for _, item := range items {
		article := s.sanitizeItem(item, cfg)
		if article == nil {
			continue
		}

		inserted, err := s.Repo.InsertIfAbsent(ctx, article)
		if err != nil {
			s.Logger.Error("failed to insert article",
				slog.String("feed", cfg.Name),
				slog.String("link", article.Link),
				slog.Any("error", err))
			metrics.RecordFeedCrawlError(cfg.Source, "insert_failed")
			continue
		}
		if inserted {
			newCount++
			metrics.RecordArticleInserted(cfg.Source)
		} else {
			metrics.RecordArticleDuplicated(cfg.Source)
		}
	}

	s.Logger.Info("feed crawl completed",
		slog.String("feed", cfg.Name),
		slog.Int("items", len(items)),
		slog.Int("new_articles", newCount))

	return newCount
}

// sanitizeItem builds a validated article candidate from a feed item.
// Titles and descriptions are truncated to their caps, the published date
// falls back to the ingestion time, and an invalid image URL is dropped
// rather than failing the item. Returns nil when validation fails; invalid
// items are logged and skipped, never fatal to the batch.
func (s *Service) sanitizeItem(item FeedItem, cfg feeds.FeedConfig) *entity.Article {
	pubDate := item.PublishedAt
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	imageURL := item.ImageURL
	if imageURL != "" && !entity.IsValidURL(imageURL) {
		imageURL = ""
	}

	article := &entity.Article{
		Title:       entity.Truncate(item.Title, entity.MaxTitleLength),
		Link:        item.Link,
		Description: entity.Truncate(item.Description, entity.MaxDescriptionLength),
		PubDate:     pubDate,
		Source:      cfg.Source,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
	}

	if errs := article.Validate(); len(errs) > 0 {
		for _, verr := range errs {
			s.Logger.Debug("dropping invalid feed item",
				slog.String("feed", cfg.Name),
				slog.String("link", item.Link),
				slog.String("field", verr.Field),
				slog.String("reason", verr.Message))
		}
		metrics.RecordArticleRejected(cfg.Source)
		return nil
	}

	return article
}

// ReloadFeeds re-reads the feed configuration so new feeds take effect
// without a restart.
func (s *Service) ReloadFeeds() {
	s.Registry.Reload()
}
