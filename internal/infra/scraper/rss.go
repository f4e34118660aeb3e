// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"gridiron-feed/internal/domain/entity"
	"gridiron-feed/internal/resilience/circuitbreaker"
	"gridiron-feed/internal/resilience/retry"
	"gridiron-feed/internal/usecase/ingest"
)

// imgSrcPattern extracts the first <img src> from embedded HTML content.
// Feeds commonly inline their lead image this way when they carry no
// enclosure or media extension.
var imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// RSSFetcher implements ingest.FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// It uses circuit breaker and retry logic for improved reliability.
// Returns a slice of FeedItem containing the normalized feed entries.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	var items []ingest.FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		items = cbResult.([]ingest.FeedItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "GridironFeedBot"
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		// gofeed reports non-2xx responses with its own error type; translate
		// the status code so the retry layer can classify 5xx/429 as transient.
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
		}
		return nil, err
	}

	items := make([]ingest.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		link := it.Link
		if link == "" {
			link = it.GUID
		}

		// Normalize to a real timestamp; never carry the raw source string.
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pubAt = *it.UpdatedParsed
		}

		items = append(items, ingest.FeedItem{
			Title:       it.Title,
			Link:        link,
			Description: it.Description,
			PublishedAt: pubAt,
			ImageURL:    extractImageURL(it),
		})
	}

	return items, nil
}

// extractImageURL tries the usual places feeds put a lead image, in order:
// enclosure URL, media:thumbnail, media:content, then the first <img src>
// embedded in the item's HTML. Every candidate must pass URL validation;
// returns "" when none qualify.
func extractImageURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && entity.IsValidURL(enc.URL) {
			return enc.URL
		}
	}

	if url := mediaExtensionURL(item, "thumbnail"); url != "" {
		return url
	}
	if url := mediaExtensionURL(item, "content"); url != "" {
		return url
	}

	for _, html := range []string{item.Content, item.Description} {
		if m := imgSrcPattern.FindStringSubmatch(html); m != nil && entity.IsValidURL(m[1]) {
			return m[1]
		}
	}

	return ""
}

// mediaExtensionURL pulls a url attribute out of a media RSS extension element.
func mediaExtensionURL(item *gofeed.Item, element string) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[element] {
		if url := ext.Attrs["url"]; entity.IsValidURL(url) {
			return url
		}
	}
	return ""
}
