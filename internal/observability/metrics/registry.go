// Package metrics defines the Prometheus instrumentation for the application:
// ingestion pipeline counters and histograms plus HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArticlesInsertedTotal counts newly stored articles per source.
	ArticlesInsertedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridiron_feed_articles_inserted_total",
		Help: "Number of new articles inserted, labeled by source",
	}, []string{"source"})

	// ArticlesDuplicatedTotal counts dedup no-op inserts per source.
	ArticlesDuplicatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridiron_feed_articles_duplicated_total",
		Help: "Number of feed items skipped because their link already existed",
	}, []string{"source"})

	// ArticlesRejectedTotal counts items dropped by validation per source.
	ArticlesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridiron_feed_articles_rejected_total",
		Help: "Number of feed items dropped by validation",
	}, []string{"source"})

	// FeedCrawlErrorsTotal counts per-feed failures by type.
	FeedCrawlErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridiron_feed_crawl_errors_total",
		Help: "Number of feed crawl errors, labeled by source and error type",
	}, []string{"source", "error_type"})

	// IngestionPassDuration observes how long a full ingestion pass takes.
	IngestionPassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridiron_feed_ingestion_pass_duration_seconds",
		Help:    "Duration of full ingestion passes",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// IngestionPassNewArticles observes new-article counts per pass.
	IngestionPassNewArticles = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridiron_feed_ingestion_pass_new_articles",
		Help:    "New articles inserted per ingestion pass",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	// HTTPRequestsTotal counts HTTP requests by method, path pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridiron_feed_http_requests_total",
		Help: "Number of HTTP requests processed",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by method and path pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridiron_feed_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
