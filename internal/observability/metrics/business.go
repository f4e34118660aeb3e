package metrics

import (
	"strconv"
	"time"
)

// RecordArticleInserted records a newly inserted article for a source.
func RecordArticleInserted(source string) {
	ArticlesInsertedTotal.WithLabelValues(source).Inc()
}

// RecordArticleDuplicated records a dedup no-op insert for a source.
func RecordArticleDuplicated(source string) {
	ArticlesDuplicatedTotal.WithLabelValues(source).Inc()
}

// RecordArticleRejected records a feed item dropped by validation.
func RecordArticleRejected(source string) {
	ArticlesRejectedTotal.WithLabelValues(source).Inc()
}

// RecordFeedCrawlError records an error during feed crawling.
func RecordFeedCrawlError(source, errorType string) {
	FeedCrawlErrorsTotal.WithLabelValues(source, errorType).Inc()
}

// RecordIngestionPass records the duration and yield of a full ingestion pass.
func RecordIngestionPass(duration time.Duration, newArticles int64) {
	IngestionPassDuration.Observe(duration.Seconds())
	IngestionPassNewArticles.Observe(float64(newArticles))
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
