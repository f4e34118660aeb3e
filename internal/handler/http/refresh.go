package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gridiron-feed/internal/handler/http/respond"
	"gridiron-feed/internal/observability/logging"
)

// refreshTimeout bounds a manually triggered ingestion pass so a hung feed
// cannot pin the request forever.
const refreshTimeout = 2 * time.Minute

// Ingestor triggers an ingestion pass across all configured feeds and reports
// how many new articles it stored.
type Ingestor interface {
	FetchAll(ctx context.Context) int
}

// refreshHandler serves POST /api/refresh. The fetch runs synchronously so the
// response can report how many new articles arrived. Overlapping refreshes are
// safe: inserts are idempotent on the article link.
func refreshHandler(ingestor Ingestor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
		defer cancel()

		log := logging.WithRequestID(r.Context(), logger)
		log.Info("manual refresh triggered", slog.String("remote_addr", r.RemoteAddr))

		newArticles := ingestor.FetchAll(ctx)

		respond.JSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     fmt.Sprintf("Fetched %d new articles", newArticles),
			"newArticles": newArticles,
		})
	}
}
