package http

import (
	"database/sql"
	"net/http"
	"time"

	"gridiron-feed/internal/handler/http/respond"
	"gridiron-feed/internal/usecase/article"
)

// healthHandler serves GET /health. It reports degraded with a 503 when the
// database is unreachable, otherwise ok with uptime, stored article count,
// and build version.
func healthHandler(db *sql.DB, articles article.Service, version string, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := db.PingContext(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		var count int64
		if code == http.StatusOK {
			if total, err := articles.Repo.CountTotal(r.Context()); err == nil {
				count = total
			}
		}

		respond.JSON(w, code, map[string]any{
			"status":   status,
			"version":  version,
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
			"articles": count,
		})
	}
}
