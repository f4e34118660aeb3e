package http

import (
	"log/slog"
	"net/http"

	"gridiron-feed/internal/handler/http/respond"
	"gridiron-feed/internal/observability/logging"
	"gridiron-feed/internal/usecase/article"
)

// sourceResponse is the JSON shape of a per-source article count.
type sourceResponse struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// sourcesHandler serves GET /api/sources with per-source article counts,
// descending by count.
func sourcesHandler(articles article.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := articles.Sources(r.Context())
		if err != nil {
			logging.WithRequestID(r.Context(), logger).Error("failed to list sources",
				slog.Any("error", err))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		out := make([]sourceResponse, 0, len(counts))
		for _, c := range counts {
			out = append(out, sourceResponse{Source: c.Source, Count: c.Count})
		}

		respond.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"sources": out,
		})
	}
}
