package http

import (
	"log/slog"
	"net/http"

	"gridiron-feed/internal/handler/http/respond"
	"gridiron-feed/internal/observability/logging"
	"gridiron-feed/internal/usecase/article"
)

// statsResponse is the JSON shape of the aggregate statistics.
type statsResponse struct {
	TotalArticles int64            `json:"totalArticles"`
	Sources       []sourceResponse `json:"sources"`
	Last24Hours   int              `json:"last24Hours"`
}

// statsHandler serves GET /api/stats with overall, per-source, and
// trailing-24-hour article counts.
func statsHandler(articles article.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := articles.Stats(r.Context())
		if err != nil {
			logging.WithRequestID(r.Context(), logger).Error("failed to compute stats",
				slog.Any("error", err))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		sources := make([]sourceResponse, 0, len(stats.Sources))
		for _, c := range stats.Sources {
			sources = append(sources, sourceResponse{Source: c.Source, Count: c.Count})
		}

		respond.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"stats": statsResponse{
				TotalArticles: stats.TotalArticles,
				Sources:       sources,
				Last24Hours:   stats.Last24Hours,
			},
		})
	}
}
