package http

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gridiron-feed/internal/feeds"
	articlehandler "gridiron-feed/internal/handler/http/article"
	"gridiron-feed/internal/handler/http/requestid"
	"gridiron-feed/internal/handler/http/respond"
	"gridiron-feed/internal/usecase/article"
)

const (
	// maxRequestBodySize limits request bodies; the API accepts no payloads.
	maxRequestBodySize = 1 << 20 // 1MB

	rateLimitWindow  = 15 * time.Minute
	readRateLimit    = 100
	refreshRateLimit = 5
)

// Deps carries everything the router needs.
type Deps struct {
	Articles   article.Service
	Ingestor   Ingestor
	Registry   *feeds.Registry
	Logger     *slog.Logger
	DB         *sql.DB
	StaticDir  string
	Version    string
	CORSOrigin string
	StartedAt  time.Time
}

// NewRouter builds the HTTP handler tree: the JSON API under /api, the
// Prometheus endpoint, the health check, and the static timeline UI at the
// root.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	readLimiter := NewRateLimiter(readRateLimit, rateLimitWindow)
	refreshLimiter := NewRateLimiter(refreshRateLimit, rateLimitWindow)

	articles := articlehandler.NewHandler(deps.Articles, deps.Registry, deps.Logger)

	mux.Handle("GET /api/articles", readLimiter.Limit(http.HandlerFunc(articles.List)))
	mux.Handle("GET /api/articles/recent", readLimiter.Limit(http.HandlerFunc(articles.Recent)))
	mux.Handle("GET /api/articles/source/{source}", readLimiter.Limit(http.HandlerFunc(articles.BySource)))
	mux.Handle("GET /api/sources", readLimiter.Limit(sourcesHandler(deps.Articles, deps.Logger)))
	mux.Handle("GET /api/stats", readLimiter.Limit(statsHandler(deps.Articles, deps.Logger)))
	mux.Handle("POST /api/refresh", refreshLimiter.Limit(refreshHandler(deps.Ingestor, deps.Logger)))

	// Unknown API paths get a JSON 404 instead of the file server's HTML one.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "not found")
	})

	mux.Handle("GET /health", healthHandler(deps.DB, deps.Articles, deps.Version, deps.StartedAt))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("/", http.FileServer(http.Dir(deps.StaticDir)))

	var handler http.Handler = mux
	handler = LimitRequestBody(maxRequestBodySize)(handler)
	handler = CORS(deps.CORSOrigin)(handler)
	handler = Metrics()(handler)
	handler = Logging(deps.Logger)(handler)
	handler = Recover(deps.Logger)(handler)
	handler = requestid.Middleware(handler)

	return handler
}
