package article

import (
	"log/slog"
	"net/http"

	"gridiron-feed/internal/common/params"
	"gridiron-feed/internal/handler/http/respond"
	"gridiron-feed/internal/observability/logging"
	"gridiron-feed/internal/usecase/article"
)

// SourceLister reports the set of sources currently configured, used to
// validate the :source path segment before it reaches the query layer.
type SourceLister interface {
	Sources() []string
}

// Handler serves the article read endpoints.
type Handler struct {
	Articles article.Service
	Registry SourceLister
	Logger   *slog.Logger
}

// NewHandler creates an article handler.
func NewHandler(articles article.Service, registry SourceLister, logger *slog.Logger) *Handler {
	return &Handler{Articles: articles, Registry: registry, Logger: logger}
}

// List handles GET /api/articles. Pagination comes from the limit and offset
// query parameters; out-of-range values are clamped, never rejected.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := params.Pagination(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))

	articles, total, err := h.Articles.List(r.Context(), limit, offset)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("failed to list articles",
			slog.Int("limit", limit),
			slog.Int("offset", offset),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := ToResponseList(articles)
	respond.JSON(w, http.StatusOK, ListResponse{
		Success:  true,
		Count:    len(items),
		Total:    total,
		Articles: items,
	})
}

// Recent handles GET /api/articles/recent. The hours query parameter bounds
// the trailing window, clamped to at most one week.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	hours := params.Hours(r.URL.Query().Get("hours"))

	articles, err := h.Articles.Recent(r.Context(), hours)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("failed to list recent articles",
			slog.Int("hours", hours),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := ToResponseList(articles)
	respond.JSON(w, http.StatusOK, PageResponse{
		Success:  true,
		Count:    len(items),
		Articles: items,
	})
}

// BySource handles GET /api/articles/source/{source}. The source segment must
// match a configured feed source exactly; anything else is a 400.
func (h *Handler) BySource(w http.ResponseWriter, r *http.Request) {
	source := params.Source(r.PathValue("source"), h.Registry.Sources())
	if source == "" {
		respond.Error(w, http.StatusBadRequest, "invalid source")
		return
	}

	limit, offset := params.Pagination(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))

	articles, err := h.Articles.BySource(r.Context(), source, limit, offset)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("failed to list articles by source",
			slog.String("source", source),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := ToResponseList(articles)
	respond.JSON(w, http.StatusOK, PageResponse{
		Success:  true,
		Count:    len(items),
		Articles: items,
	})
}
