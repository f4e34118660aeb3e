// Package article provides the read-side use cases over the article store.
package article

import (
	"context"
	"fmt"

	"gridiron-feed/internal/domain/entity"
	"gridiron-feed/internal/repository"
)

// Service exposes the query surface the HTTP handlers compose with.
type Service struct {
	Repo repository.ArticleRepository
}

// Stats aggregates the numbers behind the /api/stats endpoint.
type Stats struct {
	TotalArticles int64
	Sources       []repository.SourceCount
	Last24Hours   int
}

// List returns one page of articles, newest first, along with the total count.
func (s Service) List(ctx context.Context, limit, offset int) ([]*entity.Article, int64, error) {
	articles, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	total, err := s.Repo.CountTotal(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}
	return articles, total, nil
}

// Recent returns all articles published within the trailing window.
func (s Service) Recent(ctx context.Context, hours int) ([]*entity.Article, error) {
	articles, err := s.Repo.ListRecent(ctx, hours)
	if err != nil {
		return nil, fmt.Errorf("list recent articles: %w", err)
	}
	return articles, nil
}

// BySource returns one page of articles for a single source, newest first.
func (s Service) BySource(ctx context.Context, source string, limit, offset int) ([]*entity.Article, error) {
	articles, err := s.Repo.ListBySource(ctx, source, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles by source: %w", err)
	}
	return articles, nil
}

// Sources returns per-source article counts, descending by count.
func (s Service) Sources(ctx context.Context) ([]repository.SourceCount, error) {
	counts, err := s.Repo.GroupBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("group articles by source: %w", err)
	}
	return counts, nil
}

// Stats assembles the totals for the stats endpoint: overall count, per-source
// counts, and how many articles landed in the last 24 hours.
func (s Service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.Repo.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	sources, err := s.Repo.GroupBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("group articles by source: %w", err)
	}
	recent, err := s.Repo.ListRecent(ctx, 24)
	if err != nil {
		return nil, fmt.Errorf("list recent articles: %w", err)
	}

	return &Stats{
		TotalArticles: total,
		Sources:       sources,
		Last24Hours:   len(recent),
	}, nil
}
