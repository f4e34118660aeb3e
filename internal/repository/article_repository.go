// Package repository defines the persistence interfaces the use cases depend on.
package repository

import (
	"context"

	"gridiron-feed/internal/domain/entity"
)

// SourceCount is one row of the per-source article aggregation.
type SourceCount struct {
	Source string
	Count  int64
}

// ArticleRepository is the durable keyed article collection. Link is unique
// across all articles; inserting an existing link is a no-op, not an error.
type ArticleRepository interface {
	// InsertIfAbsent inserts the article keyed by link. Returns false when the
	// link already exists. Storage faults are returned as errors; callers log
	// them and treat the article as not inserted.
	InsertIfAbsent(ctx context.Context, article *entity.Article) (bool, error)

	// List returns articles ordered by pub_date descending.
	List(ctx context.Context, limit, offset int) ([]*entity.Article, error)

	// ListBySource returns articles for an exact source match, newest first.
	ListBySource(ctx context.Context, source string, limit, offset int) ([]*entity.Article, error)

	// ListRecent returns all articles whose pub_date falls within the trailing
	// window of the given number of hours, newest first.
	ListRecent(ctx context.Context, hours int) ([]*entity.Article, error)

	// CountTotal returns the total number of stored articles.
	CountTotal(ctx context.Context) (int64, error)

	// GroupBySource returns per-source article counts, descending by count.
	GroupBySource(ctx context.Context) ([]SourceCount, error)
}
