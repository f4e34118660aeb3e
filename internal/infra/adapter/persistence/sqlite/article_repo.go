// Package sqlite provides the SQLite implementation of the article repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gridiron-feed/internal/domain/entity"
	"gridiron-feed/internal/repository"
)

// ArticleRepo implements repository.ArticleRepository using SQLite.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// InsertIfAbsent inserts the article unless its link already exists.
// INSERT OR IGNORE makes the duplicate case a no-op; the affected-row count
// tells the two outcomes apart.
func (repo *ArticleRepo) InsertIfAbsent(ctx context.Context, article *entity.Article) (bool, error) {
	const query = `
INSERT OR IGNORE INTO articles (title, link, description, pub_date, source, image_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Link, article.Description,
		article.PubDate, article.Source, nullString(article.ImageURL), article.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("InsertIfAbsent: ExecContext: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("InsertIfAbsent: RowsAffected: %w", err)
	}
	return affected > 0, nil
}

// List retrieves articles ordered by published date (newest first).
func (repo *ArticleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	const query = `
SELECT id, title, link, description, pub_date, source, image_url, created_at
FROM articles
ORDER BY pub_date DESC
LIMIT ? OFFSET ?
`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	return scanArticles(rows, "List")
}

// ListBySource retrieves articles for an exact source match, newest first.
func (repo *ArticleRepo) ListBySource(ctx context.Context, source string, limit, offset int) ([]*entity.Article, error) {
	const query = `
SELECT id, title, link, description, pub_date, source, image_url, created_at
FROM articles
WHERE source = ?
ORDER BY pub_date DESC
LIMIT ? OFFSET ?
`
	rows, err := repo.db.QueryContext(ctx, query, source, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListBySource: QueryContext: %w", err)
	}
	return scanArticles(rows, "ListBySource")
}

// ListRecent retrieves all articles published within the trailing window.
// The cutoff is computed in Go so the query stays identical across dialects.
func (repo *ArticleRepo) ListRecent(ctx context.Context, hours int) ([]*entity.Article, error) {
	const query = `
SELECT id, title, link, description, pub_date, source, image_url, created_at
FROM articles
WHERE pub_date >= ?
ORDER BY pub_date DESC
`
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := repo.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: QueryContext: %w", err)
	}
	return scanArticles(rows, "ListRecent")
}

// CountTotal returns the total number of stored articles.
func (repo *ArticleRepo) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountTotal: QueryRowContext: %w", err)
	}
	return count, nil
}

// GroupBySource returns per-source article counts, descending by count.
func (repo *ArticleRepo) GroupBySource(ctx context.Context) ([]repository.SourceCount, error) {
	const query = `
SELECT source, COUNT(*) AS count
FROM articles
GROUP BY source
ORDER BY count DESC
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("GroupBySource: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]repository.SourceCount, 0, 8)
	for rows.Next() {
		var sc repository.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, fmt.Errorf("GroupBySource: Scan: %w", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GroupBySource: rows.Err: %w", err)
	}
	return counts, nil
}

// scanArticles drains rows into article entities, closing rows on return.
func scanArticles(rows *sql.Rows, op string) ([]*entity.Article, error) {
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		var article entity.Article
		var imageURL sql.NullString
		err := rows.Scan(&article.ID, &article.Title, &article.Link,
			&article.Description, &article.PubDate, &article.Source,
			&imageURL, &article.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		article.ImageURL = imageURL.String
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return articles, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
