// Package article provides the HTTP handlers for the article read endpoints.
package article

import (
	"time"

	"gridiron-feed/internal/domain/entity"
)

// ArticleResponse is the JSON shape of a single article.
type ArticleResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	PubDate     time.Time `json:"pubDate"`
	Source      string    `json:"source"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListResponse is the envelope for the paged article listing.
type ListResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Total    int64             `json:"total"`
	Articles []ArticleResponse `json:"articles"`
}

// PageResponse is the envelope for article listings without a total count
// (the recent and per-source endpoints).
type PageResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Articles []ArticleResponse `json:"articles"`
}

// ToResponse converts a domain article to its response representation.
func ToResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Link:        a.Link,
		Description: a.Description,
		PubDate:     a.PubDate,
		Source:      a.Source,
		ImageURL:    a.ImageURL,
		CreatedAt:   a.CreatedAt,
	}
}

// ToResponseList converts a slice of domain articles. It always returns a
// non-nil slice so the JSON field encodes as [] rather than null.
func ToResponseList(articles []*entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, ToResponse(a))
	}
	return out
}
