// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article entity, its validation rules, and the URL checks shared by the
// ingestion pipeline and the HTTP layer.
package entity

import "time"

// Field caps applied during sanitization. Titles and descriptions longer than
// these limits are truncated before validation, never rejected.
const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 2000
)

// Article represents a normalized, deduplicated news article derived from one feed item.
// Link is the global dedup key. Articles are created by the ingestor, never updated
// in place, and never deleted by the running system.
type Article struct {
	ID          int64
	Title       string
	Link        string
	Description string
	PubDate     time.Time
	Source      string
	ImageURL    string
	CreatedAt   time.Time
}

// Validate checks the article against insertion rules and returns every violated
// rule instead of short-circuiting, so callers can log all reasons for rejection.
// A nil result means the article is valid.
func (a *Article) Validate() []*ValidationError {
	var errs []*ValidationError

	if isBlank(a.Title) {
		errs = append(errs, &ValidationError{Field: "title", Message: "title is required"})
	}
	if !IsValidURL(a.Link) {
		errs = append(errs, &ValidationError{Field: "link", Message: "invalid article link"})
	}
	if isBlank(a.Source) {
		errs = append(errs, &ValidationError{Field: "source", Message: "source is required"})
	}
	if a.ImageURL != "" && !IsValidURL(a.ImageURL) {
		errs = append(errs, &ValidationError{Field: "imageUrl", Message: "invalid image URL"})
	}

	return errs
}

// Truncate shortens s to at most max runes. Truncation happens on rune
// boundaries so multi-byte feed content is never split mid-character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
