// Command diagnose_feeds checks every configured feed and prints a JSON report:
// HTTP status, feed type, item count, and the newest item date. Run it when a
// source goes quiet to tell a dead feed apart from a parsing problem.
//
// Usage: go run ./scripts/diagnose_feeds.go [feeds.yaml path]
package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"gridiron-feed/internal/feeds"
)

// FeedDiagnostic is the per-feed result row.
type FeedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	HTTPCode     int    `json:"http_code"`
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	FeedType     string `json:"feed_type"` // "RSS", "ATOM", "UNKNOWN"
	ResponseTime int64  `json:"response_time_ms"`
}

type rssDoc struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomDoc struct {
	Entries []struct {
		Title   string `xml:"title"`
		Updated string `xml:"updated"`
	} `xml:"entry"`
}

func main() {
	path := "./configs/feeds.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry := feeds.NewRegistry(path, feeds.DefaultAllowedDomains, logger)

	configured := registry.Feeds()
	if len(configured) == 0 {
		fmt.Fprintln(os.Stderr, "no valid feeds configured")
		os.Exit(1)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	results := make([]FeedDiagnostic, 0, len(configured))
	for _, cfg := range configured {
		results = append(results, diagnose(client, cfg))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Status != "OK" {
			os.Exit(2)
		}
	}
}

func diagnose(client *http.Client, cfg feeds.FeedConfig) FeedDiagnostic {
	diag := FeedDiagnostic{Name: cfg.Name, URL: cfg.URL, FeedType: "UNKNOWN"}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	req.Header.Set("User-Agent", "GridironFeedBot")

	start := time.Now()
	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		diag.Status = "TIMEOUT"
		if !strings.Contains(err.Error(), "deadline") {
			diag.Status = "HTTP_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}
	defer func() { _ = resp.Body.Close() }()

	diag.HTTPCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = resp.Status
		return diag
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	var rss rssDoc
	if xml.Unmarshal(body, &rss) == nil && len(rss.Channel.Items) > 0 {
		diag.FeedType = "RSS"
		diag.ItemCount = len(rss.Channel.Items)
		diag.LatestDate = rss.Channel.Items[0].PubDate
		diag.Status = "OK"
		return diag
	}

	var atom atomDoc
	if xml.Unmarshal(body, &atom) == nil && len(atom.Entries) > 0 {
		diag.FeedType = "ATOM"
		diag.ItemCount = len(atom.Entries)
		diag.LatestDate = atom.Entries[0].Updated
		diag.Status = "OK"
		return diag
	}

	if strings.Contains(string(body), "<rss") || strings.Contains(string(body), "<feed") {
		diag.Status = "EMPTY"
		return diag
	}

	diag.Status = "PARSE_ERROR"
	diag.ErrorMessage = "response is not recognizable RSS or Atom"
	return diag
}
