package feeds

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFeedsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write feeds file: %v", err)
	}
	return path
}

func TestRegistryLoad(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Arrowhead Pride
    url: https://www.arrowheadpride.com/rss/current
    source: Arrowhead Pride
  - name: Chiefs Wire
    url: https://chiefswire.usatoday.com/feed/
    source: Chiefs Wire
`)

	r := NewRegistry(path, []string{"arrowheadpride.com", "usatoday.com"}, discardLogger())

	got := r.Feeds()
	want := []FeedConfig{
		{Name: "Arrowhead Pride", URL: "https://www.arrowheadpride.com/rss/current", Source: "Arrowhead Pride"},
		{Name: "Chiefs Wire", URL: "https://chiefswire.usatoday.com/feed/", Source: "Chiefs Wire"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("feeds mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsDisallowedDomains(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Legit
    url: https://www.espn.com/espn/rss/nfl/news
    source: ESPN
  - name: Rogue
    url: https://evil.example.com/feed
    source: Rogue
  - name: Nameless
    url: https://www.espn.com/other
    source: ""
`)

	r := NewRegistry(path, []string{"espn.com"}, discardLogger())

	feeds := r.Feeds()
	if len(feeds) != 1 || feeds[0].Name != "Legit" {
		t.Errorf("expected only the allowed feed to survive, got %v", feeds)
	}
}

func TestRegistryFailsOpenOnMissingFile(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "missing.yaml"), nil, discardLogger())
	if got := r.Feeds(); len(got) != 0 {
		t.Errorf("expected empty feed list, got %v", got)
	}
}

func TestRegistryFailsOpenOnMalformedYAML(t *testing.T) {
	path := writeFeedsFile(t, "feeds: [not, closed")
	r := NewRegistry(path, nil, discardLogger())
	if got := r.Feeds(); len(got) != 0 {
		t.Errorf("expected empty feed list, got %v", got)
	}
}

func TestRegistryReload(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Arrowhead Pride
    url: https://www.arrowheadpride.com/rss/current
    source: Arrowhead Pride
`)
	r := NewRegistry(path, []string{"arrowheadpride.com", "espn.com"}, discardLogger())
	if len(r.Feeds()) != 1 {
		t.Fatalf("expected 1 feed before reload, got %d", len(r.Feeds()))
	}

	updated := `
feeds:
  - name: Arrowhead Pride
    url: https://www.arrowheadpride.com/rss/current
    source: Arrowhead Pride
  - name: ESPN NFL
    url: https://www.espn.com/espn/rss/nfl/news
    source: ESPN
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite feeds file: %v", err)
	}

	r.Reload()
	if len(r.Feeds()) != 2 {
		t.Errorf("expected 2 feeds after reload, got %d", len(r.Feeds()))
	}
}

func TestRegistrySources(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Arrowhead Pride
    url: https://www.arrowheadpride.com/rss/current
    source: Arrowhead Pride
  - name: Arrowhead Pride Podcast
    url: https://www.arrowheadpride.com/rss/podcast
    source: Arrowhead Pride
  - name: ESPN NFL
    url: https://www.espn.com/espn/rss/nfl/news
    source: ESPN
`)
	r := NewRegistry(path, []string{"arrowheadpride.com", "espn.com"}, discardLogger())

	got := r.Sources()
	want := []string{"Arrowhead Pride", "ESPN"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}
