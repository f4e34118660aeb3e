package article

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridiron-feed/internal/domain/entity"
	"gridiron-feed/internal/repository"
)

// stubRepo returns canned values and records the arguments it was called with.
type stubRepo struct {
	articles []*entity.Article
	total    int64
	counts   []repository.SourceCount
	err      error

	gotLimit  int
	gotOffset int
	gotSource string
	gotHours  int
}

func (s *stubRepo) InsertIfAbsent(context.Context, *entity.Article) (bool, error) {
	return false, fmt.Errorf("not used")
}

func (s *stubRepo) List(_ context.Context, limit, offset int) ([]*entity.Article, error) {
	s.gotLimit, s.gotOffset = limit, offset
	return s.articles, s.err
}

func (s *stubRepo) ListBySource(_ context.Context, source string, limit, offset int) ([]*entity.Article, error) {
	s.gotSource, s.gotLimit, s.gotOffset = source, limit, offset
	return s.articles, s.err
}

func (s *stubRepo) ListRecent(_ context.Context, hours int) ([]*entity.Article, error) {
	s.gotHours = hours
	return s.articles, s.err
}

func (s *stubRepo) CountTotal(context.Context) (int64, error) { return s.total, s.err }

func (s *stubRepo) GroupBySource(context.Context) ([]repository.SourceCount, error) {
	return s.counts, s.err
}

func sampleArticles(n int) []*entity.Article {
	out := make([]*entity.Article, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entity.Article{
			ID:      int64(i + 1),
			Title:   fmt.Sprintf("Story %d", i+1),
			Link:    fmt.Sprintf("https://example.com/%d", i+1),
			Source:  "ESPN",
			PubDate: time.Now(),
		})
	}
	return out
}

func TestList(t *testing.T) {
	repo := &stubRepo{articles: sampleArticles(3), total: 120}
	svc := Service{Repo: repo}

	articles, total, err := svc.List(context.Background(), 25, 50)
	require.NoError(t, err)
	assert.Len(t, articles, 3)
	assert.Equal(t, int64(120), total)
	assert.Equal(t, 25, repo.gotLimit)
	assert.Equal(t, 50, repo.gotOffset)
}

func TestListPropagatesError(t *testing.T) {
	repo := &stubRepo{err: fmt.Errorf("db down")}
	svc := Service{Repo: repo}

	_, _, err := svc.List(context.Background(), 10, 0)
	assert.Error(t, err)
}

func TestBySource(t *testing.T) {
	repo := &stubRepo{articles: sampleArticles(2)}
	svc := Service{Repo: repo}

	articles, err := svc.BySource(context.Background(), "ESPN", 10, 0)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "ESPN", repo.gotSource)
}

func TestStats(t *testing.T) {
	repo := &stubRepo{
		articles: sampleArticles(4),
		total:    200,
		counts: []repository.SourceCount{
			{Source: "Arrowhead Pride", Count: 150},
			{Source: "ESPN", Count: 50},
		},
	}
	svc := Service{Repo: repo}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(200), stats.TotalArticles)
	assert.Equal(t, 4, stats.Last24Hours)
	assert.Len(t, stats.Sources, 2)
	assert.Equal(t, 24, repo.gotHours, "last-24h count uses a 24 hour window")
}
