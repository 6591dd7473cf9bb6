package news

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"crisiswatch/internal/news/models"
	"crisiswatch/internal/news/store"
	"crisiswatch/pkg/requestcontext"
)

type stubFetcher struct {
	articles []models.Article
	err      error
	queries  []string
	limits   []int
}

func (f *stubFetcher) Fetch(_ context.Context, query string, limit int) ([]models.Article, error) {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

type noopNewsMetrics struct{}

func (noopNewsMetrics) IncrementCacheHit(string)     {}
func (noopNewsMetrics) IncrementCacheMiss(string)    {}
func (noopNewsMetrics) IncrementFetchFailure(string) {}
func (noopNewsMetrics) IncrementDemoServed(string)   {}

type NewsServiceSuite struct {
	suite.Suite
	fetcher *stubFetcher
	cache   *store.Memory
	service *Service
}

func TestNewsServiceSuite(t *testing.T) {
	suite.Run(t, new(NewsServiceSuite))
}

func (s *NewsServiceSuite) SetupTest() {
	s.fetcher = &stubFetcher{articles: []models.Article{
		{Title: "Peso slides as inflation accelerates", Source: "Example Times"},
	}}
	s.cache = store.NewMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.service = NewService(s.fetcher, s.cache, logger, noopNewsMetrics{}, 6*time.Hour)
}

func (s *NewsServiceSuite) TestCountryNewsFetchesAndCaches() {
	ctx := context.Background()

	first := s.service.CountryNews(ctx, "Argentina", TypeEconomic, 0)
	s.False(first.Cached)
	s.Require().Len(first.Articles, 1)
	s.Equal(1, first.TotalResults)
	s.Require().Len(s.fetcher.queries, 1)
	s.Equal("Argentina economic crisis OR financial crisis OR recession OR debt crisis", s.fetcher.queries[0])

	second := s.service.CountryNews(ctx, "Argentina", TypeEconomic, 0)
	s.True(second.Cached)
	s.Len(s.fetcher.queries, 1, "cache hit must not refetch")
}

func (s *NewsServiceSuite) TestCachedEnvelopeKeepsOriginalFetchTime() {
	fetchedAt := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	writeCtx := requestcontext.WithTime(context.Background(), fetchedAt)
	s.service.CountryNews(writeCtx, "Argentina", TypeEconomic, 0)

	readCtx := requestcontext.WithTime(context.Background(), fetchedAt.Add(time.Hour))
	cached := s.service.CountryNews(readCtx, "Argentina", TypeEconomic, 0)
	s.True(cached.Cached)
	s.Equal(fetchedAt, cached.FetchedAt, "a cache hit reports when the articles were fetched, not served")
}

func (s *NewsServiceSuite) TestCacheKeyedByCountryAndType() {
	ctx := context.Background()

	s.service.CountryNews(ctx, "Argentina", TypeEconomic, 0)
	s.service.CountryNews(ctx, "Argentina", TypeFood, 0)
	s.service.CountryNews(ctx, "Yemen", TypeEconomic, 0)

	s.Len(s.fetcher.queries, 3)
	s.Contains(s.fetcher.queries[1], "food crisis OR food shortage OR famine OR hunger crisis")
}

func (s *NewsServiceSuite) TestPageSizeReachesFetcher() {
	ctx := context.Background()

	s.service.CountryNews(ctx, "Argentina", TypeEconomic, 7)
	s.service.CountryNews(ctx, "Yemen", TypeEconomic, 0)
	s.service.Latest(ctx, "", 12)
	s.service.Latest(ctx, "", 0)

	s.Equal([]int{7, DefaultCountryPageSize, 12, DefaultLatestPageSize}, s.fetcher.limits)
}

func (s *NewsServiceSuite) TestFetchFailureServesDemoArticles() {
	s.fetcher.err = errors.New("upstream down")

	resp := s.service.CountryNews(context.Background(), "Argentina", TypeEconomic, 0)
	s.True(resp.Demo)
	s.False(resp.Cached)
	s.NotEmpty(resp.Articles)
	s.Contains(resp.Articles[0].Title, "Argentina")
}

func (s *NewsServiceSuite) TestDemoResponseIsNotCached() {
	s.fetcher.err = errors.New("upstream down")
	s.service.CountryNews(context.Background(), "Argentina", TypeEconomic, 0)

	s.fetcher.err = nil
	resp := s.service.CountryNews(context.Background(), "Argentina", TypeEconomic, 0)
	s.False(resp.Demo)
	s.False(resp.Cached, "a real fetch must replace the demo fallback")
}

func (s *NewsServiceSuite) TestLatestIsNeverCached() {
	ctx := context.Background()

	s.service.Latest(ctx, "", 0)
	resp := s.service.Latest(ctx, "", 0)

	s.Len(s.fetcher.queries, 2)
	s.Equal(latestQuery, s.fetcher.queries[0])
	s.Equal("all", resp.CrisisType)
	s.False(resp.Cached)
}

func (s *NewsServiceSuite) TestLatestFilteredByType() {
	resp := s.service.Latest(context.Background(), TypeFood, 0)

	s.Require().Len(s.fetcher.queries, 1)
	s.Equal(crisisKeywords[TypeFood], s.fetcher.queries[0], "a typed feed searches the bare keywords without a country")
	s.Equal(TypeFood, resp.CrisisType)
}

func (s *NewsServiceSuite) TestValidCrisisType() {
	s.True(ValidCrisisType(TypeEconomic))
	s.True(ValidCrisisType(TypeFood))
	s.False(ValidCrisisType("political"))
	s.False(ValidCrisisType(""))
}
