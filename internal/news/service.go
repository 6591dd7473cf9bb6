// Package news serves crisis-related headlines per country and crisis type,
// fetched from an RSS search feed and cached aggressively; headline churn is
// slow and the upstream is unauthenticated, so a stale list beats an error.
package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crisiswatch/internal/news/models"
	"crisiswatch/internal/news/store"
	"crisiswatch/pkg/platform/sentinel"
	"crisiswatch/pkg/requestcontext"
)

// Crisis types a news query may target.
const (
	TypeEconomic = "economic"
	TypeFood     = "food"
)

// Default article counts when the caller does not ask for a page size.
const (
	DefaultCountryPageSize = 20
	DefaultLatestPageSize  = 30
)

// crisisKeywords are the search terms appended to the country name per
// crisis type, and used bare for type-filtered latest queries.
var crisisKeywords = map[string]string{
	TypeEconomic: "economic crisis OR financial crisis OR recession OR debt crisis",
	TypeFood:     "food crisis OR food shortage OR famine OR hunger crisis",
}

// latestQuery is the unfiltered global search.
const latestQuery = "global crisis OR economic crisis OR food crisis"

// ValidCrisisType reports whether t is a supported crisis type.
func ValidCrisisType(t string) bool {
	_, ok := crisisKeywords[t]
	return ok
}

type feedFetcher interface {
	Fetch(ctx context.Context, query string, limit int) ([]models.Article, error)
}

type metricsRecorder interface {
	IncrementCacheHit(crisisType string)
	IncrementCacheMiss(crisisType string)
	IncrementFetchFailure(crisisType string)
	IncrementDemoServed(crisisType string)
}

type Service struct {
	fetcher feedFetcher
	cache   store.Store
	logger  *slog.Logger
	metrics metricsRecorder
	ttl     time.Duration
}

func NewService(fetcher feedFetcher, cache store.Store, logger *slog.Logger, metrics metricsRecorder, ttl time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
		ttl:     ttl,
	}
}

// CountryNews returns headlines for a country and crisis type, serving the
// whole cached envelope when a fresh entry exists; the cache key ignores
// pageSize, so a cached hit replays whatever size was fetched first. A
// failed fetch falls back to demo articles rather than an error so the
// dashboard always has content.
func (s *Service) CountryNews(ctx context.Context, country, crisisType string, pageSize int) models.Response {
	if pageSize <= 0 {
		pageSize = DefaultCountryPageSize
	}
	key := cacheKey(country, crisisType)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		s.metrics.IncrementCacheHit(crisisType)
		cached.Cached = true
		return cached
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "news cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err,
		)
	}
	s.metrics.IncrementCacheMiss(crisisType)

	query := country + " " + crisisKeywords[crisisType]
	articles, err := s.fetcher.Fetch(ctx, query, pageSize)
	if err != nil {
		s.metrics.IncrementFetchFailure(crisisType)
		s.metrics.IncrementDemoServed(crisisType)
		s.logger.WarnContext(ctx, "news fetch failed, serving demo articles",
			"request_id", requestcontext.RequestID(ctx),
			"country", country,
			"crisis_type", crisisType,
			"error", err,
		)
		return s.envelope(ctx, country, crisisType, demoArticles(country, crisisType), true)
	}

	resp := s.envelope(ctx, country, crisisType, articles, false)
	if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "news cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err,
		)
	}

	s.logger.InfoContext(ctx, "news fetched",
		"request_id", requestcontext.RequestID(ctx),
		"country", country,
		"crisis_type", crisisType,
		"articles", len(articles),
	)
	return resp
}

// Latest returns global crisis headlines, optionally filtered to one crisis
// type. Never cached: this feed backs the dashboard ticker and should
// reflect the feed as-is.
func (s *Service) Latest(ctx context.Context, crisisType string, pageSize int) models.Response {
	if pageSize <= 0 {
		pageSize = DefaultLatestPageSize
	}

	query := latestQuery
	reported := "all"
	if crisisType != "" {
		query = crisisKeywords[crisisType]
		reported = crisisType
	}

	articles, err := s.fetcher.Fetch(ctx, query, pageSize)
	if err != nil {
		s.metrics.IncrementFetchFailure(reported)
		s.metrics.IncrementDemoServed(reported)
		s.logger.WarnContext(ctx, "latest news fetch failed, serving demo articles",
			"request_id", requestcontext.RequestID(ctx),
			"crisis_type", reported,
			"error", err,
		)
		fallbackType := crisisType
		if fallbackType == "" {
			fallbackType = TypeEconomic
		}
		return s.envelope(ctx, "", reported, demoArticles("", fallbackType), true)
	}
	return s.envelope(ctx, "", reported, articles, false)
}

func (s *Service) envelope(ctx context.Context, country, crisisType string, articles []models.Article, demo bool) models.Response {
	return models.Response{
		Country:      country,
		CrisisType:   crisisType,
		TotalResults: len(articles),
		Articles:     articles,
		FetchedAt:    requestcontext.Now(ctx),
		Demo:         demo,
	}
}

func cacheKey(country, crisisType string) string {
	return country + "_" + crisisType
}

// demoArticles are the canned fallbacks shown when the feed is unreachable.
func demoArticles(country, crisisType string) []models.Article {
	subject := "Global markets"
	if country != "" {
		subject = country
	}
	if crisisType == TypeFood {
		return []models.Article{
			{
				Title:       fmt.Sprintf("%s faces mounting food security pressures", subject),
				Source:      "Demo Wire",
				Description: "Analysts point to cereal yield declines and rising import dependence as early warning signs.",
			},
			{
				Title:       "Aid agencies warn of widening hunger crisis",
				Source:      "Demo Wire",
				Description: "Humanitarian organizations report growing gaps between food assistance funding and need.",
			},
		}
	}
	return []models.Article{
		{
			Title:       fmt.Sprintf("%s under scrutiny as recession risks build", subject),
			Source:      "Demo Wire",
			Description: "Economists flag elevated inflation and slowing growth as debt sustainability concerns mount.",
		},
		{
			Title:       "Currency pressures raise fears of financial contagion",
			Source:      "Demo Wire",
			Description: "Emerging markets face capital outflows as global financial conditions tighten.",
		},
	}
}
