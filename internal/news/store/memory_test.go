package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"crisiswatch/internal/news/models"
	"crisiswatch/pkg/platform/sentinel"
	"crisiswatch/pkg/requestcontext"
)

type MemorySuite struct {
	suite.Suite
	store *Memory
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) SetupTest() {
	s.store = NewMemory()
}

func (s *MemorySuite) response() models.Response {
	return models.Response{
		Country:      "Argentina",
		CrisisType:   "economic",
		TotalResults: 1,
		Articles:     []models.Article{{Title: "Headline", Source: "Wire"}},
		FetchedAt:    time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func (s *MemorySuite) TestSetAndGet() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "Argentina_economic", s.response(), time.Hour))

	got, err := s.store.Get(ctx, "Argentina_economic")
	s.Require().NoError(err)
	s.Equal(s.response(), got)
}

func (s *MemorySuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "nope")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemorySuite) TestExpiredEntryIsGone() {
	now := time.Now()
	writeCtx := requestcontext.WithTime(context.Background(), now)
	s.Require().NoError(s.store.Set(writeCtx, "key", s.response(), time.Hour))

	readCtx := requestcontext.WithTime(context.Background(), now.Add(2*time.Hour))
	_, err := s.store.Get(readCtx, "key")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemorySuite) TestEntryFreshJustBeforeExpiry() {
	now := time.Now()
	writeCtx := requestcontext.WithTime(context.Background(), now)
	s.Require().NoError(s.store.Set(writeCtx, "key", s.response(), time.Hour))

	readCtx := requestcontext.WithTime(context.Background(), now.Add(59*time.Minute))
	got, err := s.store.Get(readCtx, "key")
	s.Require().NoError(err)
	s.Len(got.Articles, 1)
}

func (s *MemorySuite) TestOverwriteResetsEntry() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "key", s.response(), time.Hour))
	s.Require().NoError(s.store.Set(ctx, "key", models.Response{CrisisType: "food"}, time.Hour))

	got, err := s.store.Get(ctx, "key")
	s.Require().NoError(err)
	s.Equal("food", got.CrisisType)
	s.Empty(got.Articles)
}
