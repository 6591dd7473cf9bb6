//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"crisiswatch/internal/news/models"
	"crisiswatch/pkg/platform/sentinel"
	"crisiswatch/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	container *containers.RedisContainer
	store     *Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.container = containers.NewRedisContainer(s.T())
	s.store = NewRedis(s.container.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestSetAndGet() {
	ctx := context.Background()
	resp := models.Response{
		Country:      "Argentina",
		CrisisType:   "economic",
		TotalResults: 1,
		Articles: []models.Article{
			{Title: "Headline", Link: "https://example.com", Source: "Wire", Description: "Body"},
		},
		FetchedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.store.Set(ctx, "Argentina_economic", resp, time.Hour))

	got, err := s.store.Get(ctx, "Argentina_economic")
	s.Require().NoError(err)
	s.Equal(resp, got)
}

func (s *RedisStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "nope")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestTTLExpiry() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "key", models.Response{CrisisType: "economic"}, 100*time.Millisecond))
	time.Sleep(200 * time.Millisecond)

	_, err := s.store.Get(ctx, "key")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestKeysAreNamespaced() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "key", models.Response{CrisisType: "economic"}, time.Hour))

	keys, err := s.container.Client.Keys(ctx, "crisiswatch:news:*").Result()
	s.Require().NoError(err)
	s.Len(keys, 1)
}
