// Package store provides the response cache behind the news service. Two
// implementations exist: an in-process map for single-instance deployments
// and a Redis cache shared across replicas.
package store

import (
	"context"
	"time"

	"crisiswatch/internal/news/models"
)

// Store caches whole news responses under a country/crisis-type key, so a
// cached hit replays the original envelope including its fetch timestamp.
// Get returns sentinel.ErrNotFound for both absent and expired entries;
// callers treat them identically.
type Store interface {
	Get(ctx context.Context, key string) (models.Response, error)
	Set(ctx context.Context, key string, resp models.Response, ttl time.Duration) error
}
