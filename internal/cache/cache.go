// Package cache keeps the last rollup served to each user so a store outage
// can fall back to it instead of empty statistics.
package cache

import (
	"context"

	"essaycoach-be/internal/models"
)

type StatsCache interface {
	// Get returns ok=false when nothing is cached for the user.
	Get(ctx context.Context, userID string) (*models.RollupStatistics, bool, error)
	Set(ctx context.Context, userID string, stats models.RollupStatistics) error
	Delete(ctx context.Context, userID string) error
}

// NopCache never stores anything. Used when REDIS_URL is empty.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*models.RollupStatistics, bool, error) {
	return nil, false, nil
}

func (NopCache) Set(context.Context, string, models.RollupStatistics) error { return nil }

func (NopCache) Delete(context.Context, string) error { return nil }
