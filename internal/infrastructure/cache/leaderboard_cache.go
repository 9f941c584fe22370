// Package cache provides a Redis-backed snapshot cache for leaderboard
// reads. The leaderboard is a cross-learner view with bounded staleness,
// so serving it from a TTL'd snapshot is acceptable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"daxlearn/internal/domain/entity"
)

// ErrCacheMiss is returned when no snapshot exists for the key.
var ErrCacheMiss = errors.New("leaderboard_cache: miss")

type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

func key(limit int, gameType string) string {
	if gameType == "" {
		gameType = "all"
	}
	return fmt.Sprintf("leaderboard:%d:%s", limit, gameType)
}

func (c *LeaderboardCache) Get(ctx context.Context, limit int, gameType string) ([]entity.LeaderboardEntry, error) {
	raw, err := c.client.Get(ctx, key(limit, gameType)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("leaderboard_cache: get: %w", err)
	}

	var entries []entity.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("leaderboard_cache: decode: %w", err)
	}

	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, gameType string, entries []entity.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("leaderboard_cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, key(limit, gameType), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("leaderboard_cache: set: %w", err)
	}

	return nil
}
