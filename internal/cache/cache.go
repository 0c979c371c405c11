package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
)

const ratingSummaryTTL = 5 * time.Minute

// RatingCache caches workplace rating summaries in Redis. A nil *RatingCache
// is valid and behaves as a cache that always misses, so callers do not need
// to branch on whether Redis is enabled.
type RatingCache struct {
	rdb *redis.Client
}

// NewRatingCache connects to Redis and verifies connectivity.
func NewRatingCache(addr, password string, db int) (*RatingCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RatingCache{rdb: rdb}, nil
}

func ratingSummaryKey(workplaceID int32) string {
	return fmt.Sprintf("worklens:rating_summary:%d", workplaceID)
}

// GetRatingSummary returns the cached summary for a workplace, or (nil, false)
// on a miss. Redis errors are logged and treated as misses.
func (c *RatingCache) GetRatingSummary(ctx context.Context, workplaceID int32) (*domain.RatingSummary, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, ratingSummaryKey(workplaceID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("rating summary cache read failed", "workplace_id", workplaceID, "error", err)
		}
		return nil, false
	}

	var summary domain.RatingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		logger.Warn("rating summary cache entry corrupt, dropping", "workplace_id", workplaceID, "error", err)
		c.rdb.Del(ctx, ratingSummaryKey(workplaceID))
		return nil, false
	}
	return &summary, true
}

// SetRatingSummary stores a summary with a short TTL.
func (c *RatingCache) SetRatingSummary(ctx context.Context, workplaceID int32, summary *domain.RatingSummary) {
	if c == nil || summary == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		logger.Warn("rating summary cache encode failed", "workplace_id", workplaceID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, ratingSummaryKey(workplaceID), data, ratingSummaryTTL).Err(); err != nil {
		logger.Warn("rating summary cache write failed", "workplace_id", workplaceID, "error", err)
	}
}

// InvalidateRatingSummary drops the cached summary after a review mutation.
func (c *RatingCache) InvalidateRatingSummary(ctx context.Context, workplaceID int32) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, ratingSummaryKey(workplaceID)).Err(); err != nil {
		logger.Warn("rating summary cache invalidation failed", "workplace_id", workplaceID, "error", err)
	}
}

// Close releases the Redis connection.
func (c *RatingCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
