package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ExerciseCache stores exercise catalog responses keyed by muscle group.
// A miss (or any Redis failure) just means the caller falls through to the
// upstream API; the cache is never load-bearing.
type ExerciseCache interface {
	Get(ctx context.Context, muscleGroup string) ([]domain.Exercise, bool)
	Set(ctx context.Context, muscleGroup string, exercises []domain.Exercise)
	Close() error
}

type redisExerciseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisExerciseCache creates a Redis-backed exercise cache.
func NewRedisExerciseCache(addr string, ttl time.Duration) ExerciseCache {
	return &redisExerciseCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl: ttl,
	}
}

func cacheKey(muscleGroup string) string {
	return fmt.Sprintf("exercises:%s", muscleGroup)
}

// Get returns the cached list for a muscle group, if present.
func (c *redisExerciseCache) Get(ctx context.Context, muscleGroup string) ([]domain.Exercise, bool) {
	data, err := c.client.Get(ctx, cacheKey(muscleGroup)).Bytes()
	if err != nil {
		return nil, false
	}
	var exercises []domain.Exercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, false
	}
	return exercises, true
}

// Set stores the list for a muscle group with the configured TTL.
// Failures are swallowed: a cold cache is not an error.
func (c *redisExerciseCache) Set(ctx context.Context, muscleGroup string, exercises []domain.Exercise) {
	data, err := json.Marshal(exercises)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(muscleGroup), data, c.ttl).Err()
}

// Close releases the Redis connection.
func (c *redisExerciseCache) Close() error {
	return c.client.Close()
}
