// README: Quota store backed by Redis counters.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const counterKeyPrefix = "quota:plans:%s:%s"

// Store handles plan counters in Redis.
type Store struct {
	redis *redis.Client
}

// NewStore returns a Store backed by the given client.
func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// Increment bumps the client's counter for day and returns the new value.
// The key gets its expiry in the same round trip.
func (s *Store) Increment(ctx context.Context, clientID string, day time.Time) (int64, error) {
	key := counterKey(clientID, day)
	pipe := s.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Reset removes the client's counter for day.
func (s *Store) Reset(ctx context.Context, clientID string, day time.Time) error {
	return s.redis.Del(ctx, counterKey(clientID, day)).Err()
}

func counterKey(clientID string, day time.Time) string {
	return fmt.Sprintf(counterKeyPrefix, clientID, day.UTC().Format("2006-01-02"))
}
