package quota

import (
	"context"
	"time"
)

// Counter is the storage contract the Service needs; *Store satisfies it.
type Counter interface {
	Increment(ctx context.Context, clientID string, day time.Time) (int64, error)
}

// Service enforces the per-client daily plan allowance.
type Service struct {
	counter Counter
	limit   int64
	now     func() time.Time
}

// NewService creates a Service. A non-positive limit selects DefaultDailyPlans.
func NewService(counter Counter, limit int) *Service {
	if limit <= 0 {
		limit = DefaultDailyPlans
	}
	return &Service{counter: counter, limit: int64(limit), now: time.Now}
}

// Use consumes one plan from the client's allowance for today.
// Returns ErrQuotaExceeded once the limit is passed.
func (s *Service) Use(ctx context.Context, clientID string) error {
	n, err := s.counter.Increment(ctx, clientID, s.now())
	if err != nil {
		return err
	}
	if n > s.limit {
		return ErrQuotaExceeded
	}
	return nil
}
