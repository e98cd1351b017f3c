package quota

import (
	"errors"
	"time"
)

// ErrQuotaExceeded is returned when a client has used up today's plan allowance.
var ErrQuotaExceeded = errors.New("daily plan quota exceeded")

// DefaultDailyPlans is the number of itinerary requests granted per client per day.
const DefaultDailyPlans = 20

// keyTTL outlives the day the counter belongs to so clock skew cannot reset it early.
const keyTTL = 48 * time.Hour
