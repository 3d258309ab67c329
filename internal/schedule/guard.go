package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DayGuard keeps replicated sweepers from running the same calendar day
// twice, via a Redis SETNX key per day. The per-milestone
// notification_sent flag is the real at-most-once guarantee; this only
// avoids redundant runs.
type DayGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDayGuard(rdb *redis.Client, ttl time.Duration) *DayGuard {
	return &DayGuard{rdb: rdb, ttl: ttl}
}

// AcquireDay returns true if this process is the first to sweep the
// given day. Fails open when Redis is unavailable: a duplicate run is
// harmless, a skipped one is not.
func (g *DayGuard) AcquireDay(ctx context.Context, day time.Time) bool {
	key := fmt.Sprintf("sweep:%s", day.Format("2006-01-02"))

	ok, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}
