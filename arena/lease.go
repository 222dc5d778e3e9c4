package arena

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// The sweep lease keeps at most one batch alive system-wide. The TTL bounds
// how long a crashed process can wedge future sweeps.
const (
	sweepLockKey    = "arena:sweep:lock"
	sweepLastRunKey = "arena:sweep:last_run"
	sweepLockTTL    = 90 * time.Minute
)

// AcquireSweepLease takes the system-wide sweep lock. Returns ErrLockHeld
// when another process holds it; the caller skips the cycle.
func AcquireSweepLease(ctx context.Context, rdb *redis.Client) error {
	ok, err := rdb.SetNX(ctx, sweepLockKey, strconv.FormatInt(time.Now().Unix(), 10), sweepLockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// ReleaseSweepLease drops the lock and records the sweep timestamp for
// health reporting.
func ReleaseSweepLease(ctx context.Context, rdb *redis.Client) error {
	rdb.Set(ctx, sweepLastRunKey, strconv.FormatInt(time.Now().Unix(), 10), 0)
	return rdb.Del(ctx, sweepLockKey).Err()
}

// SweepRunning reports whether a sweep currently holds the lease.
func SweepRunning(ctx context.Context, rdb *redis.Client) (bool, error) {
	_, err := rdb.Get(ctx, sweepLockKey).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LastSweepTime returns the unix timestamp of the last completed sweep, or
// zero when none has run.
func LastSweepTime(ctx context.Context, rdb *redis.Client) (int64, error) {
	val, err := rdb.Get(ctx, sweepLastRunKey).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
