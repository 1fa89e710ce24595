// Package scanlog keeps a short-lived count of check-in scans per ticket so
// the verification console can flag repeat scans quickly. It is advisory
// only: the chain's isUsed flag is the authority on whether a ticket has
// been consumed.
package scanlog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Log struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Log {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &Log{Client: client, TTL: ttl}
}

func key(ticketID int64) string {
	return fmt.Sprintf("ticket_scan:%d", ticketID)
}

// Record bumps the scan counter for a ticket and returns the new count. The
// first scan starts the TTL window.
func (l *Log) Record(ctx context.Context, ticketID int64) (int64, error) {
	k := key(ticketID)
	count, err := l.Client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := l.Client.Expire(ctx, k, l.TTL).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Count returns how many times a ticket was scanned inside the TTL window.
func (l *Log) Count(ctx context.Context, ticketID int64) (int64, error) {
	count, err := l.Client.Get(ctx, key(ticketID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
