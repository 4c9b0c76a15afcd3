// Package throttle slows down password guessing by counting failed sign-in
// attempts in Redis. The throttle is optional; without a Redis address the
// login flow runs unthrottled.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// FailureLimiter blocks an email+address pair after MaxFailures failed
// attempts inside Window. Successful sign-ins clear the counter.
// Key format: login_failures:<email>:<ip>
type FailureLimiter struct {
	Client      *redis.Client
	MaxFailures int
	Window      time.Duration
}

func (l *FailureLimiter) Blocked(ctx context.Context, email, ip string) (bool, error) {
	n, err := l.Client.Get(ctx, l.key(email, ip)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= int64(l.MaxFailures), nil
}

func (l *FailureLimiter) RecordFailure(ctx context.Context, email, ip string) error {
	key := l.key(email, ip)
	pipe := l.Client.TxPipeline()
	pipe.Incr(ctx, key)
	// The window starts at the first failure and is not extended by later
	// ones.
	pipe.ExpireNX(ctx, key, l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

func (l *FailureLimiter) Reset(ctx context.Context, email, ip string) error {
	if err := l.Client.Del(ctx, l.key(email, ip)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (l *FailureLimiter) key(email, ip string) string {
	return fmt.Sprintf("login_failures:%s:%s", strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(ip))
}
