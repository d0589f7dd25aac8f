// Package ratelimit throttles failed logins with Redis fixed-window counters.
//
// Each failure runs INCR on the key and sets EXPIRE when the counter is new, so
// the window starts at the first failure and ends cooldown later. Keys:
//   - login:email:<email>
//   - login:ip:<ip>
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited is returned once an identifier has exhausted its attempts.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps Redis command failures.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// Config holds limiter tuning parameters.
type Config struct {
	MaxAttempts int
	Cooldown    time.Duration
}

// LoginLimiter counts failed logins per email and per client IP.
type LoginLimiter struct {
	redis  redis.UniversalClient
	config Config
}

// NewLoginLimiter creates a limiter backed by the given Redis client.
func NewLoginLimiter(client redis.UniversalClient, cfg Config) *LoginLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Minute
	}
	return &LoginLimiter{redis: client, config: cfg}
}

// Check returns ErrRateLimited when either the email or the IP has used up
// its failure budget.
func (l *LoginLimiter) Check(ctx context.Context, email, ip string) error {
	for _, key := range l.keys(email, ip) {
		count, err := l.redis.Get(ctx, key).Int64()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		if count >= int64(l.config.MaxAttempts) {
			return ErrRateLimited
		}
	}
	return nil
}

// RecordFailure increments the failure counters for the email and IP.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email, ip string) error {
	for _, key := range l.keys(email, ip) {
		count, err := l.redis.Incr(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		if count == 1 {
			if err := l.redis.Expire(ctx, key, l.config.Cooldown).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
			}
		}
	}
	return nil
}

// Reset clears the counters after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email, ip string) error {
	if err := l.redis.Del(ctx, l.keys(email, ip)...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *LoginLimiter) keys(email, ip string) []string {
	keys := []string{"login:email:" + strings.ToLower(strings.TrimSpace(email))}
	if ip != "" {
		keys = append(keys, "login:ip:"+ip)
	}
	return keys
}
