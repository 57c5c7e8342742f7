package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// The script returns the request count in the current window and the
// window's remaining time in milliseconds.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`

const redisTimeout = 250 * time.Millisecond

// RedisLimiter is a fixed-window Checker shared by every server instance
// pointing at the same Redis. Redis failures let the request through.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	config *Config
	log    logrus.FieldLogger
}

var _ Checker = (*RedisLimiter)(nil)

// NewRedisLimiter returns a limiter backed by client. A nil client yields a
// limiter that allows everything.
func NewRedisLimiter(client *redis.Client, config *Config, log logrus.FieldLogger) *RedisLimiter {
	if config == nil {
		config = defaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		config: config,
		log:    log,
	}
}

// Connect parses url, pings the server and returns the client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Allow counts the request in the client's current window.
func (l *RedisLimiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if allowed, info, ok := l.config.screen(clientID); ok {
		return allowed, info
	}
	ec := l.config.resolve(endpoint, method)
	if l.client == nil || ec.Limit <= 0 || ec.Window <= 0 || clientID == "" {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	if l.config.KeyPrefix != "" {
		key = l.config.KeyPrefix + ":" + key
	}
	ttl := max(ec.Window.Milliseconds(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	res, err := l.script.Run(ctx, l.client, []string{key}, ttl).Int64Slice()
	if err != nil || len(res) != 2 {
		l.log.WithError(err).WithField("key", key).Warn("rate limit check failed, allowing request")
		return true, Info{Allowed: true}
	}

	return decide(res[0], time.Duration(res[1])*time.Millisecond, ec.Limit, time.Now())
}

// decide turns a window count and its remaining time into a verdict.
func decide(count int64, remainingWindow time.Duration, limit int, now time.Time) (bool, Info) {
	if remainingWindow < 0 {
		remainingWindow = 0
	}
	allowed := count <= int64(limit)
	info := Info{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(limit-int(count), 0),
		ResetTime: now.Add(remainingWindow),
	}
	if !allowed {
		info.RetryAfter = remainingWindow
	}
	return allowed, info
}

// Stop closes the Redis client.
func (l *RedisLimiter) Stop() {
	if l.client != nil {
		_ = l.client.Close()
	}
}
