package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "notification-dedup:"

// RedisGuard shares dedup state between instances. The key expires after the window,
// so Redis does the sweeping.
type RedisGuard struct {
	client *redis.Client
	window time.Duration
	logger *logrus.Entry
}

func NewRedisGuard(client *redis.Client, window time.Duration, logger *logrus.Entry) *RedisGuard {
	return &RedisGuard{
		client: client,
		window: window,
		logger: logger,
	}
}

// ShouldSuppress fails open: when Redis is unreachable the notification is not suppressed.
func (g *RedisGuard) ShouldSuppress(ctx context.Context, key string) bool {
	created, err := g.client.SetNX(ctx, redisKeyPrefix+key, time.Now().UnixMilli(), g.window).Result()
	if err != nil {
		g.logger.WithError(err).WithField("key", key).Warn("Dedup check failed, not suppressing")
		return false
	}
	return !created
}
