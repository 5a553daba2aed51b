// Package dedup suppresses repeated notifications for the same key within a time window.
package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DefaultWindow = 60 * time.Second

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var ErrUnknownBackend = errors.New("unknown dedup backend")

// Guard answers whether a notification for key was already sent within the window.
// A call that is not suppressed records the send, so check and record happen together.
type Guard interface {
	ShouldSuppress(ctx context.Context, key string) bool
}

type Options struct {
	Backend string
	Window  time.Duration
	Redis   *redis.Client // required for BackendRedis
	Logger  *logrus.Entry
}

// NewGuard builds the guard for the configured backend.
func NewGuard(opts Options) (Guard, error) {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryGuard(opts.Window, time.Now), nil
	case BackendRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("redis dedup backend requires a client")
		}
		return NewRedisGuard(opts.Redis, opts.Window, opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
