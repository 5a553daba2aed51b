package dedup

import (
	"context"
	"testing"
	"time"

	"shift_reminder_bot/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRedisGuard_Window(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	guard := NewRedisGuard(client, 500*time.Millisecond, logrus.NewEntry(logrus.New()))

	assert.False(t, guard.ShouldSuppress(ctx, "first-plan-approved:3:2026-3"))
	assert.True(t, guard.ShouldSuppress(ctx, "first-plan-approved:3:2026-3"))
	assert.False(t, guard.ShouldSuppress(ctx, "second-plan-approved:3:2026-3"))

	assert.Eventually(t, func() bool {
		return !guard.ShouldSuppress(ctx, "first-plan-approved:3:2026-3")
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRedisGuard_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	guard := NewRedisGuard(client, time.Minute, logrus.NewEntry(logrus.New()))

	assert.False(t, guard.ShouldSuppress(context.Background(), "k"))
	assert.False(t, guard.ShouldSuppress(context.Background(), "k"))
}
