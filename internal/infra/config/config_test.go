package config

import (
	"testing"
	"time"

	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/dedup"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/shift?sslmode=disable")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("TIMEZONE", "UTC")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(3), cfg.TenantID)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultCronSpecReminder, cfg.CronSpecReminder)
	assert.True(t, cfg.NotificationEnabled)
	assert.Equal(t, PlatformLINE, cfg.MessagingPlatform)
	assert.Equal(t, reminder.RoundNearestMidnight, cfg.DeadlineRounding)
	assert.Equal(t, reminder.AutoFinalOnly, cfg.AutoPhasePolicy)
	assert.Equal(t, 60*time.Second, cfg.DedupWindow)
	assert.Equal(t, dedup.BackendMemory, cfg.DedupBackend)
	assert.Contains(t, cfg.CORSAllowedOrigins, "http://localhost:5173")
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TENANT_ID", "42")
	t.Setenv("NOTIFICATION_ENABLED", "false")
	t.Setenv("DEADLINE_ROUNDING", "ceil")
	t.Setenv("AUTO_PHASE_POLICY", "all")
	t.Setenv("DEDUP_WINDOW", "2m")
	t.Setenv("DEDUP_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.TenantID)
	assert.False(t, cfg.NotificationEnabled)
	assert.Equal(t, reminder.CeilDeadlineTime, cfg.DeadlineRounding)
	assert.Equal(t, reminder.AutoAll, cfg.AutoPhasePolicy)
	assert.Equal(t, 2*time.Minute, cfg.DedupWindow)
	assert.Equal(t, dedup.BackendRedis, cfg.DedupBackend)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Should require DATABASE_URL", env: map[string]string{"DATABASE_URL": ""}},
		{name: "Should reject invalid TENANT_ID", env: map[string]string{"TENANT_ID": "three"}},
		{name: "Should reject unknown platform", env: map[string]string{"MESSAGING_PLATFORM": "fax"}},
		{name: "Should require telegram token", env: map[string]string{"MESSAGING_PLATFORM": "telegram"}},
		{name: "Should reject unknown rounding", env: map[string]string{"DEADLINE_ROUNDING": "floor"}},
		{name: "Should reject unknown policy", env: map[string]string{"AUTO_PHASE_POLICY": "never"}},
		{name: "Should reject invalid dedup window", env: map[string]string{"DEDUP_WINDOW": "-1s"}},
		{name: "Should reject unknown dedup backend", env: map[string]string{"DEDUP_BACKEND": "memcached"}},
		{name: "Should reject unknown timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadNotificationConfig_Embedded(t *testing.T) {
	cfg, err := LoadNotificationConfig("")
	require.NoError(t, err)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)

	phases := catalog.Phases()
	require.Len(t, phases, 4)
	assert.Equal(t, 7, phases[0].DaysBefore)
	assert.Equal(t, reminder.PhaseTypeNamed, phases[2].Type)
	assert.Contains(t, phases[2].Template, "{unsubmittedNames}")
	assert.Contains(t, cfg.ApprovalMessages.FirstPlanApproved, "{deadline}")

	_, ok := cfg.GroupID(3)
	assert.False(t, ok, "embedded config ships without a group id")
}

func TestNotificationConfig_GroupID(t *testing.T) {
	cfg, err := ParseNotificationConfig([]byte(`
groups:
  tenant_3:
    groupId: C123
  tenant_5:
    groupId: ""
reminders:
  - phase: 4
    type: overdue
    message: today
approvalMessages:
  firstPlanApproved: first
  secondPlanApproved: second
`))
	require.NoError(t, err)

	groupID, ok := cfg.GroupID(3)
	assert.True(t, ok)
	assert.Equal(t, "C123", groupID)

	_, ok = cfg.GroupID(5)
	assert.False(t, ok)

	_, ok = cfg.GroupID(99)
	assert.False(t, ok)

	cfg.OverrideGroup(99, "G99")
	groupID, ok = cfg.GroupID(99)
	assert.True(t, ok)
	assert.Equal(t, "G99", groupID)
}

func TestParseNotificationConfig_Invalid(t *testing.T) {
	_, err := ParseNotificationConfig([]byte(`
reminders:
  - phase: 1
    daysBefore: 3
    type: anonymous
    message: a
  - phase: 2
    daysBefore: 3
    type: stats
    message: b
approvalMessages:
  firstPlanApproved: first
  secondPlanApproved: second
`))
	assert.Error(t, err)

	_, err = ParseNotificationConfig([]byte(`reminders: []`))
	assert.Error(t, err)
}

func TestDefaultCronSpecReminder_ReachesEveryPhase(t *testing.T) {
	schedule, err := cron.ParseStandard(DefaultCronSpecReminder)
	require.NoError(t, err)

	notificationCfg, err := LoadNotificationConfig("")
	require.NoError(t, err)
	catalog, err := notificationCfg.Catalog()
	require.NoError(t, err)

	jst := time.FixedZone("JST", 9*60*60)

	settings := reminder.DefaultDeadlineSettings()
	rounding, err := reminder.ParseRounding("")
	require.NoError(t, err)
	policy, err := reminder.ParseAutoPhasePolicy("")
	require.NoError(t, err)

	autoSends := map[time.Month][]int{}
	matchedPhases := map[time.Month]map[int]bool{}

	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, jst)
	until := time.Date(2026, time.April, 1, 0, 0, 0, 0, jst)
	for fire := schedule.Next(from); fire.Before(until); fire = schedule.Next(fire) {
		year, month := reminder.NextTargetMonth(fire)
		days := reminder.DaysUntilDeadline(fire, year, month, settings.Day, settings.Time, rounding)

		phase, ok := catalog.Resolve(days, rounding)
		if !ok {
			continue
		}
		if matchedPhases[fire.Month()] == nil {
			matchedPhases[fire.Month()] = map[int]bool{}
		}
		matchedPhases[fire.Month()][phase.Number] = true
		if policy.AllowsAuto(phase) {
			autoSends[fire.Month()] = append(autoSends[fire.Month()], fire.Day())
		}
	}

	for _, m := range []time.Month{time.January, time.February, time.March} {
		assert.Equal(t, []int{settings.Day}, autoSends[m], "one automatic send on the deadline day in %s", m)
		assert.Len(t, matchedPhases[m], reminder.MaxPhase, "every phase day is visited in %s", m)
	}
}
