package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	result  *reminder.Result
	err     error
	panics  bool
	trigger string
	hasDL   bool
}

func (f *fakeJob) RunAutoReminder(ctx context.Context) (*reminder.Result, error) {
	f.trigger = app.TriggerFrom(ctx)
	_, f.hasDL = ctx.Deadline()
	if f.panics {
		panic("boom")
	}
	return f.result, f.err
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestReminderScheduler_RunNow(t *testing.T) {
	job := &fakeJob{result: reminder.NotNotified(2026, 3, reminder.ReasonNoPhaseMatched)}
	s := NewReminderScheduler(job, "0 10 * * *", time.UTC, nil, testLogger())

	result, err := s.RunNow(context.Background())

	require.NoError(t, err)
	assert.Equal(t, reminder.ReasonNoPhaseMatched, result.Reason)
	assert.Equal(t, "cron", job.trigger)
	assert.True(t, job.hasDL, "each run is bounded by a timeout")
}

func TestReminderScheduler_RunNowKeepsCallerTrigger(t *testing.T) {
	job := &fakeJob{result: reminder.NotNotified(2026, 3, reminder.ReasonNoPhaseMatched)}
	s := NewReminderScheduler(job, "0 10 * * *", time.UTC, nil, testLogger())

	_, err := s.RunNow(app.WithTrigger(context.Background(), metrics.TriggerHTTP))

	require.NoError(t, err)
	assert.Equal(t, metrics.TriggerHTTP, job.trigger)
	assert.True(t, job.hasDL)
}

func TestReminderScheduler_RunNowError(t *testing.T) {
	job := &fakeJob{err: errors.New("db down")}
	s := NewReminderScheduler(job, "0 10 * * *", time.UTC, nil, testLogger())

	_, err := s.RunNow(context.Background())

	assert.EqualError(t, err, "db down")
}

func TestReminderScheduler_RecoversPanics(t *testing.T) {
	job := &fakeJob{panics: true}
	s := NewReminderScheduler(job, "0 10 * * *", time.UTC, nil, testLogger())

	_, err := s.RunNow(context.Background())

	assert.ErrorContains(t, err, "panicked")
}

func TestReminderScheduler_StartRejectsInvalidSpec(t *testing.T) {
	s := NewReminderScheduler(&fakeJob{}, "not a cron spec", time.UTC, nil, testLogger())

	assert.Error(t, s.Start())
}

func TestReminderScheduler_StartStop(t *testing.T) {
	s := NewReminderScheduler(&fakeJob{}, "0 10 * * *", time.UTC, nil, testLogger())

	require.NoError(t, s.Start())
	entries := s.cronEngine.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].Next.Hour())
	s.Stop()
}
