package scheduler

import (
	"context"
	"fmt"
	"time"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 2 * time.Minute

// AutoReminder is the job the scheduler runs.
type AutoReminder interface {
	RunAutoReminder(ctx context.Context) (*reminder.Result, error)
}

// ReminderScheduler triggers the automatic reminder on a cron spec. It holds no business logic:
// every run goes through supervise, which bounds it with a timeout, logs it and records it.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	job        AutoReminder
	cronSpec   string
	timeout    time.Duration
	metrics    *metrics.ReminderMetrics
	logger     *logrus.Entry
}

func NewReminderScheduler(
	job AutoReminder,
	cronSpec string, // e.g. "0 10 * * *" (10:00 every day)
	location *time.Location,
	m *metrics.ReminderMetrics,
	logger *logrus.Entry,
) *ReminderScheduler {
	if location == nil {
		location = time.Local
	}
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		job:        job,
		cronSpec:   cronSpec,
		timeout:    defaultJobTimeout,
		metrics:    m,
		logger:     logger,
	}
}

func (s *ReminderScheduler) Start() error {
	s.logger.WithField("cron_spec", s.cronSpec).Info("Starting reminder scheduler")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.supervise(context.Background())
	})
	if err != nil {
		return fmt.Errorf("could not add reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.Info("Reminder scheduler started")
	return nil
}

// supervise runs one automatic reminder. Contexts without a trigger count as cron runs.
func (s *ReminderScheduler) supervise(parent context.Context) (*reminder.Result, error) {
	if app.TriggerFrom(parent) == app.TriggerUnknown {
		parent = app.WithTrigger(parent, metrics.TriggerCron)
	}
	logCtx := s.logger.WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"trigger": app.TriggerFrom(parent),
	})

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	start := time.Now()
	logCtx.Info("Auto reminder triggered")

	result, err := s.runSafely(ctx)
	duration := time.Since(start)
	if err != nil {
		logCtx.WithError(err).WithField("duration", duration).Error("Auto reminder run failed")
		return nil, err
	}

	logCtx.WithFields(logrus.Fields{
		"duration": duration,
		"outcome":  result.Outcome(),
		"target":   fmt.Sprintf("%d-%02d", result.TargetYear, result.TargetMonth),
	}).Info("Auto reminder run finished")
	return result, nil
}

// runSafely turns a panic in the job into an error so the cron goroutine survives.
func (s *ReminderScheduler) runSafely(ctx context.Context) (result *reminder.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("auto reminder panicked: %v", r)
			s.metrics.RecordRun(ctx, app.TriggerFrom(ctx), "panic", 0, 0)
		}
	}()
	return s.job.RunAutoReminder(ctx)
}

// RunNow triggers a supervised run outside the schedule, keeping the caller's trigger.
func (s *ReminderScheduler) RunNow(ctx context.Context) (*reminder.Result, error) {
	return s.supervise(ctx)
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped")
}
