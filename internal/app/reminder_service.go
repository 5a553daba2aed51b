// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"shift_reminder_bot/internal/domain/messaging"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// ReminderOptions are the per-deployment choices of the reminder engine.
type ReminderOptions struct {
	TenantID      int64 // tenant of the automatic run
	Rounding      reminder.Rounding
	AutoPolicy    reminder.AutoPhasePolicy
	SubmissionURL string
	Now           func() time.Time // evaluated in the tenant's time zone
}

// ReminderService decides whether a reminder fires for a target month and dispatches it.
type ReminderService struct {
	catalog     *reminder.Catalog
	groups      messaging.GroupDirectory
	dispatcher  messaging.Dispatcher
	settings    *SettingsProvider
	submissions *SubmissionService
	opts        ReminderOptions
	metrics     *metrics.ReminderMetrics
	logger      *logrus.Entry
}

func NewReminderService(
	catalog *reminder.Catalog,
	groups messaging.GroupDirectory,
	dispatcher messaging.Dispatcher,
	settings *SettingsProvider,
	submissions *SubmissionService,
	opts ReminderOptions,
	m *metrics.ReminderMetrics,
	logger *logrus.Entry,
) *ReminderService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rounding == "" {
		opts.Rounding = reminder.RoundNearestMidnight
	}
	if opts.AutoPolicy == "" {
		opts.AutoPolicy = reminder.AutoFinalOnly
	}
	return &ReminderService{
		catalog:     catalog,
		groups:      groups,
		dispatcher:  dispatcher,
		settings:    settings,
		submissions: submissions,
		opts:        opts,
		metrics:     m,
		logger:      logger,
	}
}

// TenantID is the tenant the automatic run targets.
func (s *ReminderService) TenantID() int64 {
	return s.opts.TenantID
}

// Catalog exposes the configured phases, e.g. for listing them in admin commands.
func (s *ReminderService) Catalog() *reminder.Catalog {
	return s.catalog
}

// RunAutoReminder targets next month for the configured tenant.
func (s *ReminderService) RunAutoReminder(ctx context.Context) (*reminder.Result, error) {
	year, month := reminder.NextTargetMonth(s.opts.Now())
	s.logger.WithFields(logrus.Fields{
		"tenant_id": s.opts.TenantID,
		"target":    fmt.Sprintf("%d-%02d", year, month),
	}).Info("Auto reminder triggered")

	return s.CheckAndSend(ctx, s.opts.TenantID, year, month)
}

// CheckAndSend is the automatic path: it sends only when the deadline distance resolves to a
// phase the auto policy allows.
func (s *ReminderService) CheckAndSend(ctx context.Context, tenantID int64, year, month int) (result *reminder.Result, err error) {
	start := time.Now()
	defer func() { s.finish(ctx, "check", tenantID, year, month, result, err, start) }()

	groupID, ok := s.groups.GroupID(tenantID)
	if !ok {
		return reminder.NotNotified(year, month, reminder.ReasonNoGroupConfigured), nil
	}

	settings := s.settings.Get(ctx, tenantID)
	if !settings.Enabled {
		result = reminder.NotNotified(year, month, reminder.ReasonRemindersDisabled)
		result.DeadlineSettings = &settings
		return result, nil
	}

	days := reminder.DaysUntilDeadline(s.opts.Now(), year, month, settings.Day, settings.Time, s.opts.Rounding)

	phase, ok := s.catalog.Resolve(days, s.opts.Rounding)
	if !ok {
		result = reminder.NotNotified(year, month, reminder.ReasonNoPhaseMatched)
		result.DeadlineSettings = &settings
		result.DaysUntilDeadline = &days
		return result, nil
	}

	if !s.opts.AutoPolicy.AllowsAuto(phase) {
		result = reminder.NotNotified(year, month, reminder.ReasonManualOnly)
		result.SkippedPhase = &phase.Number
		result.DeadlineSettings = &settings
		result.DaysUntilDeadline = &days
		return result, nil
	}

	result, err = s.compose(ctx, tenantID, groupID, year, month, phase, settings)
	if err != nil {
		return nil, err
	}
	result.DaysUntilDeadline = &days
	return result, nil
}

// SendPhase sends the given phase regardless of the date. Phase must be 1..4.
func (s *ReminderService) SendPhase(ctx context.Context, tenantID int64, year, month, phaseNumber int) (result *reminder.Result, err error) {
	start := time.Now()
	defer func() { s.finish(ctx, "manual", tenantID, year, month, result, err, start) }()

	phase, err := s.catalog.ByNumber(phaseNumber)
	if err != nil {
		return nil, err
	}

	groupID, ok := s.groups.GroupID(tenantID)
	if !ok {
		return reminder.NotNotified(year, month, reminder.ReasonNoGroupConfigured), nil
	}

	settings := s.settings.Get(ctx, tenantID)
	return s.compose(ctx, tenantID, groupID, year, month, phase, settings)
}

// StatusReport describes the state of a target month without sending anything.
type StatusReport struct {
	TenantID          int64                     `json:"tenant_id"`
	TargetYear        int                       `json:"targetYear"`
	TargetMonth       int                       `json:"targetMonth"`
	GroupConfigured   bool                      `json:"groupConfigured"`
	DeadlineSettings  reminder.DeadlineSettings `json:"deadlineSettings"`
	Deadline          string                    `json:"deadline"`
	DaysUntilDeadline int                       `json:"daysUntilDeadline"`
	MatchedPhase      *int                      `json:"matchedPhase,omitempty"`
	AutoSend          bool                      `json:"autoSend"`
	Stats             reminder.SubmissionStats  `json:"stats"`
}

// Status computes what CheckAndSend would decide today and the current submission stats.
func (s *ReminderService) Status(ctx context.Context, tenantID int64, year, month int) (*StatusReport, error) {
	_, groupConfigured := s.groups.GroupID(tenantID)
	settings := s.settings.Get(ctx, tenantID)

	stats, err := s.submissions.Stats(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}
	stats.UnsubmittedNames, err = s.submissions.UnsubmittedNames(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}

	days := reminder.DaysUntilDeadline(s.opts.Now(), year, month, settings.Day, settings.Time, s.opts.Rounding)
	report := &StatusReport{
		TenantID:          tenantID,
		TargetYear:        year,
		TargetMonth:       month,
		GroupConfigured:   groupConfigured,
		DeadlineSettings:  settings,
		Deadline:          reminder.DeadlineString(month, settings.Day, settings.Time),
		DaysUntilDeadline: days,
		Stats:             stats,
	}
	if phase, ok := s.catalog.Resolve(days, s.opts.Rounding); ok {
		report.MatchedPhase = &phase.Number
		report.AutoSend = settings.Enabled && s.opts.AutoPolicy.AllowsAuto(phase)
	}
	return report, nil
}

// PersonalResult counts direct messages of SendPersonalReminders.
type PersonalResult struct {
	Phase      int `json:"phase"`
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// SendPersonalReminders renders the phase message and pushes it to every unsubmitted staff
// member individually. Staff without a chat user id are skipped.
func (s *ReminderService) SendPersonalReminders(ctx context.Context, tenantID int64, year, month, phaseNumber int) (*PersonalResult, error) {
	phase, err := s.catalog.ByNumber(phaseNumber)
	if err != nil {
		return nil, err
	}

	settings := s.settings.Get(ctx, tenantID)
	stats, err := s.submissions.Stats(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}

	members, err := s.submissions.UnsubmittedStaff(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}

	base := reminder.AnonymousVars{
		TargetMonth:   month,
		Deadline:      reminder.DeadlineString(month, settings.Day, settings.Time),
		SubmissionURL: s.opts.SubmissionURL,
	}
	message := reminder.Render(phase.Template, reminder.VarsFor(phase.Type, base, stats, names))

	result := &PersonalResult{Phase: phase.Number}
	for _, m := range members {
		if m.LineUserID == "" {
			continue
		}
		result.Recipients++
		if s.dispatcher.SendToUser(ctx, m.LineUserID, message) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"trigger":    TriggerFrom(ctx),
		"tenant_id":  tenantID,
		"target":     fmt.Sprintf("%d-%02d", year, month),
		"phase":      phase.Number,
		"recipients": result.Recipients,
		"sent":       result.Sent,
		"failed":     result.Failed,
	}).Info("Personal reminders processed")
	return result, nil
}

func (s *ReminderService) compose(
	ctx context.Context,
	tenantID int64,
	groupID string,
	year, month int,
	phase reminder.Phase,
	settings reminder.DeadlineSettings,
) (*reminder.Result, error) {
	stats, err := s.submissions.Stats(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}

	var names []string
	if phase.Type == reminder.PhaseTypeNamed {
		names, err = s.submissions.UnsubmittedNames(ctx, tenantID, year, month)
		if err != nil {
			return nil, err
		}
	}

	base := reminder.AnonymousVars{
		TargetMonth:   month,
		Deadline:      reminder.DeadlineString(month, settings.Day, settings.Time),
		SubmissionURL: s.opts.SubmissionURL,
	}
	message := reminder.Render(phase.Template, reminder.VarsFor(phase.Type, base, stats, names))

	sent := s.dispatcher.SendToGroup(ctx, groupID, message)

	result := &reminder.Result{
		Success:          true,
		Notified:         sent,
		Phase:            &phase.Number,
		Type:             phase.Type,
		Stats:            &stats,
		DeadlineSettings: &settings,
		TargetYear:       year,
		TargetMonth:      month,
	}
	if !sent {
		result.Reason = reminder.ReasonDispatchFailed
	}
	if names != nil {
		result.Stats.UnsubmittedNames = names
	}
	return result, nil
}

func (s *ReminderService) finish(
	ctx context.Context,
	mode string,
	tenantID int64,
	year, month int,
	result *reminder.Result,
	err error,
	start time.Time,
) {
	trigger := TriggerFrom(ctx)
	logCtx := s.logger.WithFields(logrus.Fields{
		"mode":      mode,
		"trigger":   trigger,
		"tenant_id": tenantID,
		"target":    fmt.Sprintf("%d-%02d", year, month),
	})

	phase := 0
	if result != nil {
		if result.Phase != nil {
			phase = *result.Phase
			logCtx = logCtx.WithFields(logrus.Fields{"phase": phase, "phase_type": result.Type})
		}
		if result.DaysUntilDeadline != nil {
			logCtx = logCtx.WithField("days_until_deadline", *result.DaysUntilDeadline)
		}
		if result.SkippedPhase != nil {
			logCtx = logCtx.WithField("skipped_phase", *result.SkippedPhase)
		}
	}

	outcome := result.Outcome()
	s.metrics.RecordRun(ctx, trigger, outcome, phase, time.Since(start))

	switch {
	case err != nil:
		logCtx.WithError(err).Error("Reminder run failed")
	case result.Reason == reminder.ReasonNoGroupConfigured:
		logCtx.Warn("No group configured for tenant, reminder skipped")
	case result.Notified:
		logCtx.Info("Reminder sent")
	default:
		logCtx.WithField("reason", result.Reason).Info("No reminder sent")
	}
}
