package app

import (
	"context"

	"shift_reminder_bot/internal/domain/reminder"

	"github.com/sirupsen/logrus"
)

// SettingsProvider loads the part-time deadline settings fresh on every call.
// It never fails: a missing row or a lookup error yields the defaults.
type SettingsProvider struct {
	repo   reminder.SettingsRepository
	logger *logrus.Entry
}

func NewSettingsProvider(repo reminder.SettingsRepository, logger *logrus.Entry) *SettingsProvider {
	return &SettingsProvider{
		repo:   repo,
		logger: logger,
	}
}

func (p *SettingsProvider) Get(ctx context.Context, tenantID int64) reminder.DeadlineSettings {
	logCtx := p.logger.WithField("tenant_id", tenantID)

	settings, err := p.repo.GetDeadlineSettings(ctx, tenantID, reminder.EmploymentTypePartTime)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load deadline settings, using defaults")
		return reminder.DefaultDeadlineSettings()
	}
	if settings == nil {
		logCtx.Warn("No deadline settings found, using defaults")
		return reminder.DefaultDeadlineSettings()
	}

	if settings.Time == "" {
		settings.Time = reminder.DefaultDeadlineTime
	}
	logCtx.WithFields(logrus.Fields{
		"deadline_day":  settings.Day,
		"deadline_time": settings.Time,
		"is_enabled":    settings.Enabled,
	}).Debug("Deadline settings loaded")
	return *settings
}
