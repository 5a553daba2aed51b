package app

import (
	"context"
	"errors"
	"fmt"

	"shift_reminder_bot/internal/domain/messaging"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/dedup"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

var ErrNoGroupConfigured = errors.New("no group configured for tenant")

const (
	approvalFirstPlan  = "first-plan-approved"
	approvalSecondPlan = "second-plan-approved"
)

// ApprovalTemplates are the fixed messages announced when a shift plan is approved.
type ApprovalTemplates struct {
	FirstPlanApproved  string // targetMonth, deadline, liffUrl
	SecondPlanApproved string // targetMonth, liffUrl
}

// ApprovalResult is the outcome of an approval announcement.
type ApprovalResult struct {
	Success    bool   `json:"success"`
	Notified   bool   `json:"notified"`
	Message    string `json:"message"`
	Suppressed bool   `json:"suppressed,omitempty"`
}

// ApprovalService announces plan approvals to the tenant group. Repeated calls for the same
// tenant and month inside the dedup window are dropped.
type ApprovalService struct {
	templates     ApprovalTemplates
	groups        messaging.GroupDirectory
	dispatcher    messaging.Dispatcher
	settings      *SettingsProvider
	guard         dedup.Guard
	dedupBackend  string
	submissionURL string
	metrics       *metrics.ReminderMetrics
	logger        *logrus.Entry
}

func NewApprovalService(
	templates ApprovalTemplates,
	groups messaging.GroupDirectory,
	dispatcher messaging.Dispatcher,
	settings *SettingsProvider,
	guard dedup.Guard,
	dedupBackend string,
	submissionURL string,
	m *metrics.ReminderMetrics,
	logger *logrus.Entry,
) *ApprovalService {
	return &ApprovalService{
		templates:     templates,
		groups:        groups,
		dispatcher:    dispatcher,
		settings:      settings,
		guard:         guard,
		dedupBackend:  dedupBackend,
		submissionURL: submissionURL,
		metrics:       m,
		logger:        logger,
	}
}

// NotifyFirstPlanApproved announces that shift requests for the month are open.
// The deadline shows the day only.
func (s *ApprovalService) NotifyFirstPlanApproved(ctx context.Context, tenantID int64, year, month int) (*ApprovalResult, error) {
	return s.notify(ctx, approvalFirstPlan, tenantID, year, month, func() string {
		settings := s.settings.Get(ctx, tenantID)
		return reminder.Render(s.templates.FirstPlanApproved, reminder.AnonymousVars{
			TargetMonth:   month,
			Deadline:      reminder.DeadlineString(month, settings.Day, ""),
			SubmissionURL: s.submissionURL,
		})
	})
}

// NotifySecondPlanApproved announces that the month's shifts are final.
func (s *ApprovalService) NotifySecondPlanApproved(ctx context.Context, tenantID int64, year, month int) (*ApprovalResult, error) {
	return s.notify(ctx, approvalSecondPlan, tenantID, year, month, func() string {
		return reminder.Render(s.templates.SecondPlanApproved, reminder.AnonymousVars{
			TargetMonth:   month,
			SubmissionURL: s.submissionURL,
		})
	})
}

func (s *ApprovalService) notify(
	ctx context.Context,
	kind string,
	tenantID int64,
	year, month int,
	render func() string,
) (*ApprovalResult, error) {
	key := fmt.Sprintf("%s:%d:%d-%d", kind, tenantID, year, month)
	logCtx := s.logger.WithFields(logrus.Fields{
		"notification": kind,
		"tenant_id":    tenantID,
		"target":       fmt.Sprintf("%d-%02d", year, month),
	})

	groupID, ok := s.groups.GroupID(tenantID)
	if !ok {
		logCtx.Warn("No group configured for tenant, approval notification skipped")
		return &ApprovalResult{
			Success:  true,
			Notified: false,
			Message:  "No group configured for this tenant. Notification skipped.",
		}, nil
	}

	suppressed := s.guard.ShouldSuppress(ctx, key)
	s.metrics.RecordDedupDecision(ctx, s.dedupBackend, suppressed)
	if suppressed {
		logCtx.WithField("dedup_key", key).Info("Duplicate approval notification suppressed")
		return &ApprovalResult{
			Success:    true,
			Notified:   false,
			Message:    "Duplicate notification suppressed",
			Suppressed: true,
		}, nil
	}

	sent := s.dispatcher.SendToGroup(ctx, groupID, render())
	logCtx.WithField("notified", sent).Info("Approval notification processed")

	message := "Notification sent to group"
	if !sent {
		message = "Notification could not be delivered"
	}
	return &ApprovalResult{
		Success:  true,
		Notified: sent,
		Message:  message,
	}, nil
}

// SendTestMessage pushes a free text message to the tenant group.
func (s *ApprovalService) SendTestMessage(ctx context.Context, tenantID int64, text string) (groupID string, sent bool, err error) {
	groupID, ok := s.groups.GroupID(tenantID)
	if !ok {
		return "", false, fmt.Errorf("%w %d", ErrNoGroupConfigured, tenantID)
	}

	sent = s.dispatcher.SendToGroup(ctx, groupID, text)
	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"group_id":  groupID,
		"notified":  sent,
	}).Info("Test message processed")
	return groupID, sent, nil
}
