package messaging

import (
	"context"

	"shift_reminder_bot/internal/domain/messaging"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

const (
	targetGroup = "group"
	targetUser  = "user"
)

// Dispatcher turns Sender errors into a boolean outcome. When disabled it only logs what
// would have been sent and reports success.
type Dispatcher struct {
	sender  messaging.Sender
	enabled bool
	metrics *metrics.ReminderMetrics
	logger  *logrus.Entry
}

func NewDispatcher(sender messaging.Sender, enabled bool, m *metrics.ReminderMetrics, logger *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		enabled: enabled,
		metrics: m,
		logger:  logger,
	}
}

func (d *Dispatcher) SendToGroup(ctx context.Context, groupID string, text string) bool {
	return d.send(ctx, targetGroup, groupID, text)
}

func (d *Dispatcher) SendToUser(ctx context.Context, userID string, text string) bool {
	return d.send(ctx, targetUser, userID, text)
}

func (d *Dispatcher) send(ctx context.Context, target, to, text string) bool {
	logCtx := d.logger.WithFields(logrus.Fields{
		"target":       target,
		"recipient_id": to,
	})

	if !d.enabled {
		logCtx.WithField("text", text).Info("Notifications disabled, message not sent")
		return true
	}

	if err := d.sender.PushText(ctx, to, text); err != nil {
		logCtx.WithError(err).Error("Failed to send message")
		d.metrics.RecordDispatch(ctx, target, false)
		return false
	}

	logCtx.Info("Message sent")
	d.metrics.RecordDispatch(ctx, target, true)
	return true
}
