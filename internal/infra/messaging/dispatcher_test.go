package messaging

import (
	"context"
	"errors"
	"testing"

	"shift_reminder_bot/internal/domain/messaging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestDispatcher(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		setupMock func(m *messaging.MockSender)
		send      func(d *Dispatcher) bool
		expected  bool
	}{
		{
			name:    "Should push to the group",
			enabled: true,
			setupMock: func(m *messaging.MockSender) {
				m.EXPECT().PushText(gomock.Any(), "C123", "hello").Return(nil)
			},
			send:     func(d *Dispatcher) bool { return d.SendToGroup(context.Background(), "C123", "hello") },
			expected: true,
		},
		{
			name:    "Should report failure when the platform rejects the message",
			enabled: true,
			setupMock: func(m *messaging.MockSender) {
				m.EXPECT().PushText(gomock.Any(), "U1", "hello").Return(errors.New("429 too many requests"))
			},
			send:     func(d *Dispatcher) bool { return d.SendToUser(context.Background(), "U1", "hello") },
			expected: false,
		},
		{
			name:      "Should succeed without sending when notifications are disabled",
			enabled:   false,
			setupMock: func(m *messaging.MockSender) {},
			send:      func(d *Dispatcher) bool { return d.SendToGroup(context.Background(), "C123", "hello") },
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sender := messaging.NewMockSender(ctrl)
			tt.setupMock(sender)

			d := NewDispatcher(sender, tt.enabled, nil, testLogger())

			assert.Equal(t, tt.expected, tt.send(d))
		})
	}
}
