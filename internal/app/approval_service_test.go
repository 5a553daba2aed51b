package app

import (
	"context"
	"testing"
	"time"

	"shift_reminder_bot/internal/domain/messaging"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/dedup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type approvalMocks struct {
	settingsRepo *reminder.MockSettingsRepository
	dispatcher   *messaging.MockDispatcher
	groups       *messaging.MockGroupDirectory
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func newApprovalService(t *testing.T) (*ApprovalService, approvalMocks, *stepClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := approvalMocks{
		settingsRepo: reminder.NewMockSettingsRepository(ctrl),
		dispatcher:   messaging.NewMockDispatcher(ctrl),
		groups:       messaging.NewMockGroupDirectory(ctrl),
	}
	clock := &stepClock{now: time.Date(2026, 1, 20, 12, 0, 0, 0, jst)}

	svc := NewApprovalService(
		ApprovalTemplates{
			FirstPlanApproved:  "{targetMonth}月のシフト希望を{deadline}までに {liffUrl}",
			SecondPlanApproved: "{targetMonth}月のシフトが確定しました {liffUrl}",
		},
		m.groups,
		m.dispatcher,
		NewSettingsProvider(m.settingsRepo, testLogger()),
		dedup.NewMemoryGuard(dedup.DefaultWindow, clock.Now),
		dedup.BackendMemory,
		testLIFFURL,
		nil,
		testLogger(),
	)
	return svc, m, clock
}

func TestApprovalService_NotifyFirstPlanApproved(t *testing.T) {
	svc, m, _ := newApprovalService(t)
	m.groups.EXPECT().GroupID(testTenant).Return(testGroupID, true)
	m.settingsRepo.EXPECT().GetDeadlineSettings(gomock.Any(), testTenant, reminder.EmploymentTypePartTime).
		Return(&reminder.DeadlineSettings{Day: 12, Time: "20:00", Enabled: true}, nil)
	m.dispatcher.EXPECT().
		SendToGroup(gomock.Any(), testGroupID, "3月のシフト希望を2月12日までに "+testLIFFURL).
		Return(true)

	result, err := svc.NotifyFirstPlanApproved(context.Background(), testTenant, 2026, 3)

	require.NoError(t, err)
	assert.Equal(t, &ApprovalResult{Success: true, Notified: true, Message: "Notification sent to group"}, result)
}

func TestApprovalService_NotifySecondPlanApproved(t *testing.T) {
	svc, m, _ := newApprovalService(t)
	m.groups.EXPECT().GroupID(testTenant).Return(testGroupID, true)
	m.dispatcher.EXPECT().
		SendToGroup(gomock.Any(), testGroupID, "3月のシフトが確定しました "+testLIFFURL).
		Return(false)

	result, err := svc.NotifySecondPlanApproved(context.Background(), testTenant, 2026, 3)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Notified)
}

func TestApprovalService_DuplicatesAreSuppressedWithinWindow(t *testing.T) {
	svc, m, clock := newApprovalService(t)
	m.groups.EXPECT().GroupID(testTenant).Return(testGroupID, true).Times(4)
	m.settingsRepo.EXPECT().GetDeadlineSettings(gomock.Any(), testTenant, reminder.EmploymentTypePartTime).
		Return(nil, nil).Times(2)
	m.dispatcher.EXPECT().SendToGroup(gomock.Any(), testGroupID, gomock.Any()).Return(true).Times(3)
	ctx := context.Background()

	first, err := svc.NotifyFirstPlanApproved(ctx, testTenant, 2026, 3)
	require.NoError(t, err)
	assert.True(t, first.Notified)

	clock.now = clock.now.Add(5 * time.Second)
	second, err := svc.NotifyFirstPlanApproved(ctx, testTenant, 2026, 3)
	require.NoError(t, err)
	assert.True(t, second.Suppressed)
	assert.False(t, second.Notified)

	other, err := svc.NotifySecondPlanApproved(ctx, testTenant, 2026, 3)
	require.NoError(t, err)
	assert.True(t, other.Notified, "a different approval kind has its own key")

	clock.now = clock.now.Add(time.Minute)
	third, err := svc.NotifyFirstPlanApproved(ctx, testTenant, 2026, 3)
	require.NoError(t, err)
	assert.True(t, third.Notified)
}

func TestApprovalService_NoGroupConfigured(t *testing.T) {
	svc, m, _ := newApprovalService(t)
	m.groups.EXPECT().GroupID(int64(99)).Return("", false).Times(3)

	first, err := svc.NotifyFirstPlanApproved(context.Background(), 99, 2026, 3)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.False(t, first.Notified)

	second, err := svc.NotifySecondPlanApproved(context.Background(), 99, 2026, 3)
	require.NoError(t, err)
	assert.False(t, second.Notified)

	_, _, err = svc.SendTestMessage(context.Background(), 99, "hello")
	assert.ErrorIs(t, err, ErrNoGroupConfigured)
}

func TestApprovalService_SendTestMessage(t *testing.T) {
	svc, m, _ := newApprovalService(t)
	m.groups.EXPECT().GroupID(testTenant).Return(testGroupID, true)
	m.dispatcher.EXPECT().SendToGroup(gomock.Any(), testGroupID, "hello").Return(true)

	groupID, sent, err := svc.SendTestMessage(context.Background(), testTenant, "hello")

	require.NoError(t, err)
	assert.Equal(t, testGroupID, groupID)
	assert.True(t, sent)
}
