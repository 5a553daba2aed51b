package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/domain/staff"
	"shift_reminder_bot/internal/infra/grouplog"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

const adminID int64 = 42

// fakeContext implements the parts of telebot.Context the handlers use.
type fakeContext struct {
	telebot.Context
	sender    *telebot.User
	args      []string
	callback  *telebot.Callback
	sent      []string
	sendOpts  [][]interface{}
	responses []*telebot.CallbackResponse
}

func (c *fakeContext) Sender() *telebot.User { return c.sender }
func (c *fakeContext) Args() []string { return c.args }
func (c *fakeContext) Callback() *telebot.Callback { return c.callback }
func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what.(string))
	c.sendOpts = append(c.sendOpts, opts)
	return nil
}

func (c *fakeContext) Respond(resp ...*telebot.CallbackResponse) error {
	if len(resp) == 0 {
		c.responses = append(c.responses, nil)
		return nil
	}
	c.responses = append(c.responses, resp[0])
	return nil
}

type phaseCall struct {
	tenantID int64
	year     int
	month    int
	phase    int
	trigger  string
}

type fakeReminders struct {
	catalog    *reminder.Catalog
	phaseCalls []phaseCall
	checkCalls []phaseCall
	statusArgs []phaseCall
	err        error
}

func (f *fakeReminders) TenantID() int64 { return 3 }
func (f *fakeReminders) Catalog() *reminder.Catalog { return f.catalog }

func (f *fakeReminders) RunAutoReminder(ctx context.Context) (*reminder.Result, error) {
	return reminder.NotNotified(2026, 4, reminder.ReasonNoPhaseMatched), f.err
}

func (f *fakeReminders) CheckAndSend(ctx context.Context, tenantID int64, year, month int) (*reminder.Result, error) {
	f.checkCalls = append(f.checkCalls, phaseCall{tenantID: tenantID, year: year, month: month, trigger: app.TriggerFrom(ctx)})
	if f.err != nil {
		return nil, f.err
	}
	days := 5
	result := reminder.NotNotified(year, month, reminder.ReasonNoPhaseMatched)
	result.DaysUntilDeadline = &days
	return result, nil
}

func (f *fakeReminders) SendPhase(ctx context.Context, tenantID int64, year, month, phase int) (*reminder.Result, error) {
	f.phaseCalls = append(f.phaseCalls, phaseCall{tenantID: tenantID, year: year, month: month, phase: phase, trigger: app.TriggerFrom(ctx)})
	if f.err != nil {
		return nil, f.err
	}
	return &reminder.Result{
		Success:     true,
		Notified:    true,
		Phase:       &phase,
		Stats:       &reminder.SubmissionStats{TotalCount: 10, SubmittedCount: 7, UnsubmittedCount: 3},
		TargetYear:  year,
		TargetMonth: month,
	}, nil
}

func (f *fakeReminders) SendPersonalReminders(_ context.Context, _ int64, _, _, phase int) (*app.PersonalResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &app.PersonalResult{Phase: phase, Recipients: 3, Sent: 2, Failed: 1}, nil
}

func (f *fakeReminders) Status(_ context.Context, tenantID int64, year, month int) (*app.StatusReport, error) {
	f.statusArgs = append(f.statusArgs, phaseCall{tenantID: tenantID, year: year, month: month})
	matched := 3
	return &app.StatusReport{
		TenantID:          tenantID,
		TargetYear:        year,
		TargetMonth:       month,
		GroupConfigured:   true,
		DeadlineSettings:  reminder.DeadlineSettings{Day: 10, Time: "23:59", Enabled: true},
		Deadline:          "3月10日 23:59",
		DaysUntilDeadline: 1,
		MatchedPhase:      &matched,
		Stats: reminder.SubmissionStats{
			TotalCount: 10, SubmittedCount: 8, UnsubmittedCount: 2,
			UnsubmittedNames: []string{"佐藤", "田中"},
		},
	}, f.err
}

type fakeStaff struct {
	members []*staff.Staff
}

func (f *fakeStaff) ActiveStaff(context.Context, int64) ([]*staff.Staff, error) {
	return f.members, nil
}

type fakeGroups struct {
	entries []grouplog.Entry
}

func (f *fakeGroups) Recent(_ context.Context, limit int) ([]grouplog.Entry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func newTestHandlers(t *testing.T) (*AdminHandlers, *fakeReminders) {
	t.Helper()
	catalog, err := reminder.NewCatalog([]reminder.Phase{
		{Number: 1, DaysBefore: 7, Type: reminder.PhaseTypeAnonymous, Template: "a"},
		{Number: 2, DaysBefore: 3, Type: reminder.PhaseTypeStats, Template: "b"},
		{Number: 3, DaysBefore: 1, Type: reminder.PhaseTypeNamed, Template: "c"},
		{Number: 4, Type: reminder.PhaseTypeOverdue, Template: "d"},
	})
	require.NoError(t, err)

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	reminders := &fakeReminders{catalog: catalog}
	h := NewAdminHandlers(
		context.Background(),
		reminders,
		&fakeStaff{members: []*staff.Staff{
			{Name: "佐藤", StoreName: "渋谷店", LineUserID: "U1"},
			{Name: "田中"},
		}},
		&fakeGroups{entries: []grouplog.Entry{
			{GroupID: "C123", Kind: "join", RecordedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)},
		}},
		adminID,
		func() time.Time { return time.Date(2026, 12, 20, 10, 0, 0, 0, time.UTC) },
		logrus.NewEntry(l),
	)
	return h, reminders
}

func TestAdminHandlers_RejectsNonAdmin(t *testing.T) {
	h, reminders := newTestHandlers(t)
	c := &fakeContext{sender: &telebot.User{ID: 7}, args: []string{"2026", "3", "2"}}

	require.NoError(t, h.adminOnly("/remind_phase", h.onRemindPhase)(c))

	assert.Empty(t, reminders.phaseCalls)
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "権限がありません")
}

func TestAdminHandlers_RemindPhase(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedCalls []phaseCall
		expectedReply string
	}{
		{
			name:          "Should send the requested phase",
			args:          []string{"2026", "3", "2"},
			expectedCalls: []phaseCall{{tenantID: 3, year: 2026, month: 3, phase: 2, trigger: "telegram"}},
			expectedReply: "2026年3月: フェーズ2のリマインダーを送信しました。\n提出 7/10, 未提出 3",
		},
		{
			name:          "Should reject a missing phase",
			args:          []string{"2026", "3"},
			expectedReply: "使い方: /remind_phase <年> <月> <フェーズ>",
		},
		{
			name:          "Should reject an invalid month",
			args:          []string{"2026", "13", "2"},
			expectedReply: "使い方: /remind_phase <年> <月> <フェーズ>",
		},
		{
			name:          "Should reject a non numeric phase",
			args:          []string{"2026", "3", "x"},
			expectedReply: "エラー: フェーズは数字で指定してください。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, reminders := newTestHandlers(t)
			c := &fakeContext{sender: &telebot.User{ID: adminID}, args: tt.args}

			require.NoError(t, h.adminOnly("/remind_phase", h.onRemindPhase)(c))

			assert.Equal(t, tt.expectedCalls, reminders.phaseCalls)
			require.Len(t, c.sent, 1)
			assert.Equal(t, tt.expectedReply, c.sent[0])
		})
	}
}

func TestAdminHandlers_RemindPhaseInvalidPhase(t *testing.T) {
	h, reminders := newTestHandlers(t)
	reminders.err = reminder.ErrInvalidPhase
	c := &fakeContext{sender: &telebot.User{ID: adminID}, args: []string{"2026", "3", "9"}}

	require.NoError(t, h.adminOnly("/remind_phase", h.onRemindPhase)(c))

	assert.Equal(t, []string{"エラー: フェーズ 9 は存在しません。"}, c.sent)
}

func TestAdminHandlers_Remind(t *testing.T) {
	h, reminders := newTestHandlers(t)
	c := &fakeContext{sender: &telebot.User{ID: adminID}, args: []string{"2026", "3"}}

	require.NoError(t, h.adminOnly("/remind", h.onRemind)(c))

	assert.Equal(t, []phaseCall{{tenantID: 3, year: 2026, month: 3, trigger: "telegram"}}, reminders.checkCalls)
	assert.Equal(t, []string{"2026年3月: 送信なし (no phase matched)\n締切まで 5日"}, c.sent)

	reminders.err = errors.New("database is down")
	require.NoError(t, h.adminOnly("/remind", h.onRemind)(c))
	assert.Contains(t, c.sent[1], "database is down")
}

func TestAdminHandlers_StatusDefaultsToNextMonth(t *testing.T) {
	h, reminders := newTestHandlers(t)
	c := &fakeContext{sender: &telebot.User{ID: adminID}}

	require.NoError(t, h.adminOnly("/status", h.onStatus)(c))

	assert.Equal(t, []phaseCall{{tenantID: 3, year: 2027, month: 1}}, reminders.statusArgs)
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "提出 8/10, 未提出 2")
	assert.Contains(t, c.sent[0], "フェーズ3の対象日です (手動送信のみ)")
	assert.Contains(t, c.sent[0], "未提出: 佐藤、田中")

	require.Len(t, c.sendOpts[0], 1)
	markup, ok := c.sendOpts[0][0].(*telebot.ReplyMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Len(t, markup.InlineKeyboard[0], 4)
}

func TestAdminHandlers_SendPhaseButton(t *testing.T) {
	h, reminders := newTestHandlers(t)
	c := &fakeContext{
		sender:   &telebot.User{ID: adminID},
		callback: &telebot.Callback{Data: "2026|3|4"},
	}

	require.NoError(t, h.adminOnly("send_phase_button", h.onSendPhaseButton)(c))

	assert.Equal(t, []phaseCall{{tenantID: 3, year: 2026, month: 3, phase: 4, trigger: "telegram"}}, reminders.phaseCalls)
	assert.Len(t, c.responses, 1)
	assert.Len(t, c.sent, 1)
}

func TestAdminHandlers_SendPhaseButtonInvalidData(t *testing.T) {
	h, reminders := newTestHandlers(t)
	c := &fakeContext{
		sender:   &telebot.User{ID: adminID},
		callback: &telebot.Callback{Data: "garbage"},
	}

	require.NoError(t, h.adminOnly("send_phase_button", h.onSendPhaseButton)(c))

	assert.Empty(t, reminders.phaseCalls)
	require.Len(t, c.responses, 1)
	assert.Equal(t, "不正なデータです。", c.responses[0].Text)
}

func TestAdminHandlers_RemindPersonal(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := &fakeContext{sender: &telebot.User{ID: adminID}, args: []string{"2026", "3", "3"}}

	require.NoError(t, h.adminOnly("/remind_personal", h.onRemindPersonal)(c))

	assert.Equal(t, []string{"フェーズ3の個別リマインダー: 対象 3人, 送信 2件, 失敗 1件"}, c.sent)
}

func TestAdminHandlers_Staff(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := &fakeContext{sender: &telebot.User{ID: adminID}}

	require.NoError(t, h.adminOnly("/staff", h.onStaff)(c))

	assert.Equal(t, []string{"時給スタッフ (2人):\n- 佐藤 (渋谷店)\n- 田中 [LINE未連携]\n"}, c.sent)
}

func TestAdminHandlers_Groups(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := &fakeContext{sender: &telebot.User{ID: adminID}}

	require.NoError(t, h.adminOnly("/groups", h.onGroups)(c))

	assert.Equal(t, []string{"最近のグループイベント:\n2026-02-01 09:30 join C123\n"}, c.sent)

	h.groups = nil
	require.NoError(t, h.adminOnly("/groups", h.onGroups)(c))
	assert.Equal(t, "グループ履歴は無効です。", c.sent[1])
}

func TestBotCommands_Help(t *testing.T) {
	_, reminders := newTestHandlers(t)
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	admin := &fakeContext{sender: &telebot.User{ID: adminID}}
	require.NoError(t, onHelp(admin, adminID, reminders.catalog, logrus.NewEntry(l)))
	require.Len(t, admin.sent, 1)
	assert.Contains(t, admin.sent[0], "/remind_phase")
	assert.Contains(t, admin.sent[0], "4: 締切0日前 (overdue)")

	other := &fakeContext{sender: &telebot.User{ID: 7}}
	require.NoError(t, onHelp(other, adminID, reminders.catalog, logrus.NewEntry(l)))
	assert.Equal(t, []string{"利用できるコマンドはありません。"}, other.sent)
}
