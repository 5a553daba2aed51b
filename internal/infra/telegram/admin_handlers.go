package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/domain/staff"
	"shift_reminder_bot/internal/infra/grouplog"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	commandTimeout  = 2 * time.Minute
	groupListLimit  = 10
	sendPhaseUnique = "send_phase"
)

// Reminders is the reminder engine as driven from admin commands.
type Reminders interface {
	TenantID() int64
	Catalog() *reminder.Catalog
	RunAutoReminder(ctx context.Context) (*reminder.Result, error)
	CheckAndSend(ctx context.Context, tenantID int64, year, month int) (*reminder.Result, error)
	SendPhase(ctx context.Context, tenantID int64, year, month, phase int) (*reminder.Result, error)
	SendPersonalReminders(ctx context.Context, tenantID int64, year, month, phase int) (*app.PersonalResult, error)
	Status(ctx context.Context, tenantID int64, year, month int) (*app.StatusReport, error)
}

type StaffLister interface {
	ActiveStaff(ctx context.Context, tenantID int64) ([]*staff.Staff, error)
}

type GroupHistory interface {
	Recent(ctx context.Context, limit int) ([]grouplog.Entry, error)
}

// AdminHandlers serves the operator commands. Only the configured admin may run them.
type AdminHandlers struct {
	ctx       context.Context
	reminders Reminders
	staff     StaffLister
	groups    GroupHistory // nil when the group log is disabled
	adminID   int64
	now       func() time.Time // in the tenant's time zone
	logger    *logrus.Entry
}

func NewAdminHandlers(
	ctx context.Context,
	reminders Reminders,
	staffLister StaffLister,
	groups GroupHistory,
	adminTelegramID int64,
	now func() time.Time,
	baseLogger *logrus.Entry,
) *AdminHandlers {
	return &AdminHandlers{
		ctx:       ctx,
		reminders: reminders,
		staff:     staffLister,
		groups:    groups,
		adminID:   adminTelegramID,
		now:       now,
		logger:    baseLogger.WithField("handler_group", "admin"),
	}
}

// Register binds the admin commands and the phase buttons of /status.
func (h *AdminHandlers) Register(b *telebot.Bot) {
	b.Handle("/remind", h.adminOnly("/remind", h.onRemind))
	b.Handle("/remind_phase", h.adminOnly("/remind_phase", h.onRemindPhase))
	b.Handle("/remind_auto", h.adminOnly("/remind_auto", h.onRemindAuto))
	b.Handle("/remind_personal", h.adminOnly("/remind_personal", h.onRemindPersonal))
	b.Handle("/status", h.adminOnly("/status", h.onStatus))
	b.Handle("/staff", h.adminOnly("/staff", h.onStaff))
	b.Handle("/groups", h.adminOnly("/groups", h.onGroups))
	b.Handle(&telebot.Btn{Unique: sendPhaseUnique}, h.adminOnly("send_phase_button", h.onSendPhaseButton))
}

type commandFunc func(c telebot.Context, logCtx *logrus.Entry) error

func (h *AdminHandlers) adminOnly(command string, fn commandFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := h.logger.WithFields(logrus.Fields{
			"command":   command,
			"sender_id": c.Sender().ID,
		})
		logCtx.Info("Command received")

		if c.Sender().ID != h.adminID {
			logCtx.Warn("Unauthorized access attempt")
			if c.Callback() != nil {
				return c.Respond(&telebot.CallbackResponse{Text: "権限がありません。"})
			}
			return c.Send("エラー: このコマンドを実行する権限がありません。")
		}
		return fn(c, logCtx)
	}
}

func (h *AdminHandlers) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(app.WithTrigger(h.ctx, metrics.TriggerTelegram), commandTimeout)
}

// /remind <year> <month>
func (h *AdminHandlers) onRemind(c telebot.Context, logCtx *logrus.Entry) error {
	year, month, err := parseTarget(c.Args(), 2)
	if err != nil {
		return c.Send("使い方: /remind <年> <月>")
	}

	ctx, cancel := h.commandContext()
	defer cancel()

	result, err := h.reminders.CheckAndSend(ctx, h.reminders.TenantID(), year, month)
	if err != nil {
		logCtx.WithError(err).Error("Reminder check failed")
		return c.Send(fmt.Sprintf("リマインダーの処理中にエラーが発生しました: %s", err.Error()))
	}
	return c.Send(describeResult(result))
}

// /remind_phase <year> <month> <phase>
func (h *AdminHandlers) onRemindPhase(c telebot.Context, logCtx *logrus.Entry) error {
	args := c.Args()
	year, month, err := parseTarget(args, 3)
	if err != nil {
		return c.Send("使い方: /remind_phase <年> <月> <フェーズ>")
	}
	phase, err := strconv.Atoi(args[2])
	if err != nil {
		return c.Send("エラー: フェーズは数字で指定してください。")
	}
	return h.sendPhase(c, logCtx, year, month, phase)
}

func (h *AdminHandlers) onRemindAuto(c telebot.Context, logCtx *logrus.Entry) error {
	ctx, cancel := h.commandContext()
	defer cancel()

	result, err := h.reminders.RunAutoReminder(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Auto reminder failed")
		return c.Send(fmt.Sprintf("リマインダーの処理中にエラーが発生しました: %s", err.Error()))
	}
	return c.Send(describeResult(result))
}

// /remind_personal <year> <month> <phase>
func (h *AdminHandlers) onRemindPersonal(c telebot.Context, logCtx *logrus.Entry) error {
	args := c.Args()
	year, month, err := parseTarget(args, 3)
	if err != nil {
		return c.Send("使い方: /remind_personal <年> <月> <フェーズ>")
	}
	phase, err := strconv.Atoi(args[2])
	if err != nil {
		return c.Send("エラー: フェーズは数字で指定してください。")
	}

	ctx, cancel := h.commandContext()
	defer cancel()

	result, err := h.reminders.SendPersonalReminders(ctx, h.reminders.TenantID(), year, month, phase)
	if err != nil {
		if errors.Is(err, reminder.ErrInvalidPhase) {
			return c.Send(fmt.Sprintf("エラー: フェーズ %d は存在しません。", phase))
		}
		logCtx.WithError(err).Error("Personal reminders failed")
		return c.Send(fmt.Sprintf("個別リマインダーの送信中にエラーが発生しました: %s", err.Error()))
	}
	return c.Send(fmt.Sprintf("フェーズ%dの個別リマインダー: 対象 %d人, 送信 %d件, 失敗 %d件",
		result.Phase, result.Recipients, result.Sent, result.Failed))
}

// /status [<year> <month>] defaults to next month.
func (h *AdminHandlers) onStatus(c telebot.Context, logCtx *logrus.Entry) error {
	var year, month int
	if len(c.Args()) == 0 {
		year, month = reminder.NextTargetMonth(h.now())
	} else {
		var err error
		year, month, err = parseTarget(c.Args(), 2)
		if err != nil {
			return c.Send("使い方: /status [<年> <月>]")
		}
	}

	ctx, cancel := h.commandContext()
	defer cancel()

	report, err := h.reminders.Status(ctx, h.reminders.TenantID(), year, month)
	if err != nil {
		logCtx.WithError(err).Error("Status report failed")
		return c.Send(fmt.Sprintf("状況の取得中にエラーが発生しました: %s", err.Error()))
	}

	markup := &telebot.ReplyMarkup{}
	var buttons []telebot.Btn
	for _, p := range h.reminders.Catalog().Phases() {
		payload := fmt.Sprintf("%d|%d|%d", year, month, p.Number)
		buttons = append(buttons, markup.Data(fmt.Sprintf("フェーズ%d", p.Number), sendPhaseUnique, payload))
	}
	markup.Inline(markup.Row(buttons...))

	return c.Send(describeStatus(report), markup)
}

func (h *AdminHandlers) onSendPhaseButton(c telebot.Context, logCtx *logrus.Entry) error {
	// payload: year|month|phase
	parts := strings.Split(c.Callback().Data, "|")
	if len(parts) != 3 {
		logCtx.WithField("data", c.Callback().Data).Warn("Invalid callback data")
		return c.Respond(&telebot.CallbackResponse{Text: "不正なデータです。"})
	}
	year, month, err := parseTarget(parts[:2], 2)
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "不正なデータです。"})
	}
	phase, err := strconv.Atoi(parts[2])
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "不正なデータです。"})
	}

	if err := c.Respond(); err != nil {
		logCtx.WithError(err).Warn("Could not acknowledge callback")
	}
	return h.sendPhase(c, logCtx, year, month, phase)
}

func (h *AdminHandlers) sendPhase(c telebot.Context, logCtx *logrus.Entry, year, month, phase int) error {
	ctx, cancel := h.commandContext()
	defer cancel()

	result, err := h.reminders.SendPhase(ctx, h.reminders.TenantID(), year, month, phase)
	if err != nil {
		if errors.Is(err, reminder.ErrInvalidPhase) {
			return c.Send(fmt.Sprintf("エラー: フェーズ %d は存在しません。", phase))
		}
		logCtx.WithError(err).Error("Manual phase send failed")
		return c.Send(fmt.Sprintf("リマインダーの送信中にエラーが発生しました: %s", err.Error()))
	}
	return c.Send(describeResult(result))
}

func (h *AdminHandlers) onStaff(c telebot.Context, logCtx *logrus.Entry) error {
	ctx, cancel := h.commandContext()
	defer cancel()

	members, err := h.staff.ActiveStaff(ctx, h.reminders.TenantID())
	if err != nil {
		logCtx.WithError(err).Error("Failed to list staff")
		return c.Send(fmt.Sprintf("スタッフ一覧の取得中にエラーが発生しました: %s", err.Error()))
	}
	if len(members) == 0 {
		return c.Send("対象のスタッフはいません。")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("時給スタッフ (%d人):\n", len(members)))
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("- %s", m.Name))
		if m.StoreName != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.StoreName))
		}
		if m.LineUserID == "" {
			sb.WriteString(" [LINE未連携]")
		}
		sb.WriteString("\n")
	}
	return c.Send(sb.String())
}

func (h *AdminHandlers) onGroups(c telebot.Context, logCtx *logrus.Entry) error {
	if h.groups == nil {
		return c.Send("グループ履歴は無効です。")
	}

	entries, err := h.groups.Recent(h.ctx, groupListLimit)
	if err != nil {
		logCtx.WithError(err).Error("Failed to read group log")
		return c.Send(fmt.Sprintf("グループ履歴の取得中にエラーが発生しました: %s", err.Error()))
	}
	if len(entries) == 0 {
		return c.Send("記録されたグループはありません。")
	}

	var sb strings.Builder
	sb.WriteString("最近のグループイベント:\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s %s %s\n", e.RecordedAt.Format("2006-01-02 15:04"), e.Kind, e.GroupID))
	}
	return c.Send(sb.String())
}

func parseTarget(args []string, want int) (int, int, error) {
	if len(args) != want {
		return 0, 0, fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", args[1])
	}
	return year, month, nil
}

func describeResult(result *reminder.Result) string {
	target := fmt.Sprintf("%d年%d月", result.TargetYear, result.TargetMonth)
	if result.Notified {
		msg := fmt.Sprintf("%s: フェーズ%dのリマインダーを送信しました。", target, *result.Phase)
		if result.Stats != nil {
			msg += fmt.Sprintf("\n提出 %d/%d, 未提出 %d", result.Stats.SubmittedCount, result.Stats.TotalCount, result.Stats.UnsubmittedCount)
		}
		return msg
	}

	msg := fmt.Sprintf("%s: 送信なし (%s)", target, result.Reason)
	if result.DaysUntilDeadline != nil {
		msg += fmt.Sprintf("\n締切まで %d日", *result.DaysUntilDeadline)
	}
	if result.SkippedPhase != nil {
		msg += fmt.Sprintf("\nフェーズ%dは手動送信のみです。", *result.SkippedPhase)
	}
	return msg
}

func describeStatus(report *app.StatusReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d年%d月 締切: %s (あと%d日)\n", report.TargetYear, report.TargetMonth, report.Deadline, report.DaysUntilDeadline))
	sb.WriteString(fmt.Sprintf("提出 %d/%d, 未提出 %d\n", report.Stats.SubmittedCount, report.Stats.TotalCount, report.Stats.UnsubmittedCount))

	if !report.GroupConfigured {
		sb.WriteString("通知先グループが未設定です。\n")
	}
	if !report.DeadlineSettings.Enabled {
		sb.WriteString("リマインダーは無効です。\n")
	}
	switch {
	case report.MatchedPhase == nil:
		sb.WriteString("本日送信されるフェーズはありません。\n")
	case report.AutoSend:
		sb.WriteString(fmt.Sprintf("本日フェーズ%dが自動送信されます。\n", *report.MatchedPhase))
	default:
		sb.WriteString(fmt.Sprintf("本日はフェーズ%dの対象日です (手動送信のみ)。\n", *report.MatchedPhase))
	}

	if len(report.Stats.UnsubmittedNames) > 0 {
		sb.WriteString("未提出: ")
		sb.WriteString(strings.Join(report.Stats.UnsubmittedNames, "、"))
	}
	return strings.TrimRight(sb.String(), "\n")
}
