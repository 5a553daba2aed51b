// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"

	"shift_reminder_bot/internal/domain/reminder"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands binds /start, /help and the fallback for unknown buttons.
func RegisterBotCommands(
	b *telebot.Bot,
	adminTelegramID int64,
	catalog *reminder.Catalog,
	baseLogger *logrus.Entry,
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		return onStart(c, adminTelegramID, startHelpLogger)
	})

	b.Handle("/help", func(c telebot.Context) error {
		return onHelp(c, adminTelegramID, catalog, startHelpLogger)
	})

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		startHelpLogger.WithField("data", c.Callback().Data).Warn("Unhandled callback")
		return c.Respond(&telebot.CallbackResponse{Text: "不明な操作です。"})
	})
}

func onStart(c telebot.Context, adminTelegramID int64, logger *logrus.Entry) error {
	senderID := c.Sender().ID
	logCtx := logger.WithField("command", "/start").WithField("sender_id", senderID)
	logCtx.Info("Processing /start command")

	if senderID == adminTelegramID {
		logCtx.Info("User identified as Admin")
		return c.Send(fmt.Sprintf("こんにちは、%sさん。シフト提出リマインダーの管理ができます。/help でコマンド一覧を表示します。", c.Sender().FirstName))
	}

	logCtx.Info("User is unknown")
	return c.Send("こんにちは。このボットはシフト提出のリマインダーを送信します。操作は管理者のみ可能です。")
}

func onHelp(c telebot.Context, adminTelegramID int64, catalog *reminder.Catalog, logger *logrus.Entry) error {
	senderID := c.Sender().ID
	logCtx := logger.WithField("command", "/help").WithField("sender_id", senderID)
	logCtx.Info("Processing /help command")

	if senderID != adminTelegramID {
		return c.Send("利用できるコマンドはありません。")
	}

	var helpText strings.Builder
	helpText.WriteString("管理者コマンド:\n\n")
	helpText.WriteString("`/status [年 月]`\n - 提出状況と本日のフェーズを表示 (省略時は来月)\n\n")
	helpText.WriteString("`/remind 年 月`\n - 日付に応じたリマインダーを送信\n\n")
	helpText.WriteString("`/remind_phase 年 月 フェーズ`\n - 指定フェーズを強制送信\n\n")
	helpText.WriteString("`/remind_auto`\n - 来月分の自動リマインダーを今すぐ実行\n\n")
	helpText.WriteString("`/remind_personal 年 月 フェーズ`\n - 未提出者に個別送信\n\n")
	helpText.WriteString("`/staff`\n - 対象スタッフ一覧\n\n")
	helpText.WriteString("`/groups`\n - 参加・退出したグループの履歴\n\n")

	if catalog != nil {
		helpText.WriteString("フェーズ:\n")
		for _, p := range catalog.Phases() {
			helpText.WriteString(fmt.Sprintf("%d: 締切%d日前 (%s)\n", p.Number, p.DaysBefore, p.Type))
		}
	}
	return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}
