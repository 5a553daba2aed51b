// Command shiftreminder runs the reminder decision once and exits.
//
//	shiftreminder [year] [month]
//
// Without arguments it targets next month in the configured time zone.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/messaging"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/config"
	idb "shift_reminder_bot/internal/infra/database"
	"shift_reminder_bot/internal/infra/line"
	"shift_reminder_bot/internal/infra/logger"
	imessaging "shift_reminder_bot/internal/infra/messaging"
	"shift_reminder_bot/internal/infra/metrics"
	"shift_reminder_bot/internal/infra/slack"
	"shift_reminder_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const runTimeout = 2 * time.Minute

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		return 1
	}
	logger.Init(cfg)
	log := logger.For("shiftreminder")

	now := func() time.Time { return time.Now().In(cfg.Location) }
	year, month, err := parseArgs(args, now())
	if err != nil {
		log.WithError(err).Error("Invalid arguments, usage: shiftreminder [year] [month]")
		return 1
	}

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Error("Could not connect to database")
		return 1
	}
	defer db.Close()

	notificationCfg, err := config.LoadNotificationConfig(cfg.NotificationConfigPath)
	if err != nil {
		log.WithError(err).Error("Could not load notification config")
		return 1
	}
	notificationCfg.OverrideGroup(cfg.TenantID, cfg.GroupIDOverride)

	catalog, err := notificationCfg.Catalog()
	if err != nil {
		log.WithError(err).Error("Invalid reminder phases")
		return 1
	}

	sender, err := newSender(cfg)
	if err != nil {
		log.WithError(err).Error("Could not create messaging client")
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		log.WithError(err).Warn("Could not create metrics instruments, metrics disabled")
		reminderMetrics = nil
	}

	svc := app.NewReminderService(
		catalog,
		notificationCfg,
		imessaging.NewDispatcher(sender, cfg.NotificationEnabled, reminderMetrics, logger.For("dispatcher")),
		app.NewSettingsProvider(idb.NewPostgresSettingsRepository(db), logger.For("settings")),
		app.NewSubmissionService(idb.NewPostgresStaffRepository(db), logger.For("submissions")),
		app.ReminderOptions{
			TenantID:      cfg.TenantID,
			Rounding:      cfg.DeadlineRounding,
			AutoPolicy:    cfg.AutoPhasePolicy,
			SubmissionURL: line.LIFF{ID: cfg.LiffID}.SubmissionURL(),
			Now:           now,
		},
		reminderMetrics,
		logger.For("reminder"),
	)

	ctx, cancel := context.WithTimeout(app.WithTrigger(context.Background(), metrics.TriggerCLI), runTimeout)
	defer cancel()

	result, err := svc.CheckAndSend(ctx, cfg.TenantID, year, month)
	if err != nil {
		log.WithError(err).Error("Reminder run failed")
		return 1
	}

	log.WithFields(logrus.Fields{
		"target":   fmt.Sprintf("%d-%02d", year, month),
		"notified": result.Notified,
		"outcome":  result.Outcome(),
	}).Info("Reminder run finished")
	return 0
}

// parseArgs reads [year] [month]; both default to next month.
func parseArgs(args []string, now time.Time) (int, int, error) {
	year, month := reminder.NextTargetMonth(now)
	if len(args) > 2 {
		return 0, 0, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}

	var err error
	if len(args) >= 1 {
		if year, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", args[0])
		}
	}
	if len(args) == 2 {
		if month, err = strconv.Atoi(args[1]); err != nil || month < 1 || month > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", args[1])
		}
	}
	return year, month, nil
}

func newSender(cfg *config.AppConfig) (messaging.Sender, error) {
	switch cfg.MessagingPlatform {
	case config.PlatformTelegram:
		bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken, Offline: true})
		if err != nil {
			return nil, err
		}
		return telegram.NewTelebotAdapter(bot), nil
	case config.PlatformSlack:
		return slack.NewClient(cfg.SlackBotToken), nil
	default:
		client, err := line.NewClient(cfg.LineChannelAccessToken)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
