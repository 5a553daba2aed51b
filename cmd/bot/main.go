package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/messaging"
	"shift_reminder_bot/internal/infra/config"
	idb "shift_reminder_bot/internal/infra/database"
	"shift_reminder_bot/internal/infra/dedup"
	"shift_reminder_bot/internal/infra/grouplog"
	"shift_reminder_bot/internal/infra/httpapi"
	"shift_reminder_bot/internal/infra/line"
	"shift_reminder_bot/internal/infra/logger"
	imessaging "shift_reminder_bot/internal/infra/messaging"
	"shift_reminder_bot/internal/infra/metrics"
	"shift_reminder_bot/internal/infra/scheduler"
	"shift_reminder_bot/internal/infra/slack"
	"shift_reminder_bot/internal/infra/telegram"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	fmt.Println("Shift Reminder Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.For("main")

	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"tenant_id":   cfg.TenantID,
		"platform":    cfg.MessagingPlatform,
		"timezone":    cfg.Location.String(),
		"dry_run":     !cfg.NotificationEnabled,
	}).Info("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully")

	settingsRepo := idb.NewPostgresSettingsRepository(db)
	staffRepo := idb.NewPostgresStaffRepository(db)

	notificationCfg, err := config.LoadNotificationConfig(cfg.NotificationConfigPath)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not load notification config")
	}
	notificationCfg.OverrideGroup(cfg.TenantID, cfg.GroupIDOverride)
	if _, ok := notificationCfg.GroupID(cfg.TenantID); !ok {
		mainLogger.WithField("tenant_id", cfg.TenantID).Warn("No group configured for the tenant, reminders will be skipped")
	}

	catalog, err := notificationCfg.Catalog()
	if err != nil {
		mainLogger.WithError(err).Fatal("Invalid reminder phases")
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		mainLogger.WithError(err).Warn("Could not create metrics instruments, metrics disabled")
		reminderMetrics = nil
	}

	var bot *telebot.Bot
	if cfg.TelegramToken != "" {
		bot, err = telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				entry := logger.For("telebot").WithError(err)
				if c != nil && c.Sender() != nil && c.Chat() != nil {
					entry = entry.WithFields(logrus.Fields{"sender_id": c.Sender().ID, "chat_id": c.Chat().ID})
				}
				entry.Error("Telegram handler error")
			},
		})
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not create Telegram bot")
		}
	}

	sender, err := newSender(cfg, bot)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create messaging client")
	}
	dispatcher := imessaging.NewDispatcher(sender, cfg.NotificationEnabled, reminderMetrics, logger.For("dispatcher"))

	var redisClient *redis.Client
	if cfg.DedupBackend == dedup.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	guard, err := dedup.NewGuard(dedup.Options{
		Backend: cfg.DedupBackend,
		Window:  cfg.DedupWindow,
		Redis:   redisClient,
		Logger:  logger.For("dedup"),
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create dedup guard")
	}
	if memGuard, ok := guard.(*dedup.MemoryGuard); ok {
		go memGuard.Run(ctx)
	}

	now := func() time.Time { return time.Now().In(cfg.Location) }
	submissionURL := line.LIFF{ID: cfg.LiffID}.SubmissionURL()

	settingsProvider := app.NewSettingsProvider(settingsRepo, logger.For("settings"))
	submissionService := app.NewSubmissionService(staffRepo, logger.For("submissions"))
	reminderService := app.NewReminderService(
		catalog,
		notificationCfg,
		dispatcher,
		settingsProvider,
		submissionService,
		app.ReminderOptions{
			TenantID:      cfg.TenantID,
			Rounding:      cfg.DeadlineRounding,
			AutoPolicy:    cfg.AutoPhasePolicy,
			SubmissionURL: submissionURL,
			Now:           now,
		},
		reminderMetrics,
		logger.For("reminder"),
	)
	approvalService := app.NewApprovalService(
		app.ApprovalTemplates{
			FirstPlanApproved:  notificationCfg.ApprovalMessages.FirstPlanApproved,
			SecondPlanApproved: notificationCfg.ApprovalMessages.SecondPlanApproved,
		},
		notificationCfg,
		dispatcher,
		settingsProvider,
		guard,
		cfg.DedupBackend,
		submissionURL,
		reminderMetrics,
		logger.For("approval"),
	)
	mainLogger.Info("Services initialized")

	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		cfg.CronSpecReminder,
		cfg.Location,
		reminderMetrics,
		logger.For("scheduler"),
	)
	if err := reminderScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start reminder scheduler")
	}

	var groupLog *grouplog.Store
	if cfg.GroupLogPath != "" {
		groupLog, err = grouplog.Open(cfg.GroupLogPath)
		if err != nil {
			mainLogger.WithError(err).Warn("Could not open group log, join and leave events will only be logged")
			groupLog = nil
		} else {
			defer groupLog.Close()
		}
	}

	var webhookParser httpapi.WebhookParser
	if cfg.LineChannelSecret != "" {
		webhookParser = line.NewWebhookParser(cfg.LineChannelSecret)
	}

	// typed nil interfaces would bypass the nil checks in the handlers
	var handlerGroupLog httpapi.GroupLog
	var adminGroupLog telegram.GroupHistory
	if groupLog != nil {
		handlerGroupLog = groupLog
		adminGroupLog = groupLog
	}

	handler := httpapi.NewHandler(reminderService, reminderScheduler, approvalService, webhookParser, handlerGroupLog, logger.For("http"))
	server := httpapi.NewServer(":"+cfg.Port, httpapi.NewRouter(handler, cfg.CORSAllowedOrigins))

	go func() {
		mainLogger.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	if bot != nil {
		telegram.RegisterBotCommands(bot, cfg.AdminTelegramID, catalog, logger.For("telegram"))
		telegram.NewAdminHandlers(
			ctx,
			reminderService,
			submissionService,
			adminGroupLog,
			cfg.AdminTelegramID,
			now,
			logger.For("telegram"),
		).Register(bot)
		mainLogger.Info("Telegram command handlers registered")

		go bot.Start()
	}

	mainLogger.Info("Application setup complete")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Warn("HTTP server did not shut down cleanly")
	}
	reminderScheduler.Stop()
	if bot != nil {
		bot.Stop()
	}
	cancel()

	mainLogger.Info("Application shut down gracefully")
}

func newSender(cfg *config.AppConfig, bot *telebot.Bot) (messaging.Sender, error) {
	switch cfg.MessagingPlatform {
	case config.PlatformTelegram:
		if bot == nil {
			return nil, fmt.Errorf("telegram platform requires TELEGRAM_TOKEN")
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
