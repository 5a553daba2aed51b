package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/dedup"

	"github.com/joho/godotenv"
)

const (
	PlatformLINE     = "line"
	PlatformTelegram = "telegram"
	PlatformSlack    = "slack"

	// DefaultCronSpecReminder fires daily so every phase day is visited.
	DefaultCronSpecReminder = "0 10 * * *"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string
	TenantID    int64
	Port        string
	LogLevel    string
	Environment string
	Location    *time.Location

	CronSpecReminder    string
	NotificationEnabled bool // false turns every dispatch into a logged no-op (dry run)
	MessagingPlatform   string

	LineChannelAccessToken string
	LineChannelSecret      string
	LiffID                 string
	TelegramToken          string
	AdminTelegramID        int64
	SlackBotToken          string

	DeadlineRounding reminder.Rounding
	AutoPhasePolicy  reminder.AutoPhasePolicy

	DedupWindow  time.Duration
	DedupBackend string
	Redis        RedisConfig

	NotificationConfigPath string
	GroupIDOverride        string // group for TenantID, takes precedence over the notification file
	GroupLogPath           string
	CORSAllowedOrigins     []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.TenantID = 3
	if raw := os.Getenv("TENANT_ID"); raw != "" {
		cfg.TenantID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TENANT_ID: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", "3001")
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Asia/Tokyo"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.CronSpecReminder = getEnv("CRON_SPEC_REMINDER", DefaultCronSpecReminder)
	cfg.NotificationEnabled = os.Getenv("NOTIFICATION_ENABLED") != "false"

	cfg.MessagingPlatform = strings.ToLower(getEnv("MESSAGING_PLATFORM", PlatformLINE))
	switch cfg.MessagingPlatform {
	case PlatformLINE, PlatformTelegram, PlatformSlack:
	default:
		return nil, fmt.Errorf("invalid MESSAGING_PLATFORM %q", cfg.MessagingPlatform)
	}

	cfg.LineChannelAccessToken = os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")
	cfg.LineChannelSecret = os.Getenv("LINE_CHANNEL_SECRET")
	cfg.LiffID = getEnv("LIFF_ID", "2008227932-Rq9rJrJn")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.SlackBotToken = os.Getenv("SLACK_BOT_TOKEN")

	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	if err := cfg.validatePlatformCredentials(); err != nil {
		return nil, err
	}

	cfg.DeadlineRounding, err = reminder.ParseRounding(os.Getenv("DEADLINE_ROUNDING"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEADLINE_ROUNDING: %w", err)
	}

	cfg.AutoPhasePolicy, err = reminder.ParseAutoPhasePolicy(os.Getenv("AUTO_PHASE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_PHASE_POLICY: %w", err)
	}

	cfg.DedupWindow = 60 * time.Second
	if raw := os.Getenv("DEDUP_WINDOW"); raw != "" {
		cfg.DedupWindow, err = time.ParseDuration(raw)
		if err != nil || cfg.DedupWindow <= 0 {
			return nil, fmt.Errorf("invalid DEDUP_WINDOW %q", raw)
		}
	}

	cfg.DedupBackend = strings.ToLower(getEnv("DEDUP_BACKEND", dedup.BackendMemory))
	if cfg.DedupBackend != dedup.BackendMemory && cfg.DedupBackend != dedup.BackendRedis {
		return nil, fmt.Errorf("invalid DEDUP_BACKEND %q", cfg.DedupBackend)
	}

	cfg.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		cfg.Redis.DB, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	cfg.NotificationConfigPath = os.Getenv("NOTIFICATION_CONFIG_PATH")
	cfg.GroupIDOverride = os.Getenv("NOTIFICATION_GROUP_ID")
	cfg.GroupLogPath = getEnv("GROUP_LOG_PATH", "./data/group-ids.db")
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS",
		"https://shift-scheduler-ai-liff.vercel.app,https://*.vercel.app,http://localhost:5173,http://127.0.0.1:5173"))

	return cfg, nil
}

func (c *AppConfig) validatePlatformCredentials() error {
	switch c.MessagingPlatform {
	case PlatformLINE:
		if c.LineChannelAccessToken == "" && c.NotificationEnabled {
			return fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN is not set")
		}
	case PlatformTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_TOKEN is not set")
		}
	case PlatformSlack:
		if c.SlackBotToken == "" && c.NotificationEnabled {
			return fmt.Errorf("SLACK_BOT_TOKEN is not set")
		}
	}
	return nil
}

// IsProduction reports whether logs should be machine readable.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "staging"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
