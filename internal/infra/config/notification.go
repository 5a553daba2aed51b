package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"shift_reminder_bot/internal/domain/reminder"

	"gopkg.in/yaml.v3"
)

//go:embed notification.yaml
var defaultNotificationConfig []byte

// NotificationConfig is the notification file: tenant groups, reminder phases and approval templates.
type NotificationConfig struct {
	Groups           map[string]GroupConfig `yaml:"groups"`
	Reminders        []PhaseConfig          `yaml:"reminders"`
	ApprovalMessages ApprovalMessages       `yaml:"approvalMessages"`

	groupOverrides map[int64]string
}

type GroupConfig struct {
	GroupID string `yaml:"groupId"`
}

type PhaseConfig struct {
	Phase      int    `yaml:"phase"`
	DaysBefore int    `yaml:"daysBefore"`
	Type       string `yaml:"type"`
	Message    string `yaml:"message"`
}

type ApprovalMessages struct {
	FirstPlanApproved  string `yaml:"firstPlanApproved"`
	SecondPlanApproved string `yaml:"secondPlanApproved"`
}

// LoadNotificationConfig reads the notification file at path, or the embedded default when path is empty.
func LoadNotificationConfig(path string) (*NotificationConfig, error) {
	data := defaultNotificationConfig
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read notification config %s: %w", path, err)
		}
	}
	return ParseNotificationConfig(data)
}

func ParseNotificationConfig(data []byte) (*NotificationConfig, error) {
	cfg := &NotificationConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse notification config: %w", err)
	}
	if cfg.ApprovalMessages.FirstPlanApproved == "" || cfg.ApprovalMessages.SecondPlanApproved == "" {
		return nil, fmt.Errorf("notification config is missing approval messages")
	}
	if _, err := cfg.Catalog(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Catalog converts the reminder entries into a validated phase catalog.
func (c *NotificationConfig) Catalog() (*reminder.Catalog, error) {
	phases := make([]reminder.Phase, 0, len(c.Reminders))
	for _, r := range c.Reminders {
		phases = append(phases, reminder.Phase{
			Number:     r.Phase,
			DaysBefore: r.DaysBefore,
			Type:       reminder.PhaseType(r.Type),
			Template:   r.Message,
		})
	}

	catalog, err := reminder.NewCatalog(phases)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder phases in notification config: %w", err)
	}
	return catalog, nil
}

// OverrideGroup pins the group of one tenant regardless of the file contents.
func (c *NotificationConfig) OverrideGroup(tenantID int64, groupID string) {
	if groupID == "" {
		return
	}
	if c.groupOverrides == nil {
		c.groupOverrides = make(map[int64]string)
	}
	c.groupOverrides[tenantID] = groupID
}

// GroupID returns the chat group configured for the tenant.
func (c *NotificationConfig) GroupID(tenantID int64) (string, bool) {
	if groupID, ok := c.groupOverrides[tenantID]; ok {
		return groupID, true
	}

	group, ok := c.Groups["tenant_"+strconv.FormatInt(tenantID, 10)]
	if !ok || group.GroupID == "" {
		return "", false
	}
	return group.GroupID, true
}
