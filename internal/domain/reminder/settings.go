// internal/domain/reminder/settings.go
package reminder

import (
	"fmt"
	"strconv"
	"strings"
)

// EmploymentTypePartTime is the employment category whose deadline settings drive reminders.
const EmploymentTypePartTime = "PART_TIME"

const (
	DefaultDeadlineDay  = 10
	DefaultDeadlineTime = "23:59"
)

// DeadlineSettings is the per tenant × employment category submission deadline.
// Corresponds to a row of core.shift_deadline_settings.
type DeadlineSettings struct {
	Day     int    `json:"deadline_day"`  // 1..31, not validated against the month length
	Time    string `json:"deadline_time"` // "HH:MM"
	Enabled bool   `json:"is_enabled"`
}

// DefaultDeadlineSettings is used when a tenant has no settings row or the lookup fails.
func DefaultDeadlineSettings() DeadlineSettings {
	return DeadlineSettings{
		Day:     DefaultDeadlineDay,
		Time:    DefaultDeadlineTime,
		Enabled: true,
	}
}

// ParseDeadlineTime splits an "HH:MM" string. Seconds ("HH:MM:SS", as returned by a TIME column) are ignored.
func ParseDeadlineTime(value string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, fmt.Errorf("invalid deadline time %q: expected HH:MM", value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in deadline time %q", value)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in deadline time %q", value)
	}

	return hour, minute, nil
}

// NormalizeDeadlineTime trims a TIME column value to "HH:MM", falling back to the default time.
func NormalizeDeadlineTime(value string) string {
	hour, minute, err := ParseDeadlineTime(value)
	if err != nil {
		return DefaultDeadlineTime
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
