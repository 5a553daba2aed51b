package reminder

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Rounding selects how the distance to a deadline is turned into whole days.
// The choice moves phase boundaries by up to one day, so it is configuration, not a constant.
type Rounding string

const (
	// RoundNearestMidnight compares the deadline date with today's date, both at local midnight.
	// The deadline time of day is ignored.
	RoundNearestMidnight Rounding = "nearest"
	// CeilDeadlineTime compares the deadline at its literal HH:MM with the current instant
	// and rounds the remainder up to whole days.
	CeilDeadlineTime Rounding = "ceil"
)

// ParseRounding maps a configuration value onto a Rounding. Empty means RoundNearestMidnight.
func ParseRounding(value string) (Rounding, error) {
	switch Rounding(strings.ToLower(strings.TrimSpace(value))) {
	case "", RoundNearestMidnight:
		return RoundNearestMidnight, nil
	case CeilDeadlineTime:
		return CeilDeadlineTime, nil
	default:
		return "", fmt.Errorf("unknown deadline rounding %q (expected %q or %q)", value, RoundNearestMidnight, CeilDeadlineTime)
	}
}

// DeadlineMonth returns the month whose deadlineDay closes submissions for the target month:
// the previous calendar month, December of the previous year for January.
func DeadlineMonth(year, month int) (int, time.Month) {
	if month == 1 {
		return year - 1, time.December
	}
	return year, time.Month(month - 1)
}

// DaysUntilDeadline returns the signed number of days between now and the submission deadline
// for the target year/month. Negative values mean the deadline has passed.
//
// The calendar is evaluated in now's location. deadlineDay is not validated: an overflowing day
// (31 in a 30-day month) is normalised into the following month by time.Date.
func DaysUntilDeadline(now time.Time, year, month, deadlineDay int, deadlineTime string, rule Rounding) int {
	deadlineYear, deadlineMonth := DeadlineMonth(year, month)

	if rule == CeilDeadlineTime {
		hour, minute, err := ParseDeadlineTime(deadlineTime)
		if err != nil {
			hour, minute, _ = ParseDeadlineTime(DefaultDeadlineTime)
		}
		deadline := time.Date(deadlineYear, deadlineMonth, deadlineDay, hour, minute, 0, 0, now.Location())
		return int(math.Ceil(deadline.Sub(now).Hours() / 24))
	}

	// Civil dates in UTC so a DST transition between today and the deadline cannot skew the count.
	deadline := time.Date(deadlineYear, deadlineMonth, deadlineDay, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(deadline.Sub(today).Hours() / 24)
}

// DeadlineString renders the deadline shown in messages, e.g. "2月10日 23:59".
// The time part is omitted when deadlineTime is empty.
func DeadlineString(month, deadlineDay int, deadlineTime string) string {
	deadlineMonth := month - 1
	if deadlineMonth == 0 {
		deadlineMonth = 12
	}

	dateStr := fmt.Sprintf("%d月%d日", deadlineMonth, deadlineDay)
	if deadlineTime != "" {
		return dateStr + " " + deadlineTime
	}
	return dateStr
}

// NextTargetMonth returns the calendar month after now: shifts are always collected for next month.
func NextTargetMonth(now time.Time) (int, int) {
	year := now.Year()
	month := int(now.Month()) + 1
	if month > 12 {
		month = 1
		year++
	}
	return year, month
}
