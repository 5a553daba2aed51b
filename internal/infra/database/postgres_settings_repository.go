package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shift_reminder_bot/internal/domain/reminder"
)

type PostgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// GetDeadlineSettings returns (nil, nil) when the tenant has no row for the employment type.
func (r *PostgresSettingsRepository) GetDeadlineSettings(ctx context.Context, tenantID int64, employmentType string) (*reminder.DeadlineSettings, error) {
	query := `SELECT deadline_day, deadline_time, is_enabled
               FROM core.shift_deadline_settings
               WHERE tenant_id = $1 AND employment_type = $2`

	var (
		day          int
		deadlineTime sql.NullString
		enabled      bool
	)
	err := r.db.QueryRowContext(ctx, query, tenantID, employmentType).Scan(&day, &deadlineTime, &enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting deadline settings for tenant %d: %w", tenantID, err)
	}

	return &reminder.DeadlineSettings{
		Day:     day,
		Time:    reminder.NormalizeDeadlineTime(deadlineTime.String), // TIME columns come back as HH:MM:SS
		Enabled: enabled,
	}, nil
}
