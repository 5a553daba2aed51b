package database

import (
	"context"
	"database/sql"
	"fmt"

	"shift_reminder_bot/internal/domain/staff"
)

// Joins shared by every hourly staff query: an active staff row, an active chat account
// and an employment type paid by the hour.
const hourlyStaffJoins = `
    FROM hr.staff s
    JOIN hr.staff_line_accounts sla ON s.staff_id = sla.staff_id AND s.tenant_id = sla.tenant_id
    JOIN core.employment_types et ON s.employment_type = et.employment_code AND et.tenant_id = s.tenant_id`

const hourlyStaffFilter = `
    WHERE s.tenant_id = $1
      AND s.is_active = true
      AND sla.is_active = true
      AND et.payment_type = 'HOURLY'`

type PostgresStaffRepository struct {
	db *sql.DB
}

func NewPostgresStaffRepository(db *sql.DB) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

func (r *PostgresStaffRepository) CountActiveHourly(ctx context.Context, tenantID int64) (int, error) {
	query := `SELECT COUNT(*)` + hourlyStaffJoins + hourlyStaffFilter

	var count int
	if err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting hourly staff: %w", err)
	}
	return count, nil
}

func (r *PostgresStaffRepository) CountSubmittedHourly(ctx context.Context, tenantID int64, year, month int) (int, error) {
	query := `SELECT COUNT(DISTINCT s.staff_id)` + hourlyStaffJoins + `
    JOIN ops.staff_monthly_submissions sms ON s.staff_id = sms.staff_id AND s.tenant_id = sms.tenant_id` +
		hourlyStaffFilter + `
      AND sms.year = $2
      AND sms.month = $3`

	var count int
	if err := r.db.QueryRowContext(ctx, query, tenantID, year, month).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting submitted hourly staff: %w", err)
	}
	return count, nil
}

func (r *PostgresStaffRepository) ListUnsubmittedHourly(ctx context.Context, tenantID int64, year, month int) ([]*staff.Staff, error) {
	query := `SELECT sla.line_user_id, s.staff_id, s.name, s.employment_type, st.store_name` + hourlyStaffJoins + `
    JOIN core.stores st ON s.store_id = st.store_id` + hourlyStaffFilter + `
      AND NOT EXISTS (
        SELECT 1 FROM ops.staff_monthly_submissions sms
        WHERE sms.staff_id = s.staff_id
          AND sms.tenant_id = s.tenant_id
          AND sms.year = $2
          AND sms.month = $3
      )
    ORDER BY s.name`

	rows, err := r.db.QueryContext(ctx, query, tenantID, year, month)
	if err != nil {
		return nil, fmt.Errorf("error listing unsubmitted hourly staff: %w", err)
	}
	return scanStaffRows(rows)
}

func (r *PostgresStaffRepository) ListActiveHourly(ctx context.Context, tenantID int64) ([]*staff.Staff, error) {
	query := `SELECT sla.line_user_id, s.staff_id, s.name, s.employment_type, st.store_name` + hourlyStaffJoins + `
    JOIN core.stores st ON s.store_id = st.store_id` + hourlyStaffFilter + `
    ORDER BY s.name`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error listing hourly staff: %w", err)
	}
	return scanStaffRows(rows)
}

func scanStaffRows(rows *sql.Rows) ([]*staff.Staff, error) {
	defer rows.Close()

	var members []*staff.Staff
	for rows.Next() {
		m := &staff.Staff{}
		if err := rows.Scan(&m.LineUserID, &m.StaffID, &m.Name, &m.EmploymentType, &m.StoreName); err != nil {
			return nil, fmt.Errorf("error scanning staff row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff rows: %w", err)
	}
	return members, nil
}
