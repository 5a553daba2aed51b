package app

import (
	"context"
	"fmt"

	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/domain/staff"

	"github.com/sirupsen/logrus"
)

// SubmissionService reports how many hourly staff submitted their shifts for a target month.
type SubmissionService struct {
	staffRepo staff.Repository
	logger    *logrus.Entry
}

func NewSubmissionService(staffRepo staff.Repository, logger *logrus.Entry) *SubmissionService {
	return &SubmissionService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Stats counts the roster and the submitted staff. Unsubmitted is derived, never negative.
func (s *SubmissionService) Stats(ctx context.Context, tenantID int64, year, month int) (reminder.SubmissionStats, error) {
	total, err := s.staffRepo.CountActiveHourly(ctx, tenantID)
	if err != nil {
		return reminder.SubmissionStats{}, fmt.Errorf("failed to count hourly staff: %w", err)
	}

	submitted, err := s.staffRepo.CountSubmittedHourly(ctx, tenantID, year, month)
	if err != nil {
		return reminder.SubmissionStats{}, fmt.Errorf("failed to count submitted staff: %w", err)
	}

	stats := reminder.NewSubmissionStats(total, submitted)
	s.logger.WithFields(logrus.Fields{
		"tenant_id":         tenantID,
		"target":            fmt.Sprintf("%d-%02d", year, month),
		"total_count":       stats.TotalCount,
		"submitted_count":   stats.SubmittedCount,
		"unsubmitted_count": stats.UnsubmittedCount,
	}).Debug("Submission stats loaded")

	return stats, nil
}

// UnsubmittedNames lists the names of staff without a submission, ordered by name.
func (s *SubmissionService) UnsubmittedNames(ctx context.Context, tenantID int64, year, month int) ([]string, error) {
	members, err := s.UnsubmittedStaff(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names, nil
}

func (s *SubmissionService) UnsubmittedStaff(ctx context.Context, tenantID int64, year, month int) ([]*staff.Staff, error) {
	members, err := s.staffRepo.ListUnsubmittedHourly(ctx, tenantID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsubmitted staff: %w", err)
	}
	return members, nil
}

// ActiveStaff lists every hourly staff member with a chat account.
func (s *SubmissionService) ActiveStaff(ctx context.Context, tenantID int64) ([]*staff.Staff, error) {
	members, err := s.staffRepo.ListActiveHourly(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hourly staff: %w", err)
	}
	return members, nil
}
