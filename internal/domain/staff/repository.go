package staff

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=staff

// Repository reads the hourly staff roster and their monthly shift submissions.
// Only active staff with an active chat account and an HOURLY employment type are counted.
type Repository interface {
	CountActiveHourly(ctx context.Context, tenantID int64) (int, error)
	CountSubmittedHourly(ctx context.Context, tenantID int64, year, month int) (int, error)
	ListUnsubmittedHourly(ctx context.Context, tenantID int64, year, month int) ([]*Staff, error) // ordered by name
	ListActiveHourly(ctx context.Context, tenantID int64) ([]*Staff, error)
}
