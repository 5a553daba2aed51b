// internal/domain/reminder/repository.go
package reminder

import "context"

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=reminder

// SettingsRepository reads deadline settings per tenant and employment category.
// Implementations return (nil, nil) when no row exists.
type SettingsRepository interface {
	GetDeadlineSettings(ctx context.Context, tenantID int64, employmentType string) (*DeadlineSettings, error)
}
