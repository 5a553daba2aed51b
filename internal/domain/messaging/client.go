package messaging

import "context"

//go:generate mockgen -source=client.go -destination=mock_client.go -package=messaging

// Sender pushes a text message through one chat platform.
// This keeps the application logic independent of the specific bot library.
type Sender interface {
	PushText(ctx context.Context, to string, text string) error
}

// Dispatcher delivers notifications. It reports success instead of returning errors:
// a failed send is an outcome, not a failure of the caller.
type Dispatcher interface {
	SendToGroup(ctx context.Context, groupID string, text string) bool
	SendToUser(ctx context.Context, userID string, text string) bool
}

// GroupDirectory maps a tenant to the chat group its notifications go to.
type GroupDirectory interface {
	GroupID(tenantID int64) (string, bool)
}
