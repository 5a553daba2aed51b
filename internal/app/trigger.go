package app

import "context"

type triggerKey struct{}

// TriggerUnknown is reported for contexts that were never tagged.
const TriggerUnknown = "unknown"

// WithTrigger tags ctx with what started the run (cron, http, telegram, cli) for logs and metrics.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFrom returns the trigger stored by WithTrigger, or TriggerUnknown.
func TriggerFrom(ctx context.Context) string {
	if trigger, ok := ctx.Value(triggerKey{}).(string); ok && trigger != "" {
		return trigger
	}
	return TriggerUnknown
}
