package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "shift_reminder.service"
)

// Triggers of a reminder run.
const (
	TriggerCron     = "cron"
	TriggerHTTP     = "http"
	TriggerTelegram = "telegram"
	TriggerCLI      = "cli"
)

type ReminderMetrics struct {
	runsTotal      metric.Int64Counter
	runDuration    metric.Float64Histogram
	dedupDecisions metric.Int64Counter
	dispatches     metric.Int64Counter
}

// NewReminderMetrics registers the instruments on the global meter provider.
// Without an installed provider every instrument is a no-op.
func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	runsTotal, err := meter.Int64Counter(
		"reminder_runs_total",
		metric.WithDescription("Total number of reminder runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"reminder_run_duration_seconds",
		metric.WithDescription("Duration of a reminder run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	dedupDecisions, err := meter.Int64Counter(
		"notification_dedup_decisions_total",
		metric.WithDescription("Dedup guard decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	dispatches, err := meter.Int64Counter(
		"notification_dispatch_total",
		metric.WithDescription("Messages handed to the chat platform"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		runsTotal:      runsTotal,
		runDuration:    runDuration,
		dedupDecisions: dedupDecisions,
		dispatches:     dispatches,
	}, nil
}

// RecordRun records a finished reminder run. phase is 0 when no phase was resolved.
func (m *ReminderMetrics) RecordRun(ctx context.Context, trigger, outcome string, phase int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
		attribute.String("phase", strconv.Itoa(phase)),
	)
	m.runsTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *ReminderMetrics) RecordDedupDecision(ctx context.Context, backend string, suppressed bool) {
	if m == nil {
		return
	}
	m.dedupDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.Bool("suppressed", suppressed),
	))
}

func (m *ReminderMetrics) RecordDispatch(ctx context.Context, target string, success bool) {
	if m == nil {
		return
	}
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target", target),
		attribute.Bool("success", success),
	))
}
