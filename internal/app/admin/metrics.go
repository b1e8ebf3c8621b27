package admin

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AdminMetrics defines metrics operations needed by the admin manager.
type AdminMetrics interface {
	// Operation metrics
	IncOperationsLaunched(ctx context.Context, kind string)
	IncOperationsSucceeded(ctx context.Context, kind string)
	IncOperationsFailed(ctx context.Context, kind string)
	IncOperationsCancelled(ctx context.Context, kind string)
	ObserveOperationDuration(ctx context.Context, kind string, duration time.Duration)

	// Worker metrics. AddActiveWorkers moves the active worker gauge by
	// delta; the manager adds on startup and subtracts on shutdown so the
	// gauge returns to zero once Run exits.
	AddActiveWorkers(ctx context.Context, delta int)
}

// adminMetrics implements AdminMetrics.
type adminMetrics struct {
	operationsLaunched  metric.Int64Counter
	operationsSucceeded metric.Int64Counter
	operationsFailed    metric.Int64Counter
	operationsCancelled metric.Int64Counter
	operationDuration   metric.Float64Histogram

	activeWorkers metric.Int64UpDownCounter
}

var _ AdminMetrics = (*adminMetrics)(nil)

const namespace = "admin"

// NewAdminMetrics creates a new admin metrics instance.
func NewAdminMetrics(mp metric.MeterProvider) (*adminMetrics, error) {
	meter := mp.Meter(namespace, metric.WithInstrumentationVersion("v0.1.0"))

	a := new(adminMetrics)
	var err error

	if a.operationsLaunched, err = meter.Int64Counter(
		"operations_launched_total",
		metric.WithDescription("Total number of administrative operations launched"),
	); err != nil {
		return nil, err
	}

	if a.operationsSucceeded, err = meter.Int64Counter(
		"operations_succeeded_total",
		metric.WithDescription("Total number of administrative operations that succeeded"),
	); err != nil {
		return nil, err
	}

	if a.operationsFailed, err = meter.Int64Counter(
		"operations_failed_total",
		metric.WithDescription("Total number of administrative operations that failed or were cancelled"),
	); err != nil {
		return nil, err
	}

	if a.operationsCancelled, err = meter.Int64Counter(
		"operations_cancelled_total",
		metric.WithDescription("Total number of cancel requests accepted for in-flight operations"),
	); err != nil {
		return nil, err
	}

	if a.operationDuration, err = meter.Float64Histogram(
		"operation_duration_seconds",
		metric.WithDescription("Wall time spent executing each administrative operation"),
	); err != nil {
		return nil, err
	}

	if a.activeWorkers, err = meter.Int64UpDownCounter(
		"active_workers",
		metric.WithDescription("Number of workers draining the operation queue"),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func kindAttr(kind string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("kind", kind))
}

func (a *adminMetrics) IncOperationsLaunched(ctx context.Context, kind string) {
	a.operationsLaunched.Add(ctx, 1, kindAttr(kind))
}

func (a *adminMetrics) IncOperationsSucceeded(ctx context.Context, kind string) {
	a.operationsSucceeded.Add(ctx, 1, kindAttr(kind))
}

func (a *adminMetrics) IncOperationsFailed(ctx context.Context, kind string) {
	a.operationsFailed.Add(ctx, 1, kindAttr(kind))
}

func (a *adminMetrics) IncOperationsCancelled(ctx context.Context, kind string) {
	a.operationsCancelled.Add(ctx, 1, kindAttr(kind))
}

func (a *adminMetrics) ObserveOperationDuration(ctx context.Context, kind string, duration time.Duration) {
	a.operationDuration.Record(ctx, duration.Seconds(), kindAttr(kind))
}

func (a *adminMetrics) AddActiveWorkers(ctx context.Context, delta int) {
	a.activeWorkers.Add(ctx, int64(delta))
}
