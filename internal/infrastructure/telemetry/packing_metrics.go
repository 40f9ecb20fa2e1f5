package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives a nil meter.
var ErrMeterNil = &MetricsError{Op: "NewPackingMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// Fetch outcomes recorded on packing_upstream_fetch_duration_seconds
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// PackingMetrics records storefront fetch and aggregation metrics.
// A nil *PackingMetrics is valid and records nothing.
type PackingMetrics struct {
	upstreamPages  *Counter
	ordersFetched  *Counter
	upstreamErrors *Counter
	fetchDuration  *Histogram
	summaryItems   *Gauge
}

// NewPackingMetrics registers the packing instruments on meter.
func NewPackingMetrics(meter metric.Meter) (*PackingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		pm  PackingMetrics
		err error
	)

	pm.upstreamPages, err = NewCounter(meter,
		"packing_upstream_pages_total",
		"Order pages fetched from the storefront",
		"{page}",
	)
	if err != nil {
		return nil, err
	}

	pm.ordersFetched, err = NewCounter(meter,
		"packing_orders_fetched_total",
		"Unfulfilled orders fetched from the storefront",
		"{order}",
	)
	if err != nil {
		return nil, err
	}

	pm.upstreamErrors, err = NewCounter(meter,
		"packing_upstream_errors_total",
		"Failed storefront requests by error kind",
		"{error}",
	)
	if err != nil {
		return nil, err
	}

	pm.fetchDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "packing_upstream_fetch_duration_seconds",
		Description: "Time to fetch every page of unfulfilled orders",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	pm.summaryItems, err = NewGauge(meter,
		"packing_summary_items",
		"Entries in the most recently built view",
		"{item}",
	)
	if err != nil {
		return nil, err
	}

	return &pm, nil
}

// RecordUpstreamPage counts one fetched page holding orders orders.
func (m *PackingMetrics) RecordUpstreamPage(ctx context.Context, shopDomain string, orders int) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrShopDomain.String(shopDomain)}
	m.upstreamPages.Inc(ctx, attrs...)
	m.ordersFetched.Add(ctx, int64(orders), attrs...)
}

// RecordUpstreamError counts a failed storefront request.
func (m *PackingMetrics) RecordUpstreamError(ctx context.Context, shopDomain, kind string) {
	if m == nil {
		return
	}
	m.upstreamErrors.Inc(ctx, AttrShopDomain.String(shopDomain), AttrErrorKind.String(kind))
}

// RecordFetch records the duration of a complete multi-page fetch.
func (m *PackingMetrics) RecordFetch(ctx context.Context, shopDomain string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.fetchDuration.RecordDuration(ctx, d, AttrShopDomain.String(shopDomain), AttrOutcome.String(outcome))
}

// RecordAggregation records how many entries a view produced.
func (m *PackingMetrics) RecordAggregation(ctx context.Context, view string, entries int) {
	if m == nil {
		return
	}
	m.summaryItems.Record(ctx, int64(entries), AttrView.String(view))
}
