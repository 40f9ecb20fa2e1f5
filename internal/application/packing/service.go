package packing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
	"github.com/spicebox/packing-summary/internal/infrastructure/logger"
	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
)

// View names used in spans, metrics and profiling labels
const (
	ViewPackingSummary = "packing_summary"
	ViewOrdersView     = "orders_view"
)

// PackingService builds the packing summary and orders view from the open
// orders of a single store. Each call fetches orders afresh.
type PackingService struct {
	source  fulfillment.OrderSource
	catalog *fulfillment.BundleCatalog
	logger  *zap.Logger
	metrics *telemetry.PackingMetrics
	now     func() time.Time
}

// NewPackingService creates a new PackingService
func NewPackingService(source fulfillment.OrderSource, catalog *fulfillment.BundleCatalog, log *zap.Logger) *PackingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PackingService{
		source:  source,
		catalog: catalog,
		logger:  log,
		now:     time.Now,
	}
}

// SetMetrics sets the recorder for aggregation metrics
func (s *PackingService) SetMetrics(metrics *telemetry.PackingMetrics) {
	s.metrics = metrics
}

// PackingSummary returns per-item totals across all unfulfilled orders
func (s *PackingService) PackingSummary(ctx context.Context) (*PackingSummaryResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "packing", "summary",
		telemetry.WithAttribute(telemetry.SpanAttrPackingView, ViewPackingSummary),
	)
	defer span.End()

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var items []SummaryItem
	telemetry.WithProfilingLabels(ctx, map[string]string{"view": ViewPackingSummary}, func(context.Context) {
		items = BuildPackingSummary(orders, s.catalog)
	})

	s.metrics.RecordAggregation(ctx, ViewPackingSummary, len(items))
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderCount, len(orders),
		telemetry.SpanAttrEntryCount, len(items),
	)
	telemetry.SetOK(span)

	logger.FromContext(ctx, s.logger).Info("Packing summary generated",
		zap.Int("orders", len(orders)),
		zap.Int("items", len(items)),
	)

	return &PackingSummaryResult{
		TotalOrders: len(orders),
		Items:       items,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// OrdersView returns every unfulfilled order prepared for assembly
func (s *PackingService) OrdersView(ctx context.Context) (*OrdersViewResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "packing", "orders_view",
		telemetry.WithAttribute(telemetry.SpanAttrPackingView, ViewOrdersView),
	)
	defer span.End()

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var views []OrderView
	telemetry.WithProfilingLabels(ctx, map[string]string{"view": ViewOrdersView}, func(context.Context) {
		views = BuildOrdersView(orders, s.catalog)
	})

	s.metrics.RecordAggregation(ctx, ViewOrdersView, len(views))
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderCount, len(orders),
		telemetry.SpanAttrEntryCount, len(views),
	)
	telemetry.SetOK(span)

	logger.FromContext(ctx, s.logger).Info("Orders view generated", zap.Int("orders", len(views)))

	return &OrdersViewResult{
		TotalOrders: len(views),
		Orders:      views,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *PackingService) fetchOrders(ctx context.Context) ([]fulfillment.Order, error) {
	if s.source == nil {
		return nil, fulfillment.ErrSourceNotConfigured
	}
	orders, err := s.source.FetchUnfulfilledOrders(ctx)
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("Failed to fetch unfulfilled orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}
