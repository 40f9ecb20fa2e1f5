package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
)

// maxResponseSize is the maximum allowed response size for one orders page (10MB)
const maxResponseSize = 10 * 1024 * 1024

// ShopifyAdapter reads open, unfulfilled orders from the Shopify Admin REST API
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *telemetry.PackingMetrics
}

// ShopifyOption configures a ShopifyAdapter
type ShopifyOption func(*ShopifyAdapter)

// WithLogger sets the adapter logger
func WithLogger(logger *zap.Logger) ShopifyOption {
	return func(a *ShopifyAdapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics sets the recorder for page and fetch metrics
func WithMetrics(metrics *telemetry.PackingMetrics) ShopifyOption {
	return func(a *ShopifyAdapter) {
		a.metrics = metrics
	}
}

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig, opts ...ShopifyOption) (*ShopifyAdapter, error) {
	if config == nil {
		return nil, fulfillment.ErrSourceNotConfigured
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	a := &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(zap.String("shop_domain", config.ShopDomain))
	return a, nil
}

// ShopDomain returns the store this adapter reads from
func (a *ShopifyAdapter) ShopDomain() string {
	return a.config.ShopDomain
}

// FetchUnfulfilledOrders walks every page of open, unfulfilled orders and
// returns them in upstream order. Pages are requested one at a time; a page
// shorter than PageSize is the last one. Any failed page aborts the whole
// fetch and no partial result is returned.
func (a *ShopifyAdapter) FetchUnfulfilledOrders(ctx context.Context) ([]fulfillment.Order, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "shopify", "fetch_unfulfilled_orders",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrShopDomain, a.config.ShopDomain),
	)
	defer span.End()

	start := time.Now()
	var (
		orders []fulfillment.Order
		cursor string
		pages  int
	)

	for {
		page, err := a.fetchPage(ctx, cursor)
		if err != nil {
			a.metrics.RecordFetch(ctx, a.config.ShopDomain, time.Since(start), err)
			telemetry.RecordError(span, err)
			a.logger.Error("Failed to fetch orders page",
				zap.Int("page", pages+1),
				zap.String("page_info", cursor),
				zap.Error(err),
			)
			return nil, err
		}
		pages++

		for i := range page {
			order := convertShopifyOrder(&page[i])
			a.logger.Debug("Fetched order",
				zap.Int64("order_number", order.OrderNumber),
				zap.String("customer", order.CustomerName()),
				zap.Bool("express", order.IsExpress()),
				zap.Int("line_items", len(order.LineItems)),
			)
			orders = append(orders, order)
		}

		a.metrics.RecordUpstreamPage(ctx, a.config.ShopDomain, len(page))
		telemetry.AddEvent(span, "page_fetched",
			"page", pages,
			"orders", len(page),
			"page_info", cursor,
		)
		a.logger.Debug("Fetched orders page",
			zap.Int("page", pages),
			zap.Int("page_orders", len(page)),
			zap.Int("total_orders", len(orders)),
		)

		if len(page) < a.config.PageSize {
			break
		}
		cursor = strconv.FormatInt(page[len(page)-1].ID, 10)
	}

	elapsed := time.Since(start)
	a.metrics.RecordFetch(ctx, a.config.ShopDomain, elapsed, nil)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPageCount, pages,
		telemetry.SpanAttrOrderCount, len(orders),
	)
	telemetry.SetOK(span)

	a.logger.Info("Fetched unfulfilled orders",
		zap.Int("orders", len(orders)),
		zap.Int("pages", pages),
		zap.Duration("elapsed", elapsed),
	)
	return orders, nil
}

// fetchPage requests one page of orders starting after cursor
func (a *ShopifyAdapter) fetchPage(ctx context.Context, cursor string) ([]ShopifyOrder, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "shopify", "fetch_page",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrPageCursor, cursor),
		telemetry.WithAttribute(telemetry.SpanAttrPageSize, a.config.PageSize),
	)
	defer span.End()

	params := url.Values{}
	params.Set("status", "open")
	params.Set("fulfillment_status", "unfulfilled")
	params.Set("limit", strconv.Itoa(a.config.PageSize))
	if cursor != "" {
		params.Set("page_info", cursor)
	}

	body, err := a.doRequest(ctx, params)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var resp ShopifyOrdersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		a.metrics.RecordUpstreamError(ctx, a.config.ShopDomain, "invalid_response")
		err = fmt.Errorf("%w: failed to parse response: %v", fulfillment.ErrUpstreamInvalidResponse, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !resp.IsSuccess() {
		var err error
		if len(resp.Errors) > 0 {
			a.metrics.RecordUpstreamError(ctx, a.config.ShopDomain, "request_failed")
			err = &fulfillment.UpstreamError{
				StatusCode: http.StatusOK,
				Message:    "Shopify returned errors",
				Details:    resp.Errors,
			}
		} else {
			a.metrics.RecordUpstreamError(ctx, a.config.ShopDomain, "invalid_response")
			err = fmt.Errorf("%w: response has no orders", fulfillment.ErrUpstreamInvalidResponse)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrOrderCount, len(*resp.Orders))
	return *resp.Orders, nil
}

// doRequest performs a GET against the orders endpoint
func (a *ShopifyAdapter) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := a.config.OrdersURL() + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set(shopifyAccessTokenHead, a.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.metrics.RecordUpstreamError(ctx, a.config.ShopDomain, "unavailable")
		return nil, fmt.Errorf("%w: %v", fulfillment.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		a.metrics.RecordUpstreamError(ctx, a.config.ShopDomain, "unavailable")
		return nil, fmt.Errorf("%w: failed to read response: %v", fulfillment.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		a.metrics.RecordUpstreamError(ctx, a.config.ShopDomain, "request_failed")
		return nil, newUpstreamError(resp.StatusCode, body)
	}

	return body, nil
}

// newUpstreamError keeps a JSON error body as the fault details; other
// bodies (HTML error pages, empty bodies) are dropped.
func newUpstreamError(status int, body []byte) *fulfillment.UpstreamError {
	upstreamErr := &fulfillment.UpstreamError{StatusCode: status}
	if len(body) > 0 && json.Valid(body) {
		upstreamErr.Details = json.RawMessage(body)
	}
	return upstreamErr
}

// convertShopifyOrder maps the wire representation to the domain order
func convertShopifyOrder(so *ShopifyOrder) fulfillment.Order {
	order := fulfillment.Order{
		ID:            so.ID,
		OrderNumber:   so.OrderNumber,
		Name:          so.Name,
		CreatedAt:     so.CreatedAt,
		ShippingLines: make([]fulfillment.ShippingLine, 0, len(so.ShippingLines)),
		LineItems:     make([]fulfillment.LineItem, 0, len(so.LineItems)),
	}

	if so.Customer != nil {
		order.Customer = &fulfillment.Customer{
			FirstName: derefString(so.Customer.FirstName),
			LastName:  derefString(so.Customer.LastName),
		}
	}

	for _, sl := range so.ShippingLines {
		order.ShippingLines = append(order.ShippingLines, fulfillment.ShippingLine{
			Title: sl.Title,
			Code:  sl.Code,
		})
	}

	for _, li := range so.LineItems {
		item := fulfillment.LineItem{
			Name:         li.Name,
			Title:        li.Title,
			VariantTitle: derefString(li.VariantTitle),
			Quantity:     li.Quantity,
			ProductID:    derefInt64(li.ProductID),
			VariantID:    derefInt64(li.VariantID),
		}
		if li.FulfillableQuantity != nil {
			item.FulfillableQuantity = *li.FulfillableQuantity
		}
		if li.Price != nil {
			item.Price = *li.Price
		}
		order.LineItems = append(order.LineItems, item)
	}

	return order
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

var _ fulfillment.OrderSource = (*ShopifyAdapter)(nil)
