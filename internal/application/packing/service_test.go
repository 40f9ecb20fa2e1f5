package packing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
)

// MockOrderSource is a mock implementation of fulfillment.OrderSource
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) FetchUnfulfilledOrders(ctx context.Context) ([]fulfillment.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillment.Order), args.Error(1)
}

var fixedNow = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func newTestService(source fulfillment.OrderSource, logger *zap.Logger) *PackingService {
	svc := NewPackingService(source, fulfillment.DefaultBundleCatalog(), logger)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPackingService_PackingSummary(t *testing.T) {
	source := new(MockOrderSource)
	source.On("FetchUnfulfilledOrders", mock.Anything).Return([]fulfillment.Order{
		testOrder(100, false, lineItem("A", 10, 3)),
		testOrder(101, false, lineItem("B", 20, 10)),
		testOrder(102, true, lineItem("C", 30, 7)),
	}, nil)

	result, err := newTestService(source, nil).PackingSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalOrders)
	assert.Equal(t, fixedNow, result.GeneratedAt)
	require.Len(t, result.Items, 3)
	assert.Equal(t, []string{"B", "C", "A"}, []string{result.Items[0].Title, result.Items[1].Title, result.Items[2].Title})
	source.AssertExpectations(t)
}

func TestPackingService_OrdersView(t *testing.T) {
	source := new(MockOrderSource)
	source.On("FetchUnfulfilledOrders", mock.Anything).Return([]fulfillment.Order{
		testOrder(100, false, lineItem("A", 10, 1)),
		testOrder(105, true, lineItem("A", 10, 2)),
		testOrder(102, true, lineItem("B", 20, 1)),
	}, nil)

	result, err := newTestService(source, nil).OrdersView(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalOrders)
	assert.Equal(t, fixedNow, result.GeneratedAt)
	require.Len(t, result.Orders, 3)
	assert.Equal(t, int64(105), result.Orders[0].OrderNumber)
	assert.Equal(t, int64(102), result.Orders[1].OrderNumber)
	assert.Equal(t, int64(100), result.Orders[2].OrderNumber)
	source.AssertExpectations(t)
}

func TestPackingService_PropagatesSourceError(t *testing.T) {
	upstreamErr := &fulfillment.UpstreamError{
		StatusCode: 401,
		Details:    json.RawMessage(`{"errors":"Invalid API key"}`),
	}

	source := new(MockOrderSource)
	source.On("FetchUnfulfilledOrders", mock.Anything).Return(nil, upstreamErr)

	core, logs := observer.New(zap.ErrorLevel)
	svc := newTestService(source, zap.New(core))

	summary, err := svc.PackingSummary(context.Background())
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, fulfillment.ErrUpstreamRequestFailed)

	view, err := svc.OrdersView(context.Background())
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, upstreamErr))

	assert.Equal(t, 2, logs.FilterMessage("Failed to fetch unfulfilled orders").Len())
}

func TestPackingService_NoSource(t *testing.T) {
	svc := NewPackingService(nil, fulfillment.DefaultBundleCatalog(), nil)

	_, err := svc.PackingSummary(context.Background())
	assert.ErrorIs(t, err, fulfillment.ErrSourceNotConfigured)

	_, err = svc.OrdersView(context.Background())
	assert.ErrorIs(t, err, fulfillment.ErrSourceNotConfigured)
}

func TestPackingService_EmptyStore(t *testing.T) {
	source := new(MockOrderSource)
	source.On("FetchUnfulfilledOrders", mock.Anything).Return([]fulfillment.Order{}, nil)

	svc := newTestService(source, nil)

	summary, err := svc.PackingSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.NotNil(t, summary.Items)

	view, err := svc.OrdersView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalOrders)
	assert.NotNil(t, view.Orders)
}
