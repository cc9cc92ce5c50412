package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack-dev/storefront/internal/orders"
)

type fakeOrderSource struct {
	list []orders.Order
	err  error
}

func (f *fakeOrderSource) ScanBetween(ctx context.Context, from, till time.Time) ([]orders.Order, error) {
	return f.list, f.err
}

func day(d int, hour int) time.Time {
	return time.Date(2026, 8, d, hour, 0, 0, 0, time.UTC)
}

func TestAggregate_FoldsOrdersIntoDayBuckets(t *testing.T) {
	src := &fakeOrderSource{list: []orders.Order{
		{OrderID: "o1", OrderStatus: orders.StatusDelivered, GrandTotal: 100, CartDiscountAmount: 10, CreatedAt: day(1, 9)},
		{OrderID: "o2", OrderStatus: orders.StatusPending, GrandTotal: 300, CartDiscountAmount: 0, CreatedAt: day(1, 18)},
		{OrderID: "o3", OrderStatus: orders.StatusShipped, GrandTotal: 200, CartDiscountAmount: 50, CreatedAt: day(3, 12)},
	}}

	report, err := Aggregate(context.Background(), src, day(1, 0), day(5, 0))
	require.NoError(t, err)

	assert.Equal(t, 3, report.OrderCount)
	assert.Equal(t, 600.0, report.Revenue)
	assert.Equal(t, 60.0, report.Discount)
	assert.Equal(t, 200.0, report.AvgOrderValue)

	require.Len(t, report.Days, 2)
	assert.Equal(t, "2026-08-01", report.Days[0].Date)
	assert.Equal(t, 2, report.Days[0].OrderCount)
	assert.Equal(t, 400.0, report.Days[0].Revenue)
	assert.Equal(t, "2026-08-03", report.Days[1].Date)
	assert.Equal(t, 200.0, report.Days[1].Revenue)
}

func TestAggregate_ExcludesCancelledAndRefunded(t *testing.T) {
	src := &fakeOrderSource{list: []orders.Order{
		{OrderID: "o1", OrderStatus: orders.StatusCancelled, GrandTotal: 500, CreatedAt: day(1, 9)},
		{OrderID: "o2", OrderStatus: orders.StatusRefunded, GrandTotal: 400, CreatedAt: day(1, 10)},
		{OrderID: "o3", OrderStatus: orders.StatusDelivered, GrandTotal: 100, CreatedAt: day(2, 9)},
	}}

	report, err := Aggregate(context.Background(), src, day(1, 0), day(5, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 100.0, report.Revenue)
	require.Len(t, report.Days, 1)
}

func TestAggregate_EmptyWindow(t *testing.T) {
	report, err := Aggregate(context.Background(), &fakeOrderSource{}, day(1, 0), day(2, 0))
	require.NoError(t, err)

	assert.Equal(t, 0, report.OrderCount)
	assert.Equal(t, 0.0, report.AvgOrderValue)
	assert.Empty(t, report.Days)
}

func TestAggregate_SourceErrorPropagates(t *testing.T) {
	_, err := Aggregate(context.Background(), &fakeOrderSource{err: errors.New("scan throttled")}, day(1, 0), day(2, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load orders for aggregation")
}
