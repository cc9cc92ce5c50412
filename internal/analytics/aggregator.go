// Package analytics aggregates committed orders for the admin dashboard.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/shopstack-dev/storefront/internal/orders"
)

// OrderSource yields the orders created inside a time window.
type OrderSource interface {
	ScanBetween(ctx context.Context, from, till time.Time) ([]orders.Order, error)
}

// DayBucket is one day of aggregated sales.
type DayBucket struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
	Discount   float64 `json:"discount"`
}

// Report is the aggregated sales view for a window.
type Report struct {
	From          time.Time   `json:"from"`
	Till          time.Time   `json:"till"`
	OrderCount    int         `json:"order_count"`
	Revenue       float64     `json:"revenue"`
	Discount      float64     `json:"discount"`
	AvgOrderValue float64     `json:"avg_order_value"`
	Days          []DayBucket `json:"days"`
}

// Aggregate folds the window's orders into a report. Cancelled and
// refunded orders are excluded from revenue.
func Aggregate(ctx context.Context, src OrderSource, from, till time.Time) (*Report, error) {
	list, err := src.ScanBetween(ctx, from, till)
	if err != nil {
		return nil, errors.Wrap(err, "load orders for aggregation")
	}

	report := &Report{From: from, Till: till}
	buckets := map[string]*DayBucket{}

	for _, o := range list {
		if o.OrderStatus == orders.StatusCancelled || o.OrderStatus == orders.StatusRefunded {
			continue
		}
		report.OrderCount++
		report.Revenue += o.GrandTotal
		report.Discount += o.CartDiscountAmount

		day := o.CreatedAt.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &DayBucket{Date: day}
			buckets[day] = b
		}
		b.OrderCount++
		b.Revenue += o.GrandTotal
		b.Discount += o.CartDiscountAmount
	}

	if report.OrderCount > 0 {
		report.AvgOrderValue = report.Revenue / float64(report.OrderCount)
	}

	days := make([]DayBucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, *b)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	report.Days = days

	return report, nil
}
