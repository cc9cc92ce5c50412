// Package metrics publishes checkout metrics to CloudWatch. Publishing is
// best-effort: a failed put is logged and never surfaces to the caller.
package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/aws"
)

// Recorder wraps a CloudWatch client and a metric namespace.
type Recorder struct {
	client    aws.CloudWatchAPI
	namespace string
	nowFunc   func() time.Time
}

// NewRecorder returns a Recorder bound to a namespace.
func NewRecorder(client aws.CloudWatchAPI, namespace string) *Recorder {
	return &Recorder{
		client:    client,
		namespace: namespace,
		nowFunc:   time.Now,
	}
}

// OrderCreated records one created order and its grand total.
func (r *Recorder) OrderCreated(ctx context.Context, grandTotal float64) {
	r.put(ctx,
		datum("OrdersCreated", 1, cwtypes.StandardUnitCount, nil, r.nowFunc()),
		datum("OrderValue", grandTotal, cwtypes.StandardUnitNone, nil, r.nowFunc()),
	)
}

// CheckoutFailed records one failed checkout, dimensioned by error kind.
func (r *Recorder) CheckoutFailed(ctx context.Context, kind string) {
	dims := []cwtypes.Dimension{{Name: awsString("Kind"), Value: &kind}}
	r.put(ctx, datum("CheckoutFailed", 1, cwtypes.StandardUnitCount, dims, r.nowFunc()))
}

func (r *Recorder) put(ctx context.Context, data ...cwtypes.MetricDatum) {
	if r == nil || r.client == nil {
		return
	}
	_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &r.namespace,
		MetricData: data,
	})
	if err != nil {
		log.WithError(err).Warn("cloudwatch put metric data failed")
	}
}

func datum(name string, value float64, unit cwtypes.StandardUnit, dims []cwtypes.Dimension, ts time.Time) cwtypes.MetricDatum {
	return cwtypes.MetricDatum{
		MetricName: &name,
		Value:      &value,
		Unit:       unit,
		Dimensions: dims,
		Timestamp:  &ts,
	}
}

func awsString(s string) *string { return &s }
