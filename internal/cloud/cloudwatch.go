package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"threatingest/internal/metrics"
)

var _ metrics.Sink = (*MetricSink)(nil)

// CloudWatchPutMetricAPI is the subset of the CloudWatch client used by MetricSink.
type CloudWatchPutMetricAPI interface {
	PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricSink publishes data points as CloudWatch custom metrics.
type MetricSink struct {
	api CloudWatchPutMetricAPI
}

func NewMetricSink(api CloudWatchPutMetricAPI) *MetricSink {
	return &MetricSink{api: api}
}

func (s *MetricSink) PutMetric(ctx context.Context, d metrics.Datum) error {
	_, err := s.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(d.Namespace),
		MetricData: []types.MetricDatum{{
			MetricName: aws.String(d.Name),
			Timestamp:  aws.Time(d.Timestamp),
			Value:      aws.Float64(d.Value),
			Unit:       types.StandardUnit(d.Unit),
		}},
	})
	if err != nil {
		return fmt.Errorf("cloudwatch PutMetricData %s/%s: %w", d.Namespace, d.Name, err)
	}
	return nil
}
