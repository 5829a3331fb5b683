package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/rs/zerolog"
)

const (
	MetricCPUUtilization    = "CPUUtilization"
	MetricMemoryUsedPercent = "mem_used_percent"

	NamespaceEC2     = "AWS/EC2"
	NamespaceCWAgent = "CWAgent"

	// DefaultWindow is the trailing interval averages are computed over.
	DefaultWindow = 7 * 24 * time.Hour
)

type api interface {
	GetMetricStatistics(
		ctx context.Context,
		params *cloudwatch.GetMetricStatisticsInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// CloudWatch fetches a single average datapoint per metric per
// instance: the period spans the whole window.
type CloudWatch struct {
	client api
}

func NewCloudWatch(cfg awssdk.Config) *CloudWatch {
	return &CloudWatch{
		client: cloudwatch.NewFromConfig(cfg),
	}
}

// GetAverage returns the average value of the metric over [start, end).
// Missing data and query failures both normalize to 0: an unmeasured
// instance is treated as idle, not as unknown. The classifier depends
// on this contract.
func (f *CloudWatch) GetAverage(
	ctx context.Context,
	instanceID string,
	metricName string,
	namespace string,
	start time.Time,
	end time.Time,
) float64 {
	period := int32(end.Sub(start) / time.Second)

	resp, err := f.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String(metricName),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("InstanceId"),
				Value: aws.String(instanceID),
			},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(period),
		Statistics: []types.Statistic{types.StatisticAverage},
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("instance_id", instanceID).
			Str("metric", metricName).
			Msg("metric query failed, treating instance as idle")
		return 0
	}
	if len(resp.Datapoints) == 0 {
		return 0
	}
	return aws.ToFloat64(resp.Datapoints[0].Average)
}
