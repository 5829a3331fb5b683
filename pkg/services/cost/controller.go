package cost

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/rs/zerolog"
)

const serviceFilterEC2 = "Amazon Elastic Compute Cloud - Compute"

type api interface {
	GetCostAndUsage(
		ctx context.Context,
		params *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
}

// DailySpend is one day's unblended EC2 cost.
type DailySpend struct {
	Date   string
	Amount float64
}

// Summary aggregates EC2 spend over the report window, giving the
// utilization numbers a price context.
type Summary struct {
	Service      string
	Start        time.Time
	End          time.Time
	Currency     string
	Total        float64
	DailyAverage float64
	Days         []DailySpend
}

// Controller queries Cost Explorer for EC2 spend.
type Controller struct {
	client api
}

func NewController(cfg awssdk.Config) *Controller {
	return &Controller{
		client: costexplorer.NewFromConfig(cfg),
	}
}

// EC2SpendSummary returns daily unblended EC2 costs for the trailing
// window, credits and refunds excluded.
func (c *Controller) EC2SpendSummary(ctx context.Context, days int) (*Summary, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		Filter: &types.Expression{
			And: []types.Expression{
				{
					Dimensions: &types.DimensionValues{
						Key:    types.DimensionService,
						Values: []string{serviceFilterEC2},
					},
				},
				{
					Not: &types.Expression{
						Dimensions: &types.DimensionValues{
							Key:    types.DimensionRecordType,
							Values: []string{"Credit", "Refund"},
						},
					},
				},
			},
		},
	}

	resp, err := c.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query EC2 spend: %w", err)
	}

	summary := &Summary{
		Service:  "EC2",
		Start:    start,
		End:      end,
		Currency: "USD",
	}
	for _, result := range resp.ResultsByTime {
		metric, ok := result.Total["UnblendedCost"]
		if !ok {
			continue
		}
		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("date", aws.ToString(result.TimePeriod.Start)).
				Msg("skipping unparsable cost amount")
			continue
		}
		if unit := aws.ToString(metric.Unit); unit != "" {
			summary.Currency = unit
		}
		summary.Days = append(summary.Days, DailySpend{
			Date:   aws.ToString(result.TimePeriod.Start),
			Amount: amount,
		})
		summary.Total += amount
	}
	if len(summary.Days) > 0 {
		summary.DailyAverage = summary.Total / float64(len(summary.Days))
	}
	return summary, nil
}
