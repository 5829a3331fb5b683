package report

import (
	"context"
	"time"

	"github.com/de-tools/instance-atlas/pkg/models/domain"
	"github.com/de-tools/instance-atlas/pkg/services/classify"
	"github.com/de-tools/instance-atlas/pkg/services/metrics"
	"github.com/rs/zerolog"
)

// InstanceExplorer enumerates instances and resolves their metadata.
type InstanceExplorer interface {
	ListRunningInstanceIDs(ctx context.Context) ([]string, error)
	GetInstanceName(ctx context.Context, instanceID string) string
	GetInstanceType(ctx context.Context, instanceID string) string
}

// MetricFetcher returns the average value of a metric over a window,
// normalizing missing data to 0.
type MetricFetcher interface {
	GetAverage(
		ctx context.Context,
		instanceID string,
		metricName string,
		namespace string,
		start time.Time,
		end time.Time,
	) float64
}

// Collector folds instance IDs into utilization records. Each instance
// is processed to completion before the next; records come back in
// enumeration order.
type Collector struct {
	instances InstanceExplorer
	metrics   MetricFetcher
}

func NewCollector(instances InstanceExplorer, fetcher MetricFetcher) *Collector {
	return &Collector{
		instances: instances,
		metrics:   fetcher,
	}
}

func (c *Collector) Collect(
	ctx context.Context,
	ids []string,
	window domain.ReportWindow,
) []domain.UtilizationRecord {
	records := make([]domain.UtilizationRecord, 0, len(ids))
	for _, id := range ids {
		zerolog.Ctx(ctx).Info().Str("instance_id", id).Msg("checking instance")

		cpu := c.metrics.GetAverage(ctx, id,
			metrics.MetricCPUUtilization, metrics.NamespaceEC2, window.Start, window.End)
		mem := c.metrics.GetAverage(ctx, id,
			metrics.MetricMemoryUsedPercent, metrics.NamespaceCWAgent, window.Start, window.End)

		records = append(records, domain.UtilizationRecord{
			InstanceID:     id,
			InstanceType:   c.instances.GetInstanceType(ctx, id),
			Name:           c.instances.GetInstanceName(ctx, id),
			CPUAvgPct:      cpu,
			MemAvgPct:      mem,
			Recommendation: classify.Recommend(cpu),
		})
	}
	return records
}
