package classify

import "github.com/de-tools/instance-atlas/pkg/models/domain"

// Threshold boundaries are half-open on the low end: a value exactly on
// a boundary falls into the higher bucket. CPU drives the
// recommendation alone; memory only affects its display tier.
const (
	cpuCriticalBelow = 10.0
	cpuWarningBelow  = 30.0
	cpuReviewAbove   = 80.0
	memWarningBelow  = 30.0
)

// CPUTier buckets a CPU utilization percentage into three tiers.
func CPUTier(pct float64) domain.Tier {
	switch {
	case pct < cpuCriticalBelow:
		return domain.TierCritical
	case pct < cpuWarningBelow:
		return domain.TierWarning
	default:
		return domain.TierGood
	}
}

// MemTier buckets a memory utilization percentage. Memory has no
// critical tier.
func MemTier(pct float64) domain.Tier {
	if pct < memWarningBelow {
		return domain.TierWarning
	}
	return domain.TierGood
}

// Recommend maps a CPU utilization percentage to a recommendation.
// Exactly 10 is MONITOR, not DOWNSIZE; exactly 80 is MONITOR, not
// REVIEW_HIGH.
func Recommend(cpuPct float64) domain.Recommendation {
	switch {
	case cpuPct < cpuCriticalBelow:
		return domain.RecommendationDownsize
	case cpuPct > cpuReviewAbove:
		return domain.RecommendationReviewHigh
	default:
		return domain.RecommendationMonitor
	}
}
