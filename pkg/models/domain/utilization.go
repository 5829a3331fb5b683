package domain

import "time"

// Tier is a discrete severity bucket derived from a utilization
// percentage. Tiers only drive how a value is displayed.
type Tier string

const (
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierGood     Tier = "good"
)

// Recommendation is the action-oriented classification driving the
// report's headline guidance.
type Recommendation string

const (
	RecommendationDownsize   Recommendation = "DOWNSIZE"
	RecommendationReviewHigh Recommendation = "REVIEW_HIGH"
	RecommendationMonitor    Recommendation = "MONITOR"
)

// Text returns the human-readable form used in both report renderings.
func (r Recommendation) Text() string {
	switch r {
	case RecommendationDownsize:
		return "Downsize to a smaller instance type"
	case RecommendationReviewHigh:
		return "High usage - review and possibly upgrade"
	case RecommendationMonitor:
		return "Monitor further - utilization looks reasonable"
	}
	return string(r)
}

// UtilizationRecord holds the collected averages and the resulting
// recommendation for a single instance. Missing metric data is
// normalized to 0 before the record is built, never left absent.
type UtilizationRecord struct {
	InstanceID     string
	InstanceType   string
	Name           string
	CPUAvgPct      float64
	MemAvgPct      float64
	Recommendation Recommendation
}

// ReportWindow is the trailing interval the averages were computed over.
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// UtilizationReport is the single in-memory sequence both the CSV and
// the HTML renderers consume. Records appear in enumeration order.
type UtilizationReport struct {
	Region      string
	Window      ReportWindow
	GeneratedAt time.Time
	Records     []UtilizationRecord
}
