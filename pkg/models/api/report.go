package api

import "time"

type UtilizationRecord struct {
	InstanceID     string  `json:"instance_id"`
	InstanceType   string  `json:"instance_type"`
	Name           string  `json:"name"`
	CPUAvgPct      float64 `json:"cpu_avg_pct"`
	MemAvgPct      float64 `json:"mem_avg_pct"`
	Recommendation string  `json:"recommendation"`
}

type UtilizationReport struct {
	Region      string              `json:"region"`
	WindowStart time.Time           `json:"window_start"`
	WindowEnd   time.Time           `json:"window_end"`
	GeneratedAt time.Time           `json:"generated_at"`
	Records     []UtilizationRecord `json:"records"`
}
