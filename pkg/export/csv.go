package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/de-tools/instance-atlas/pkg/models/domain"
)

// csvHeader is a fixed contract: downstream spreadsheets key on these
// exact column names.
var csvHeader = []string{
	"Instance ID",
	"Instance Type",
	"CPU Utilization (%)",
	"Memory Utilization (%)",
	"Name",
	"Recommendation",
}

// WriteCSV renders the report as comma-separated rows, one per record,
// in record order. Numeric fields carry exactly two decimal places.
func WriteCSV(w io.Writer, report *domain.UtilizationReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range report.Records {
		row := []string{
			record.InstanceID,
			record.InstanceType,
			fmt.Sprintf("%.2f", record.CPUAvgPct),
			fmt.Sprintf("%.2f", record.MemAvgPct),
			record.Name,
			record.Recommendation.Text(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", record.InstanceID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
