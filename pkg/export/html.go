package export

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/de-tools/instance-atlas/pkg/models/domain"
	"github.com/de-tools/instance-atlas/pkg/services/classify"
)

const htmlTemplate = `<html><head><style>
body { font-family: sans-serif; background: #f4f6f9; padding: 20px; }
table { width: 100%; border-collapse: collapse; }
th { background-color: #2c3e50; color: #ecf0f1; padding: 10px; }
td { border: 1px solid #ccc; padding: 10px; text-align: center; }
tr:nth-child(even) { background-color: #ecf0f1; }
.badge-critical { background: #e74c3c; color: white; padding: 4px 8px; border-radius: 5px; }
.badge-warning { background: #f39c12; color: white; padding: 4px 8px; border-radius: 5px; }
.badge-good { background: #2ecc71; color: white; padding: 4px 8px; border-radius: 5px; }
</style></head><body>
<h2>Underutilized EC2 Instances Report</h2>
<table>
<tr>
    <th>Instance ID</th>
    <th>Type</th>
    <th>CPU Utilization</th>
    <th>Memory Utilization</th>
    <th>Name</th>
    <th>Recommendation</th>
</tr>
{{range .Rows}}<tr>
    <td>{{.InstanceID}}</td>
    <td>{{.InstanceType}}</td>
    <td><span class="{{.CPUBadge}}">{{.CPU}}%</span></td>
    <td><span class="{{.MemBadge}}">{{.Mem}}%</span></td>
    <td>{{.Name}}</td>
    <td>{{.Recommendation}}</td>
</tr>
{{end}}</table>
<p style="color:gray; font-size:12px;">Generated on {{.GeneratedAt}}</p>
</body></html>
`

type htmlRow struct {
	InstanceID     string
	InstanceType   string
	Name           string
	CPU            string
	Mem            string
	CPUBadge       string
	MemBadge       string
	Recommendation string
}

type htmlView struct {
	Rows        []htmlRow
	GeneratedAt string
}

// RenderHTML renders the styled table form of the report. CPU cells
// carry one of three severity badges, memory cells one of two, derived
// from the same stored averages the CSV is built from.
func RenderHTML(report *domain.UtilizationReport) (string, error) {
	t, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	view := htmlView{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05"),
		Rows:        make([]htmlRow, 0, len(report.Records)),
	}
	for _, record := range report.Records {
		view.Rows = append(view.Rows, htmlRow{
			InstanceID:     record.InstanceID,
			InstanceType:   record.InstanceType,
			Name:           record.Name,
			CPU:            fmt.Sprintf("%.2f", record.CPUAvgPct),
			Mem:            fmt.Sprintf("%.2f", record.MemAvgPct),
			CPUBadge:       badgeClass(classify.CPUTier(record.CPUAvgPct)),
			MemBadge:       badgeClass(classify.MemTier(record.MemAvgPct)),
			Recommendation: record.Recommendation.Text(),
		})
	}

	var sb strings.Builder
	if err := t.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return sb.String(), nil
}

func badgeClass(tier domain.Tier) string {
	return "badge-" + string(tier)
}
