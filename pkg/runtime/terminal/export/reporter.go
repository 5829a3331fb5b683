package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/instance-atlas/pkg/services/cost"
)

// Reporter outputs spend summaries to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(summary *cost.Summary) error {
	tmpl := `
{{.Service}} spend ({{.Start.Format "2006-01-02"}} to {{.End.Format "2006-01-02"}})
Total: {{.Currency}} {{printf "%.2f" .Total}}
Daily Average: {{.Currency}} {{printf "%.2f" .DailyAverage}}

{{range .Days}}{{.Date}}: {{printf "%.2f" .Amount}}
{{end}}`

	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}
