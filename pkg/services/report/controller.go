package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/instance-atlas/pkg/export"
	"github.com/de-tools/instance-atlas/pkg/models/domain"
	"github.com/de-tools/instance-atlas/pkg/services/mail"
	"github.com/de-tools/instance-atlas/pkg/services/metrics"
	"github.com/rs/zerolog"
)

// Settings carry the run configuration into the pipeline instead of
// being read from the process environment mid-flight.
type Settings struct {
	Region     string
	OutputPath string
	From       string
	Recipient  string
	Subject    string
}

// Controller runs the full pipeline once: enumerate, collect, render,
// write the CSV, send the mail.
type Controller struct {
	instances InstanceExplorer
	collector *Collector
	sender    mail.Sender
	settings  Settings
	now       func() time.Time
}

func NewController(
	instances InstanceExplorer,
	fetcher MetricFetcher,
	sender mail.Sender,
	settings Settings,
) *Controller {
	return &Controller{
		instances: instances,
		collector: NewCollector(instances, fetcher),
		sender:    sender,
		settings:  settings,
		now:       time.Now,
	}
}

// Generate enumerates the region's running instances and folds them
// into a report. Enumeration failure is fatal; per-instance metric
// failures are not.
func (c *Controller) Generate(ctx context.Context) (*domain.UtilizationReport, error) {
	ids, err := c.instances.ListRunningInstanceIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate instances: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int("count", len(ids)).Msg("found running instances")

	end := c.now().UTC()
	window := domain.ReportWindow{
		Start: end.Add(-metrics.DefaultWindow),
		End:   end,
	}

	return &domain.UtilizationReport{
		Region:      c.settings.Region,
		Window:      window,
		GeneratedAt: c.now(),
		Records:     c.collector.Collect(ctx, ids, window),
	}, nil
}

// Run executes the pipeline once. An undeliverable mail is logged and
// swallowed: the outputs were generated, so the run still succeeds.
func (c *Controller) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("region", c.settings.Region).Msg("starting utilization report run")

	report, err := c.Generate(ctx)
	if err != nil {
		return err
	}

	var csvBuf bytes.Buffer
	if err := export.WriteCSV(&csvBuf, report); err != nil {
		return fmt.Errorf("failed to render CSV report: %w", err)
	}
	if err := os.WriteFile(c.settings.OutputPath, csvBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	logger.Info().Str("path", c.settings.OutputPath).Msg("CSV report written")

	html, err := export.RenderHTML(report)
	if err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	err = c.sender.Send(ctx, mail.Message{
		From:           c.settings.From,
		To:             c.settings.Recipient,
		Subject:        c.settings.Subject,
		HTMLBody:       html,
		AttachmentName: filepath.Base(c.settings.OutputPath),
		Attachment:     csvBuf.Bytes(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send report email")
	} else {
		logger.Info().Str("recipient", c.settings.Recipient).Msg("report email sent")
	}

	logger.Info().Int("instances", len(report.Records)).Msg("report run complete")
	return nil
}
