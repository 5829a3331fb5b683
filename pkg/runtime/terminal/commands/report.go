package commands

import (
	"fmt"

	"github.com/de-tools/instance-atlas/pkg/services/aws"
	"github.com/de-tools/instance-atlas/pkg/services/config"
	"github.com/de-tools/instance-atlas/pkg/services/ec2"
	"github.com/de-tools/instance-atlas/pkg/services/mail"
	"github.com/de-tools/instance-atlas/pkg/services/metrics"
	"github.com/de-tools/instance-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	cfgPath    string
	region     string
	outputPath string
	recipient  string
}

func NewReportCmd() *cobra.Command {
	rc := &ReportCmd{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Collect EC2 utilization metrics and send the report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.cfgPath, "config", "c", "", "Path to the configuration file")
	cmd.Flags().StringVar(&rc.region, "region", "", "AWS region override")
	cmd.Flags().StringVar(&rc.outputPath, "output", "", "CSV output path override")
	cmd.Flags().StringVar(&rc.recipient, "recipient", "", "Report recipient override")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rc.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if rc.region != "" {
		cfg.Region = rc.region
	}
	if rc.outputPath != "" {
		cfg.Report.OutputPath = rc.outputPath
	}
	if rc.recipient != "" {
		cfg.Email.Recipient = rc.recipient
	}
	if cfg.Email.Recipient == "" {
		return fmt.Errorf("no recipient configured: set email.recipient or pass --recipient")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	awsCfg, err := aws.LoadConfig(ctx, cfg.Profile, cfg.Region)
	if err != nil {
		return err
	}

	ctrl := report.NewController(
		ec2.NewExplorer(*awsCfg),
		metrics.NewCloudWatch(*awsCfg),
		mail.NewSESSender(*awsCfg),
		report.Settings{
			Region:     cfg.Region,
			OutputPath: cfg.Report.OutputPath,
			From:       cfg.Email.From,
			Recipient:  cfg.Email.Recipient,
			Subject:    cfg.Email.Subject,
		},
	)

	return ctrl.Run(ctx)
}
