package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/instance-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/instance-atlas/pkg/services/aws"
	"github.com/de-tools/instance-atlas/pkg/services/config"
	"github.com/de-tools/instance-atlas/pkg/services/cost"
	"github.com/spf13/cobra"
)

type CostCmd struct {
	cfgPath  string
	region   string
	duration int
	reporter *export.Reporter
}

func NewCostCmd(output io.Writer) *cobra.Command {
	cc := &CostCmd{reporter: export.NewReporter(output)}
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Summarize EC2 spend over the report window",
		RunE:  cc.run,
	}

	cmd.Flags().StringVarP(&cc.cfgPath, "config", "c", "", "Path to the configuration file")
	cmd.Flags().StringVar(&cc.region, "region", "", "AWS region override")
	cmd.Flags().IntVar(&cc.duration, "duration", 7, "Duration in days to summarize")

	return cmd
}

func (cc *CostCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cc.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cc.region != "" {
		cfg.Region = cc.region
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

	summary, err := cost.NewController(*awsCfg).EC2SpendSummary(ctx, cc.duration)
	if err != nil {
		return fmt.Errorf("failed to summarize EC2 spend: %w", err)
	}

	return cc.reporter.Handle(summary)
}
