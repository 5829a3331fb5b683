package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/instance-atlas/pkg/server"
	"github.com/de-tools/instance-atlas/pkg/services/aws"
	"github.com/de-tools/instance-atlas/pkg/services/config"
	"github.com/de-tools/instance-atlas/pkg/services/ec2"
	"github.com/de-tools/instance-atlas/pkg/services/mail"
	"github.com/de-tools/instance-atlas/pkg/services/metrics"
	"github.com/de-tools/instance-atlas/pkg/services/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve EC2 utilization reports over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

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

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Dependencies: server.Dependencies{
			Report: ctrl,
		},
	})

	logger.Info().Str("region", cfg.Region).Msg("configuration loaded")
	return webAPI.Start()
}
