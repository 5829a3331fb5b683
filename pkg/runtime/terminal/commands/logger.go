package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/instance-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	var w io.Writer = os.Stdout
	if cfg.Log.Path != "" {
		f, err := os.OpenFile(cfg.Log.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(os.Stdout, f)
	}
	return zerolog.New(w).With().Timestamp().Logger(), nil
}
