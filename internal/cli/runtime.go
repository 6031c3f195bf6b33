package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/jiobot/internal/config"
	"github.com/example/jiobot/internal/logging"
)

// loadRuntime reads configuration, applies flag overrides, and builds the logger.
func loadRuntime(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if f := cmd.Flags().Lookup("mode"); f != nil && f.Changed {
		cfg.Mode = f.Value.String()
	}
	if f := cmd.Flags().Lookup("store"); f != nil && f.Changed {
		cfg.Store = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
