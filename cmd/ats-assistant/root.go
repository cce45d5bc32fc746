package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thinqor/ats-assistant/internal/pkg/config"
	"github.com/thinqor/ats-assistant/pkg/logger"
)

const appName = "ats-assistant"

var (
	logLevel string
	pretty   bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "Role-aware ATS chat assistant and candidate screener",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-friendly console logs")
}

// bootstrap loads configuration and initialises the logger.
func bootstrap() (*config.Config, zerolog.Logger) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  pretty || !cfg.IsProduction(),
		Service: appName,
	})
	return cfg, log
}
