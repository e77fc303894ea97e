package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/totegamma/iiifas/internal/config"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:          "iiifas",
	Short:        "Publish a IIIF collection as an ActivityStreams change feed",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
}

// loadConfig reads the configuration and installs the default logger.
func loadConfig() (config.Config, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	level := slog.LevelInfo
	if conf.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return conf, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
