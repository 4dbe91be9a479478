package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "raymarch",
	Short: "Real-time raymarching viewer camera",
	Long: `raymarch drives a free-flying raymarching camera from keyboard and mouse input,
records input tracks, and replays them headlessly to produce golden camera output.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./raymarch.toml or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level from the config")
}

// loadConfig reads the configuration and builds the root logger from it.
func loadConfig() (*config.Manager, zerolog.Logger, error) {
	m, err := config.NewManager(configPath, zerolog.Nop())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	cfg := m.Config()
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger := common.NewLogger(level, cfg.Log.Pretty)
	m.SetLogger(logger)
	if file := m.File(); file != "" {
		logger.Debug().Str("file", file).Msg("loaded config")
	}
	return m, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
