// Package cmd contains the CLI commands for mavis-config
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile string
	logger  *logrus.Logger
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "mavis-config",
	Short: "Validate and inspect MAVIS pipeline configuration",
	Long: `mavis-config validates MAVIS pipeline configuration files against the
pipeline schema for a given stage, resolves library inputs to absolute paths
and derives the facts the pipeline needs: container bindings, cluster batch
estimates and per-library inputs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "CLI config file (default is ./mavis-config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level overriding the config file (debug, info, warn, error, fatal, panic)")

	// Initialize logger
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = defaultCLIConfigFile
	}
}

// setLogLevel applies --log-level when given, else the configured level
func setLogLevel(cmd *cobra.Command, configured string) {
	logLevel := configured
	if flag, err := cmd.Flags().GetString("log-level"); err == nil && flag != "" {
		logLevel = flag
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
