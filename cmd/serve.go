package cmd

import (
	"github.com/bcgsc/mavis-config/pkg/server"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/spf13/cobra"
)

// serveCmd runs the validation API
//
//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the configuration validation API",
	Long:  `Start the HTTP API validating configurations on request, along with the Prometheus metrics endpoint.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	graph, err := stage.NewPipelineGraph()
	if err != nil {
		return err
	}

	srv, err := server.NewServer(logger, &cfg.Server, validator, graph)
	if err != nil {
		return err
	}

	logger.Info("Configuration loaded")

	return srv.Start(cmd.Context())
}
