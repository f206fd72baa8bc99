package cmd

import (
	"os"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a configuration file
//
//nolint:gochecknoglobals // Cobra commands are typically global
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a pipeline configuration for a stage",
	Long: `Validate a pipeline configuration for a stage and print the normalized
configuration: schema defaults filled, library inputs and reference files
expanded to absolute paths.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addStageFlag(validateCmd)
	validateCmd.Flags().StringP("output", "o", string(config.FormatJSON), "output format (json, yaml)")
	validateCmd.Flags().StringP("write", "w", "", "write the normalized configuration to this file instead of stdout")
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	validated, st, err := loadValidated(cmd, validator, args[0])
	if err != nil {
		return err
	}

	data, err := config.Encode(validated, format)
	if err != nil {
		return err
	}

	dest, err := cmd.Flags().GetString("write")
	if err != nil {
		return err
	}

	if dest == "" {
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil { //nolint:gosec // Normalized config is not secret
		return err
	}

	logger.WithField("stage", st).WithField("path", dest).Info("Configuration is valid")

	return nil
}
