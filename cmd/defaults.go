package cmd

import (
	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/spf13/cobra"
)

// defaultsCmd prints the schema defaults
//
//nolint:gochecknoglobals // Cobra commands are typically global
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the schema defaults",
	Long:  `Print the defaults declared by the configuration schema, optionally only the settings under a prefix (e.g. bam_stats.) with the prefix stripped.`,
	Args:  cobra.NoArgs,
	RunE:  runDefaults,
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
	defaultsCmd.Flags().StringP("prefix", "p", "", "only print settings starting with this prefix")
	defaultsCmd.Flags().StringP("output", "o", string(config.FormatYAML), "output format (json, yaml)")
}

func runDefaults(cmd *cobra.Command, _ []string) error {
	_, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return err
	}

	values := validator.Defaults().Document()
	if prefix != "" {
		values = validator.Defaults().ByPrefix(prefix)
	}

	data, err := config.Encode(values, format)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
