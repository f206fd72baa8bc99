package cmd

import (
	"fmt"
	"os"

	"github.com/bcgsc/mavis-config/pkg/rendering"
	"github.com/spf13/cobra"
)

// renderCmd renders a template over a validated configuration
//
//nolint:gochecknoglobals // Cobra commands are typically global
var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a template over a validated configuration",
	Long: `Render a Go text/template over a validated configuration. Templates get
the Sprig functions plus libraryInputs, bindings, guessBatches and byPrefix,
and the variables config, stage, output_dir, libraries and conversions.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addStageFlag(renderCmd)
	renderCmd.Flags().StringP("template", "t", "", "template file")
	_ = renderCmd.MarkFlagRequired("template")
}

func runRender(cmd *cobra.Command, args []string) error {
	_, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	templatePath, err := cmd.Flags().GetString("template")
	if err != nil {
		return err
	}

	content, err := os.ReadFile(templatePath) //nolint:gosec // User-provided template path
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	validated, st, err := loadValidated(cmd, validator, args[0])
	if err != nil {
		return err
	}

	engine := rendering.NewTemplateEngine()
	out, err := engine.Render(string(content), engine.BuildVariables(validated, st))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
