package cmd

import (
	"fmt"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/schema"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/bcgsc/mavis-config/pkg/validation"
	"github.com/spf13/cobra"
)

// setup loads the CLI configuration, applies the log level and builds a
// validator from the configured schemas
func setup(cmd *cobra.Command) (*CLIConfig, validation.Validator, error) {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, nil, validationErr
	}

	setLogLevel(cmd, cfg.Logging)

	schemas, err := schema.Load(cfg.SchemaDir)
	if err != nil {
		return nil, nil, err
	}

	defaults, err := schema.Defaults(schemas.Config)
	if err != nil {
		return nil, nil, err
	}

	logger.WithField("defaults", defaults.Len()).Debug("Schemas loaded")

	return cfg, validation.NewValidator(logger, schemas, defaults), nil
}

// loadValidated reads the document at path and validates it for the stage
// named by the --stage flag
func loadValidated(cmd *cobra.Command, validator validation.Validator, path string) (config.Document, stage.Stage, error) {
	stageName, err := cmd.Flags().GetString("stage")
	if err != nil {
		return nil, "", err
	}

	st, err := stage.Parse(stageName)
	if err != nil {
		return nil, "", err
	}

	doc, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	validated, err := validator.Validate(doc, st)
	if err != nil {
		return nil, "", fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return validated, st, nil
}

func addStageFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("stage", "s", stage.Setup.String(), "pipeline stage the configuration is validated for")
}

func outputFormat(cmd *cobra.Command) (config.Format, error) {
	name, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return config.ParseFormat(name)
}
