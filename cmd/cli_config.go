package cmd

import (
	"fmt"
	"os"

	"github.com/bcgsc/mavis-config/pkg/server"
	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultCLIConfigFile = "mavis-config.yaml"

// CLIConfig represents configuration shared by the CLI commands
type CLIConfig struct {
	// Logging level
	Logging string `yaml:"logging" default:"warn"`

	// SchemaDir holds config.json and overlay.json. Empty uses the bundled schemas.
	SchemaDir string `yaml:"schemaDir"`

	// Server configuration, only used by serve
	Server server.Config `yaml:",inline"`
}

// Validate validates the CLI configuration
func (c *CLIConfig) Validate() error {
	if _, err := logrus.ParseLevel(c.Logging); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	return c.Server.Validate()
}

// LoadCLIConfig loads CLI configuration from a YAML file
func LoadCLIConfig(path string) (*CLIConfig, error) {
	if path == "" {
		path = defaultCLIConfigFile
	}

	config := &CLIConfig{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	// Try to read the file, but allow it to not exist
	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
