package testutil

import (
	"testing"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/schema"
	"github.com/bcgsc/mavis-config/pkg/validation"
	"github.com/stretchr/testify/require"
)

// Schemas loads the bundled schemas and their defaults
func Schemas(t *testing.T) (schema.Set, config.Defaults) {
	t.Helper()

	set, err := schema.Load("")
	require.NoError(t, err)

	defaults, err := schema.Defaults(set.Config)
	require.NoError(t, err)

	return set, defaults
}

// NewValidator builds a validator over the bundled schemas
func NewValidator(t *testing.T) validation.Validator {
	t.Helper()

	set, defaults := Schemas(t)
	return validation.NewValidator(Logger(), set, defaults)
}
