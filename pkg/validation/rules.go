package validation

import (
	"github.com/bcgsc/mavis-config/pkg/stage"
)

// Settings consulted by the requirement rules
const (
	settingUninformativeFilter = "cluster.uninformative_filter"
	settingSkipValidate        = "skip_stage.validate"
)

// truthyFunc reports whether a setting is enabled
type truthyFunc func(key string) bool

// requirement is a top-level key that must be present when applies holds
type requirement struct {
	key     string
	applies func(st stage.Stage, enabled truthyFunc) bool
}

// requirements is evaluated in order and the first missing key is reported
//
//nolint:gochecknoglobals // Declarative rule table
var requirements = []requirement{
	{key: "reference.annotations", applies: needsAnnotations},
	{key: "reference.aligner_reference", applies: onStages(stage.Validate)},
	{key: "reference.reference_genome", applies: onStages(stage.Validate)},
	{key: "reference.aligner_reference", applies: setupWithValidation},
	{key: "libraries", applies: onStages(stage.Cluster, stage.Validate, stage.Annotate, stage.Setup)},
}

// needsAnnotations exempts convert, and cluster when the uninformative filter
// is enabled
func needsAnnotations(st stage.Stage, enabled truthyFunc) bool {
	if st == stage.Convert {
		return false
	}
	if st == stage.Cluster {
		return !enabled(settingUninformativeFilter)
	}
	return true
}

func setupWithValidation(st stage.Stage, enabled truthyFunc) bool {
	return st == stage.Setup && !enabled(settingSkipValidate)
}

func onStages(stages ...stage.Stage) func(stage.Stage, truthyFunc) bool {
	return func(st stage.Stage, _ truthyFunc) bool {
		return st.In(stages...)
	}
}

// requiredKeys returns the keys required for st in check order
func requiredKeys(st stage.Stage, enabled truthyFunc) []string {
	var keys []string
	for _, req := range requirements {
		if req.applies(st, enabled) {
			keys = append(keys, req.key)
		}
	}
	return keys
}
