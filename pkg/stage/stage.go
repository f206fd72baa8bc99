package stage

// Stage is a named phase of the pipeline
type Stage string

// Pipeline stages
const (
	Annotate Stage = "annotate"
	Validate Stage = "validate"
	Cluster  Stage = "cluster"
	Pair     Stage = "pairing"
	Summary  Stage = "summary"
	Convert  Stage = "convert"
	Overlay  Stage = "overlay"
	Setup    Stage = "setup"
)

// Subcommands holds the allowed pipeline stage values
//
//nolint:gochecknoglobals // Fixed vocabulary built once at init
var Subcommands = NewNamespace(
	Member[Stage]{Name: "ANNOTATE", Value: Annotate},
	Member[Stage]{Name: "VALIDATE", Value: Validate},
	Member[Stage]{Name: "CLUSTER", Value: Cluster},
	Member[Stage]{Name: "PAIR", Value: Pair},
	Member[Stage]{Name: "SUMMARY", Value: Summary},
	Member[Stage]{Name: "CONVERT", Value: Convert},
	Member[Stage]{Name: "OVERLAY", Value: Overlay},
	Member[Stage]{Name: "SETUP", Value: Setup},
)

// String returns the stage value
func (s Stage) String() string {
	return string(s)
}

// Parse validates a user supplied stage value
func Parse(value string) (Stage, error) {
	return Subcommands.Enforce(Stage(value))
}

// In reports whether s is one of stages
func (s Stage) In(stages ...Stage) bool {
	for _, other := range stages {
		if s == other {
			return true
		}
	}
	return false
}
