package validation

import (
	"errors"
	"fmt"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/pathexpand"
)

// Validation errors
var (
	ErrSchemaViolation = errors.New("schema violation")
	ErrMissingRequired = errors.New("missing required property")
	ErrInputNotFound   = errors.New("cannot find the expected input file")
	ErrMissingBamFile  = errors.New("missing bam file for library")

	// ErrMissingOutputDir is raised when a library is assigned a conversion
	// alias but output_dir is not set. It is also an ErrMissingRequired.
	ErrMissingOutputDir = fmt.Errorf("%w: %s", ErrMissingRequired, config.KeyOutputDir)
)

// Error kinds reported to API clients
const (
	KindSchemaViolation = "schema_violation"
	KindMissingRequired = "missing_required"
	KindMissingOutput   = "missing_output_dir"
	KindInputNotFound   = "input_not_found"
	KindNoMatch         = "no_match"
	KindMissingBamFile  = "missing_bam_file"
	KindIO              = "io"
)

// Kind classifies a Validate error
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrSchemaViolation):
		return KindSchemaViolation
	case errors.Is(err, ErrMissingOutputDir):
		return KindMissingOutput
	case errors.Is(err, ErrMissingRequired):
		return KindMissingRequired
	case errors.Is(err, ErrInputNotFound):
		return KindInputNotFound
	case errors.Is(err, pathexpand.ErrNoMatch):
		return KindNoMatch
	case errors.Is(err, ErrMissingBamFile):
		return KindMissingBamFile
	default:
		return KindIO
	}
}
