// Package validation checks pipeline configuration documents for a stage and
// normalizes their file path fields
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/observability"
	"github.com/bcgsc/mavis-config/pkg/pathexpand"
	"github.com/bcgsc/mavis-config/pkg/schema"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/sirupsen/logrus"
)

// condensedLines is how many non-blank lines of a schema error are kept
const condensedLines = 3

// Validator defines the interface for configuration validation
type Validator interface {
	// Validate checks doc for the given stage and returns a normalized copy:
	// defaults filled, library assignments resolved and every reference and
	// conversion input expanded to absolute paths. doc itself is not modified.
	Validate(doc config.Document, st stage.Stage) (config.Document, error)

	// Defaults returns the schema defaults shared by all validations
	Defaults() config.Defaults
}

// configValidator implements the Validator interface
type configValidator struct {
	log      logrus.FieldLogger
	schemas  schema.Set
	defaults config.Defaults
}

// NewValidator creates a new configuration validator
func NewValidator(log logrus.FieldLogger, schemas schema.Set, defaults config.Defaults) Validator {
	return &configValidator{
		log:      log.WithField("service", "validator"),
		schemas:  schemas,
		defaults: defaults,
	}
}

// Defaults returns the schema defaults
func (v *configValidator) Defaults() config.Defaults {
	return v.defaults
}

// Validate runs every check in order and stops at the first failure
func (v *configValidator) Validate(doc config.Document, st stage.Stage) (config.Document, error) {
	start := time.Now()

	out, err := v.validate(doc, st)

	result := "valid"
	if err != nil {
		result = Kind(err)
	}
	observability.RecordValidation(st.String(), result, time.Since(start).Seconds())

	if err != nil {
		v.log.WithError(err).WithField("stage", st).Debug("Configuration is invalid")
		return nil, err
	}

	return out, nil
}

func (v *configValidator) validate(doc config.Document, st stage.Stage) (config.Document, error) {
	out, err := doc.Clone()
	if err != nil {
		return nil, err
	}

	engine := v.schemas.ForStage(st)
	v.log.WithFields(logrus.Fields{
		"stage":  st,
		"schema": engine.Name(),
	}).Debug("Validating configuration")

	if err := engine.Validate(out); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, CondenseMessage(err.Error()))
	}
	engine.ApplyDefaults(out)

	if err := v.checkRequired(out, st); err != nil {
		return nil, err
	}

	if engine.Name() == schema.VariantConfig {
		if err := v.resolveLibraries(out, st); err != nil {
			return nil, err
		}

		if err := expandConversions(out); err != nil {
			return nil, err
		}
	}

	if err := expandReferences(out); err != nil {
		return nil, err
	}

	return out, nil
}

// enabled looks a setting up in the document, falling back to its default
func (v *configValidator) enabled(doc config.Document) truthyFunc {
	return func(key string) bool {
		if doc.Has(key) {
			return doc.Truthy(key)
		}
		value, _ := v.defaults.Get(key)
		return config.Document{key: value}.Truthy(key)
	}
}

func (v *configValidator) checkRequired(doc config.Document, st stage.Stage) error {
	for _, key := range requiredKeys(st, v.enabled(doc)) {
		if !doc.Has(key) {
			return fmt.Errorf("%w: %s", ErrMissingRequired, key)
		}
	}
	return nil
}

// resolveLibraries replaces every library assignment with the files it names.
// Conversion aliases point at the converted output, except during setup where
// the alias is kept because the conversion has not run yet.
func (v *configValidator) resolveLibraries(doc config.Document, st stage.Stage) error {
	requireBam := !v.enabled(doc)(settingSkipValidate) && st.In(stage.Validate, stage.Setup)

	for _, name := range doc.LibraryNames() {
		lib, err := doc.Library(name)
		if err != nil {
			return err
		}

		assignments := make([]string, 0, len(lib.Assign))
		for _, assignment := range lib.Assign {
			if doc.IsConversion(assignment) {
				if !doc.Has(config.KeyOutputDir) {
					return ErrMissingOutputDir
				}

				if st == stage.Setup {
					assignments = append(assignments, assignment)
				} else {
					assignments = append(assignments, config.ConvertedOutput(doc.String(config.KeyOutputDir), assignment))
				}
				continue
			}

			expanded, err := pathexpand.Expand(assignment)
			if err != nil {
				if errors.Is(err, pathexpand.ErrNoMatch) {
					return fmt.Errorf("%w %s", ErrInputNotFound, assignment)
				}
				return err
			}
			observability.RecordExpandedPaths("library", len(expanded))
			assignments = append(assignments, expanded...)
		}

		record, _ := doc.LibraryRecord(name)
		record[config.FieldAssign] = assignments

		if requireBam && (lib.BamFile == "" || !exists(lib.BamFile)) {
			return fmt.Errorf("%w (%s), it is a required input when the validate stage is not skipped", ErrMissingBamFile, name)
		}
	}

	return nil
}

func expandConversions(doc config.Document) error {
	for _, alias := range doc.ConversionAliases() {
		conv, ok := doc.Conversion(alias)
		if !ok {
			continue
		}

		expanded, err := pathexpand.Expand(conv.Inputs...)
		if err != nil {
			return err
		}
		observability.RecordExpandedPaths("conversion", len(expanded))

		record, _ := doc.ConversionRecord(alias)
		record[config.FieldInputs] = expanded
	}

	return nil
}

func expandReferences(doc config.Document) error {
	for _, key := range doc.ReferenceKeys() {
		expressions, err := doc.StringList(key)
		if err != nil {
			return err
		}

		expanded, err := pathexpand.Expand(expressions...)
		if err != nil {
			return err
		}
		observability.RecordExpandedPaths("reference", len(expanded))

		doc[key] = expanded
	}

	return nil
}

// CondenseMessage keeps the first three non-blank lines of a (possibly very
// long) schema error, joined with ". "
func CondenseMessage(msg string) string {
	lines := make([]string, 0, condensedLines)
	for _, line := range strings.Split(msg, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == condensedLines {
			break
		}
	}
	return strings.Join(lines, ". ")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
