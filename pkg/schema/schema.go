// Package schema checks configuration documents against the pipeline JSON
// schemas and fills schema-declared defaults
package schema

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/getkin/kin-openapi/openapi3"
)

// Schema variants
const (
	VariantConfig  = "config"
	VariantOverlay = "overlay"
)

// ErrInvalidSchema is returned when a schema definition cannot be loaded
var ErrInvalidSchema = errors.New("invalid schema definition")

//go:embed schemas/*.json
var definitions embed.FS

// Engine checks documents against one schema variant
type Engine interface {
	// Name returns the schema variant name
	Name() string
	// Validate returns an error describing the first violation found
	Validate(doc map[string]any) error
	// ApplyDefaults fills missing properties that declare a default, recursing
	// into nested objects, additionalProperties and array items
	ApplyDefaults(doc map[string]any)
}

// Set holds the full configuration schema and the reduced overlay schema
type Set struct {
	Config  Engine
	Overlay Engine
}

// ForStage returns the overlay schema for the overlay stage and the full
// configuration schema for every other value
func (s Set) ForStage(st stage.Stage) Engine {
	if st == stage.Overlay {
		return s.Overlay
	}
	return s.Config
}

// Load reads config.json and overlay.json from dir. An empty dir loads the
// definitions bundled with the binary.
func Load(dir string) (Set, error) {
	cfg, err := loadVariant(dir, VariantConfig)
	if err != nil {
		return Set{}, err
	}

	overlay, err := loadVariant(dir, VariantOverlay)
	if err != nil {
		return Set{}, err
	}

	return Set{Config: cfg, Overlay: overlay}, nil
}

// Defaults runs engine in fill defaults mode against an empty document
func Defaults(engine Engine) (config.Defaults, error) {
	doc := map[string]any{}
	engine.ApplyDefaults(doc)
	return config.NewDefaults(doc)
}

func loadVariant(dir, variant string) (*OpenAPIEngine, error) {
	file := variant + ".json"

	var (
		data []byte
		err  error
	)
	if dir == "" {
		data, err = definitions.ReadFile("schemas/" + file)
	} else {
		data, err = os.ReadFile(filepath.Join(dir, file)) //nolint:gosec // Configured schema directory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s schema: %w", variant, err)
	}

	return NewOpenAPIEngine(variant, data)
}

// OpenAPIEngine is an Engine backed by a kin-openapi schema
type OpenAPIEngine struct {
	name   string
	schema *openapi3.Schema
}

// NewOpenAPIEngine parses a JSON schema definition
func NewOpenAPIEngine(name string, definition []byte) (*OpenAPIEngine, error) {
	s := &openapi3.Schema{}
	if err := s.UnmarshalJSON(definition); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, name, err)
	}

	if err := s.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, name, err)
	}

	return &OpenAPIEngine{name: name, schema: s}, nil
}

// Name returns the schema variant name
func (e *OpenAPIEngine) Name() string {
	return e.name
}

// Validate checks doc against the schema. Values must be JSON types (see
// config.Document.Clone).
func (e *OpenAPIEngine) Validate(doc map[string]any) error {
	return e.schema.VisitJSON(doc)
}

// ApplyDefaults fills schema defaults into doc in place
func (e *OpenAPIEngine) ApplyDefaults(doc map[string]any) {
	applyDefaults(e.schema, doc)
}

func applyDefaults(s *openapi3.Schema, value any) {
	if s == nil {
		return
	}

	switch v := value.(type) {
	case map[string]any:
		for name, ref := range s.Properties {
			if ref == nil || ref.Value == nil {
				continue
			}

			prop, ok := v[name]
			if !ok {
				if ref.Value.Default != nil {
					v[name] = copyValue(ref.Value.Default)
				}
				continue
			}

			applyDefaults(ref.Value, prop)
		}

		if extra := s.AdditionalProperties.Schema; extra != nil && extra.Value != nil {
			for name, prop := range v {
				if _, declared := s.Properties[name]; declared {
					continue
				}
				applyDefaults(extra.Value, prop)
			}
		}
	case []any:
		if s.Items != nil && s.Items.Value != nil {
			for _, item := range v {
				applyDefaults(s.Items.Value, item)
			}
		}
	}
}

// copyValue deep copies schema defaults so documents never share them
func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
