package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// Workspace is a temporary directory holding test input files
type Workspace struct {
	Dir string
}

// NewWorkspace creates a workspace removed when the test completes
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	return &Workspace{Dir: dir}
}

// Path joins parts onto the workspace directory
func (w *Workspace) Path(parts ...string) string {
	return filepath.Join(append([]string{w.Dir}, parts...)...)
}

// WriteFile writes content to name (relative to the workspace) and returns its
// absolute path
func (w *Workspace) WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := w.Path(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// WriteFiles creates each named file with placeholder content
func (w *Workspace) WriteFiles(t *testing.T, names ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, w.WriteFile(t, name, "test\n"))
	}

	return paths
}

// Logger returns a logger that discards its output
func Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// DocumentOption customizes a test document
type DocumentOption func(config.Document)

// WithLibrary adds a library record
func WithLibrary(name string, assign ...string) DocumentOption {
	return func(doc config.Document) {
		libraries, ok := doc[config.KeyLibraries].(map[string]any)
		if !ok {
			libraries = map[string]any{}
			doc[config.KeyLibraries] = libraries
		}

		entries := make([]any, 0, len(assign))
		for _, a := range assign {
			entries = append(entries, a)
		}

		libraries[name] = map[string]any{
			config.FieldDiseaseStatus: "diseased",
			config.FieldProtocol:      "genome",
			config.FieldAssign:        entries,
		}
	}
}

// WithConversion adds a convert record
func WithConversion(alias, fileType string, inputs ...string) DocumentOption {
	return func(doc config.Document) {
		conversions, ok := doc[config.KeyConvert].(map[string]any)
		if !ok {
			conversions = map[string]any{}
			doc[config.KeyConvert] = conversions
		}

		entries := make([]any, 0, len(inputs))
		for _, input := range inputs {
			entries = append(entries, input)
		}

		conversions[alias] = map[string]any{
			config.FieldFileType: fileType,
			config.FieldInputs:   entries,
		}
	}
}

// WithValue sets a top-level key
func WithValue(key string, value any) DocumentOption {
	return func(doc config.Document) {
		doc[key] = value
	}
}

// NewDocument returns a document whose reference.annotations and
// reference.reference_genome point at existing, with the validate stage
// skipped so no bam files are needed
func NewDocument(existing string, opts ...DocumentOption) config.Document {
	doc := config.Document{
		"reference.annotations":      []any{existing},
		"reference.reference_genome": []any{existing},
		"skip_stage.validate":        true,
	}

	for _, opt := range opts {
		opt(doc)
	}

	return doc
}
