// Package rendering renders text templates over a validated configuration
// document, e.g. container bind arguments or per-library job manifests
package rendering

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/derive"
	"github.com/bcgsc/mavis-config/pkg/stage"
)

// TemplateEngine provides template rendering with Sprig functions and the
// configuration helpers
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine() *TemplateEngine {
	funcMap := sprig.TxtFuncMap()
	funcMap["libraryInputs"] = derive.LibraryInputs
	funcMap["bindings"] = derive.SingularityBindings
	funcMap["guessBatches"] = derive.GuessTotalBatches
	funcMap["byPrefix"] = func(doc config.Document, prefix string) config.Document {
		return config.GetByPrefix(doc, prefix)
	}

	return &TemplateEngine{
		funcMap: funcMap,
	}
}

// Render renders a template with the given variables
func (t *TemplateEngine) Render(content string, variables map[string]any) (string, error) {
	tmpl, err := template.New("config").Funcs(t.funcMap).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// BuildVariables builds template variables from a validated document
func (t *TemplateEngine) BuildVariables(doc config.Document, st stage.Stage) map[string]any {
	outputDir, _ := doc.OutputDir()

	libraries := make([]map[string]any, 0, len(doc.LibraryNames()))
	for _, name := range doc.LibraryNames() {
		lib, err := doc.Library(name)
		if err != nil {
			continue
		}
		libraries = append(libraries, map[string]any{
			"name":           lib.Name,
			"disease_status": lib.DiseaseStatus,
			"protocol":       lib.Protocol,
			"assign":         lib.Assign,
			"bam_file":       lib.BamFile,
		})
	}

	return map[string]any{
		"config":      doc,
		"stage":       st.String(),
		"output_dir":  outputDir,
		"libraries":   libraries,
		"conversions": doc.ConversionAliases(),
	}
}

// BuildEnvironmentVariables builds the environment for pipeline jobs run in a
// singularity container
func BuildEnvironmentVariables(doc config.Document, st stage.Stage) ([]string, error) {
	bindings, err := derive.SingularityBindings(doc)
	if err != nil {
		return nil, err
	}

	outputDir, _ := doc.OutputDir()

	env := []string{
		fmt.Sprintf("MAVIS_STAGE=%s", st),
		fmt.Sprintf("MAVIS_OUTPUT_DIR=%s", outputDir),
		fmt.Sprintf("MAVIS_LIBRARIES=%s", strings.Join(doc.LibraryNames(), ",")),
		fmt.Sprintf("SINGULARITY_BINDPATH=%s", strings.Join(bindings, ",")),
	}

	// One variable per library listing its raw inputs
	for _, name := range doc.LibraryNames() {
		inputs, err := derive.LibraryInputs(doc, name)
		if err != nil {
			return nil, err
		}
		env = append(env, fmt.Sprintf("MAVIS_LIBRARY_%s_INPUTS=%s", envName(name), strings.Join(inputs, ",")))
	}

	return env, nil
}

func envName(name string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name))
}
