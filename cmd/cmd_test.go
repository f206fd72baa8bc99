package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcgsc/mavis-config/internal/testutil"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args, resetting flags left over from earlier runs
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})

	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func writeConfig(t *testing.T, ws *testutil.Workspace, doc map[string]any) string {
	t.Helper()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	return ws.WriteFile(t, "config.json", string(data))
}

func pipelineConfig(t *testing.T) (*testutil.Workspace, string) {
	t.Helper()

	ws := testutil.NewWorkspace(t)
	files := ws.WriteFiles(t, "ref/annotations.json", "ref/genome.fa", "ref/masking.tab")
	ws.WriteFile(t, "data/tumour.tab", "#header\nrow1\nrow2\nrow3\n")

	path := writeConfig(t, ws, testutil.NewDocument(files[0],
		testutil.WithLibrary("tumour", ws.Path("data", "*.tab")),
		testutil.WithValue("reference.masking", []any{files[2]}),
		testutil.WithValue("output_dir", ws.Path("output")),
		testutil.WithValue("cluster.max_files", 10),
		testutil.WithValue("cluster.min_clusters_per_file", 2),
	))

	return ws, path
}

func TestLoadCLIConfig(t *testing.T) {
	cfg, err := LoadCLIConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging)
	assert.Equal(t, "", cfg.SchemaDir)
	assert.Equal(t, ":8080", cfg.Server.API.Addr)
	assert.Equal(t, ":9090", cfg.Server.MetricsAddr)
	require.NoError(t, cfg.Validate())

	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: debug\nschemaDir: /schemas\nmetricsAddr: :9999\napi:\n  addr: :7000\n"), 0o644))

	cfg, err = LoadCLIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging)
	assert.Equal(t, "/schemas", cfg.SchemaDir)
	assert.Equal(t, ":9999", cfg.Server.MetricsAddr)
	assert.Equal(t, ":7000", cfg.Server.API.Addr)

	cfg.Logging = "loud"
	assert.Error(t, cfg.Validate())
}

func TestStagesCommand(t *testing.T) {
	out, err := execute(t, "stages")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Regexp(t, `^NAME\s+VALUE\s+UPSTREAM$`, lines[0])
	assert.Regexp(t, `^ANNOTATE\s+annotate\s+setup,convert,cluster,validate$`, lines[1])
	assert.Regexp(t, `^SETUP\s+setup\s+-$`, lines[8])

	out, err = execute(t, "stages", "--plan", "summary", "--skip", "validate")
	require.NoError(t, err)
	assert.Equal(t, "setup\nconvert\ncluster\nannotate\npairing\nsummary\n", out)

	_, err = execute(t, "stages", "--plan", "assemble")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	ws, path := pipelineConfig(t)

	out, err := execute(t, "validate", path, "--stage", "annotate")
	require.NoError(t, err)

	validated := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(out), &validated))

	library := validated["libraries"].(map[string]any)["tumour"].(map[string]any)
	assert.Equal(t, []any{ws.Path("data", "tumour.tab")}, library["assign"])
	assert.Equal(t, []any{ws.Path("ref", "masking.tab")}, validated["reference.masking"])
	assert.Contains(t, validated, "bam_stats.sample_size")

	dest := ws.Path("normalized.yaml")
	out, err = execute(t, "validate", path, "--stage", "setup", "--output", "yaml", "--write", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(written), "skip_stage.validate: true")
}

func TestValidateCommand_Invalid(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	path := writeConfig(t, ws, map[string]any{})

	_, err := execute(t, "validate", path, "--stage", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required property: reference.annotations")

	_, err = execute(t, "validate", path, "--stage", "SUMMARY")
	assert.Error(t, err)

	_, err = execute(t, "validate", path, "--output", "xml")
	assert.Error(t, err)
}

func TestBindingsCommand(t *testing.T) {
	ws, path := pipelineConfig(t)

	out, err := execute(t, "bindings", path)
	require.NoError(t, err)

	output := ws.Path("output")
	assert.Equal(t, []string{
		output + ":" + output,
		ws.Path("data") + ":" + ws.Path("data") + ":ro",
		ws.Path("ref") + ":" + ws.Path("ref") + ":ro",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	out, err = execute(t, "bindings", path, "--env", "--stage", "cluster")
	require.NoError(t, err)
	assert.Contains(t, out, "MAVIS_STAGE=cluster\n")
	assert.Contains(t, out, "MAVIS_LIBRARY_TUMOUR_INPUTS="+ws.Path("data", "tumour.tab")+"\n")
}

func TestInputsAndBatchesCommands(t *testing.T) {
	ws, path := pipelineConfig(t)

	out, err := execute(t, "inputs", path, "--library", "tumour")
	require.NoError(t, err)
	assert.Equal(t, ws.Path("data", "tumour.tab")+"\n", out)

	_, err = execute(t, "inputs", path, "--library", "normal")
	assert.Error(t, err)

	out, err = execute(t, "batches", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^tumour\s+2$`, lines[1])

	out, err = execute(t, "batches", path, "--library", "tumour")
	require.NoError(t, err)
	assert.Regexp(t, `tumour\s+2`, out)
}

func TestDefaultsCommand(t *testing.T) {
	out, err := execute(t, "defaults", "--prefix", "bam_stats.", "--output", "json")
	require.NoError(t, err)

	values := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Len(t, values, 4)
	assert.Contains(t, values, "sample_size")

	out, err = execute(t, "defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "cluster.max_files: 200")
}

func TestRenderCommand(t *testing.T) {
	ws, path := pipelineConfig(t)
	tmpl := ws.WriteFile(t, "job.tmpl", `{{range .libraries}}{{.name}} {{guessBatches $.config (libraryInputs $.config .name)}}{{end}}`)

	out, err := execute(t, "render", path, "--template", tmpl)
	require.NoError(t, err)
	assert.Equal(t, "tumour 2", out)

	_, err = execute(t, "render", path, "--template", ws.Path("missing.tmpl"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+Release)
	assert.Contains(t, out, "OS/Arch: "+GOOS+"/"+GOARCH)
}
