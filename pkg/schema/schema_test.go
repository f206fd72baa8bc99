package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSet(t *testing.T) Set {
	t.Helper()
	set, err := Load("")
	require.NoError(t, err)
	return set
}

func TestLoad_Embedded(t *testing.T) {
	set := loadSet(t)

	assert.Equal(t, VariantConfig, set.Config.Name())
	assert.Equal(t, VariantOverlay, set.Overlay.Name())
	assert.Equal(t, VariantOverlay, set.ForStage(stage.Overlay).Name())
	assert.Equal(t, VariantConfig, set.ForStage(stage.Setup).Name())
	assert.Equal(t, VariantConfig, set.ForStage("unknown").Name())
}

func TestLoad_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	definition := []byte(`{"type": "object", "properties": {"output_dir": {"type": "string", "default": "/out"}}}`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.json"), definition, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "overlay.json"), definition, 0o644))

	set, err := Load(tmpDir)
	require.NoError(t, err)

	defaults, err := Defaults(set.Config)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Len())
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewOpenAPIEngine_Invalid(t *testing.T) {
	_, err := NewOpenAPIEngine("broken", []byte(`{"type": `))
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestDefaults(t *testing.T) {
	set := loadSet(t)

	defaults, err := Defaults(set.Config)
	require.NoError(t, err)

	value, ok := defaults.Get("validate.trans_min_mapping_quality")
	require.True(t, ok)
	assert.Equal(t, float64(0), value)

	assert.Equal(t, 80, defaults.Len())

	prefixed := defaults.ByPrefix("bam_stats.")
	assert.Len(t, prefixed, 4)
	assert.Contains(t, prefixed, "sample_size")

	_, ok = defaults.Get("libraries")
	assert.False(t, ok)
}

func TestOpenAPIEngine_Validate(t *testing.T) {
	set := loadSet(t)

	tests := []struct {
		name        string
		doc         config.Document
		errContains string
	}{
		{
			name: "valid",
			doc: config.Document{
				"reference.annotations": []any{"/ref/a.json"},
				"libraries": map[string]any{
					"AAAA": map[string]any{"disease_status": "diseased", "protocol": "genome", "assign": []any{"/in/a.tab"}},
				},
			},
		},
		{
			name: "library missing disease status",
			doc: config.Document{
				"libraries": map[string]any{"AAAA": map[string]any{"protocol": "genome", "assign": []any{}}},
			},
			errContains: "disease_status",
		},
		{
			name: "library missing assign",
			doc: config.Document{
				"libraries": map[string]any{"AAAA": map[string]any{"disease_status": "diseased", "protocol": "genome"}},
			},
			errContains: "assign",
		},
		{
			name:        "wrong type",
			doc:         config.Document{"cluster.max_files": "many"},
			errContains: "cluster.max_files",
		},
		{
			name: "conversion without inputs",
			doc: config.Document{
				"convert": map[string]any{"dlly": map[string]any{"file_type": "delly"}},
			},
			errContains: "inputs",
		},
		{
			name:        "empty reference list",
			doc:         config.Document{"reference.annotations": []any{}},
			errContains: "reference.annotations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := set.Config.Validate(tt.doc)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOpenAPIEngine_ApplyDefaults(t *testing.T) {
	set := loadSet(t)

	doc := map[string]any{
		"cluster.max_files": float64(10),
		"libraries": map[string]any{
			"AAAA": map[string]any{"disease_status": "diseased", "protocol": "genome", "assign": []any{}},
		},
		"convert": map[string]any{
			"dlly": map[string]any{"file_type": "delly", "inputs": []any{"/raw/*.vcf"}},
		},
	}

	set.Config.ApplyDefaults(doc)

	assert.Equal(t, float64(10), doc["cluster.max_files"])
	assert.Equal(t, float64(50), doc["cluster.min_clusters_per_file"])
	assert.Equal(t, false, doc["cluster.uninformative_filter"])

	library := doc["libraries"].(map[string]any)["AAAA"].(map[string]any)
	assert.Equal(t, false, library["strand_specific"])

	conversion := doc["convert"].(map[string]any)["dlly"].(map[string]any)
	assert.Equal(t, true, conversion["assume_no_untemplated"])
	assert.NotContains(t, doc, "output_dir")
}

func TestOpenAPIEngine_DefaultsAreNotShared(t *testing.T) {
	set := loadSet(t)

	first := map[string]any{}
	set.Config.ApplyDefaults(first)
	first["cluster.limit_to_chr"].([]any)[0] = "changed"

	second := map[string]any{}
	set.Config.ApplyDefaults(second)
	assert.Equal(t, "1", second["cluster.limit_to_chr"].([]any)[0])
}
