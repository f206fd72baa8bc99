package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		"reference.annotations": []any{"/ref/annotations.json"},
		"reference.masking":     "/ref/masking.tab",
		"bam_stats.sample_size": 500,
		"bam_stats.sample_cap":  1000,
		"cluster.max_files":     float64(200),
		"cluster.split_only":    false,
		"skip_stage.validate":   true,
		"output_dir":            "/output",
		"illustrate.width":      1000.5,
		"libraries": map[string]any{
			"B": map[string]any{"disease_status": "normal", "protocol": "genome", "assign": []any{"/in/b.tab"}},
			"A": map[string]any{
				"disease_status": "diseased",
				"protocol":       "transcriptome",
				"assign":         []string{"/in/a.tab", "conv"},
				"bam_file":       "/bams/a.bam",
			},
		},
		"convert": map[string]any{
			"conv": map[string]any{"file_type": "delly", "inputs": []any{"/raw/a.vcf"}},
		},
	}
}

func TestDocument_Clone(t *testing.T) {
	doc := sampleDocument()

	clone, err := doc.Clone()
	require.NoError(t, err)

	assert.Equal(t, float64(500), clone["bam_stats.sample_size"])
	assert.Equal(t, []any{"/in/a.tab", "conv"}, clone["libraries"].(map[string]any)["A"].(map[string]any)["assign"])

	clone["libraries"].(map[string]any)["A"].(map[string]any)["assign"] = []any{}
	lib, err := doc.Library("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"/in/a.tab", "conv"}, lib.Assign)
}

func TestDocument_Truthy(t *testing.T) {
	doc := Document{
		"false":  false,
		"true":   true,
		"zero":   float64(0),
		"empty":  "",
		"list":   []any{"a"},
		"nolist": []any{},
		"null":   nil,
	}

	tests := map[string]bool{
		"false":   false,
		"true":    true,
		"zero":    false,
		"empty":   false,
		"list":    true,
		"nolist":  false,
		"null":    false,
		"missing": false,
	}

	for key, expected := range tests {
		assert.Equal(t, expected, doc.Truthy(key), key)
	}
}

func TestDocument_Int(t *testing.T) {
	doc := sampleDocument()

	n, err := doc.Int("cluster.max_files")
	require.NoError(t, err)
	assert.Equal(t, 200, n)

	n, err = doc.Int("bam_stats.sample_size")
	require.NoError(t, err)
	assert.Equal(t, 500, n)

	_, err = doc.Int("illustrate.width")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = doc.Int("output_dir")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = doc.Int("cluster.missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDocument_StringList(t *testing.T) {
	doc := sampleDocument()

	list, err := doc.StringList("reference.annotations")
	require.NoError(t, err)
	assert.Equal(t, []string{"/ref/annotations.json"}, list)

	list, err = doc.StringList("reference.masking")
	require.NoError(t, err)
	assert.Equal(t, []string{"/ref/masking.tab"}, list)

	_, err = doc.StringList("cluster.max_files")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDocument_Sections(t *testing.T) {
	doc := sampleDocument()

	assert.Equal(t, []string{"A", "B"}, doc.LibraryNames())
	assert.Equal(t, []string{"reference.annotations", "reference.masking"}, doc.ReferenceKeys())
	assert.Equal(t, []string{"conv"}, doc.ConversionAliases())
	assert.True(t, doc.IsConversion("conv"))
	assert.False(t, doc.IsConversion("/in/a.tab"))

	lib, err := doc.Library("A")
	require.NoError(t, err)
	assert.Equal(t, Library{
		Name:          "A",
		DiseaseStatus: "diseased",
		Protocol:      "transcriptome",
		Assign:        []string{"/in/a.tab", "conv"},
		BamFile:       "/bams/a.bam",
	}, lib)

	_, err = doc.Library("C")
	assert.ErrorIs(t, err, ErrLibraryNotFound)

	conv, ok := doc.Conversion("conv")
	require.True(t, ok)
	assert.Equal(t, Conversion{Alias: "conv", FileType: "delly", Inputs: []string{"/raw/a.vcf"}}, conv)

	dir, ok := doc.OutputDir()
	assert.True(t, ok)
	assert.Equal(t, "/output", dir)
}

func TestDocument_EmptySections(t *testing.T) {
	doc := Document{}

	assert.Empty(t, doc.LibraryNames())
	assert.Empty(t, doc.ConversionAliases())
	assert.False(t, doc.IsConversion("anything"))

	_, ok := doc.OutputDir()
	assert.False(t, ok)
}

func TestGetByPrefix(t *testing.T) {
	prefixed := GetByPrefix(sampleDocument(), "bam_stats.")

	assert.Len(t, prefixed, 2)
	assert.Equal(t, 500, prefixed["sample_size"])
	assert.Contains(t, prefixed, "sample_cap")
}

func TestConvertedOutput(t *testing.T) {
	assert.Equal(t, "/out/converted_outputs/conv.tab", ConvertedOutput("/out", "conv"))
	assert.Equal(t, "/out/converted_outputs/conv.tab", ConvertedOutput("/out/", "conv"))
	assert.Equal(t, "./converted_outputs/conv.tab", ConvertedOutput(".", "conv"))
	assert.Equal(t, "converted_outputs/conv.tab", ConvertedOutput("", "conv"))
}
