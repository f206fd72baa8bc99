package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_ReadOnly(t *testing.T) {
	source := Document{
		"bam_stats.sample_size": 500,
		"cluster.limit_to_chr":  []any{"1", "2"},
	}

	defaults, err := NewDefaults(source)
	require.NoError(t, err)

	source["bam_stats.sample_size"] = 1
	copied := defaults.Document()
	copied["cluster.limit_to_chr"].([]any)[0] = "X"

	value, ok := defaults.Get("bam_stats.sample_size")
	require.True(t, ok)
	assert.Equal(t, float64(500), value)

	chrs, _ := defaults.Get("cluster.limit_to_chr")
	assert.Equal(t, []any{"1", "2"}, chrs)

	assert.Equal(t, 2, defaults.Len())
	assert.Equal(t, []string{"bam_stats.sample_size", "cluster.limit_to_chr"}, defaults.Keys())
	assert.Equal(t, Document{"sample_size": float64(500)}, defaults.ByPrefix("bam_stats."))
}
