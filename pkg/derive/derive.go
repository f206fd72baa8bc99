// Package derive computes facts the pipeline needs from a validated
// configuration document
package derive

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/observability"
	"github.com/bcgsc/mavis-config/pkg/rows"
)

// Batch estimation settings
const (
	SettingMaxFiles           = "cluster.max_files"
	SettingMinClustersPerFile = "cluster.min_clusters_per_file"
)

// ErrInvalidSetting is returned when a batch estimation setting is not positive
var ErrInvalidSetting = errors.New("invalid setting")

// LibraryInputs returns the raw inputs of the named library. Assignments that
// name a conversion are replaced by that conversion's inputs.
func LibraryInputs(doc config.Document, name string) ([]string, error) {
	lib, err := doc.Library(name)
	if err != nil {
		return nil, err
	}

	inputs := make([]string, 0, len(lib.Assign))
	for _, assignment := range lib.Assign {
		if conv, ok := doc.Conversion(assignment); ok {
			inputs = append(inputs, conv.Inputs...)
			continue
		}
		inputs = append(inputs, assignment)
	}

	return inputs, nil
}

// SingularityBindings returns the container bind mounts needed to run the
// pipeline: output_dir read-write, then every directory holding a library
// input, bam file or reference file read-only. Directories inside output_dir
// are already covered by its binding.
func SingularityBindings(doc config.Document) ([]string, error) {
	outputDir, ok := doc.OutputDir()
	if !ok {
		return nil, fmt.Errorf("%w: %s", config.ErrKeyNotFound, config.KeyOutputDir)
	}

	outputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, name := range doc.LibraryNames() {
		libInputs, err := LibraryInputs(doc, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, libInputs...)

		lib, err := doc.Library(name)
		if err != nil {
			return nil, err
		}
		if lib.BamFile != "" {
			inputs = append(inputs, lib.BamFile)
		}
	}

	for _, key := range doc.ReferenceKeys() {
		files, err := doc.StringList(key)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, files...)
	}

	dirs := map[string]struct{}{}
	for _, input := range inputs {
		dir, err := filepath.Abs(filepath.Dir(input))
		if err != nil {
			return nil, err
		}
		if within(dir, outputDir) {
			continue
		}
		dirs[dir] = struct{}{}
	}

	readOnly := make([]string, 0, len(dirs))
	for dir := range dirs {
		readOnly = append(readOnly, dir)
	}
	sort.Strings(readOnly)

	bindings := make([]string, 0, len(readOnly)+1)
	bindings = append(bindings, outputDir+":"+outputDir)
	for _, dir := range readOnly {
		bindings = append(bindings, dir+":"+dir+":ro")
	}

	return bindings, nil
}

// GuessTotalBatches estimates how many cluster batches the given inputs
// should be split into. When the rows per batch at maximum parallelism still
// reach the minimum, the maximum is used; otherwise just enough batches are
// made to keep each one at the minimum.
func GuessTotalBatches(doc config.Document, inputFiles []string) (int, error) {
	maxFiles, err := positiveSetting(doc, SettingMaxFiles)
	if err != nil {
		return 0, err
	}

	minRows, err := positiveSetting(doc, SettingMinClustersPerFile)
	if err != nil {
		return 0, err
	}

	total, err := rows.Count(inputFiles)
	if err != nil {
		return 0, err
	}
	observability.RecordRowsCounted(total)

	if int(math.RoundToEven(float64(total)/float64(maxFiles))) >= minRows {
		return maxFiles, nil
	}

	return int(math.Ceil(float64(total) / float64(minRows))), nil
}

// LibraryBatches estimates the batch count of every library from its inputs
func LibraryBatches(doc config.Document) (map[string]int, error) {
	batches := make(map[string]int)

	for _, name := range doc.LibraryNames() {
		inputs, err := LibraryInputs(doc, name)
		if err != nil {
			return nil, err
		}

		count, err := GuessTotalBatches(doc, inputs)
		if err != nil {
			return nil, fmt.Errorf("library %s: %w", name, err)
		}
		batches[name] = count
	}

	return batches, nil
}

func positiveSetting(doc config.Document, key string) (int, error) {
	value, err := doc.Int(key)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidSetting, key, value)
	}
	return value, nil
}

// within reports whether dir is root or one of its descendants
func within(dir, root string) bool {
	if dir == root {
		return true
	}
	return strings.HasPrefix(dir, strings.TrimSuffix(root, string(filepath.Separator))+string(filepath.Separator))
}
