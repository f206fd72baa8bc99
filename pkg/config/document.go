// Package config models the pipeline configuration document: a flat mapping of
// dotted keys (reference.annotations, cluster.max_files) plus the libraries
// and convert sections
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Well known top-level keys
const (
	KeyLibraries       = "libraries"
	KeyConvert         = "convert"
	KeyOutputDir       = "output_dir"
	ReferencePrefix    = "reference."
	ConvertedOutputDir = "converted_outputs"
)

// Library record keys
const (
	FieldAssign        = "assign"
	FieldBamFile       = "bam_file"
	FieldDiseaseStatus = "disease_status"
	FieldProtocol      = "protocol"
	FieldFileType      = "file_type"
	FieldInputs        = "inputs"
)

// Document is a pipeline configuration document
type Document map[string]any

// Library is a typed view of a libraries entry
type Library struct {
	Name          string
	DiseaseStatus string
	Protocol      string
	Assign        []string
	BamFile       string
}

// Conversion is a typed view of a convert entry
type Conversion struct {
	Alias    string
	FileType string
	Inputs   []string
}

// Clone returns a deep copy of d normalized to JSON types: numbers become
// float64, lists become []any and nested mappings map[string]any
func (d Document) Clone() (Document, error) {
	data, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	out := Document{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return out, nil
}

// Has reports whether key is present
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Truthy reports whether key is present with a value that is not false,
// zero, empty or null
func (d Document) Truthy(key string) bool {
	return truthy(d[key])
}

// Int returns the integer value of key
func (d Document) Int(key string) (int, error) {
	value, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s is not an integer (%v)", ErrInvalidType, key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s is %T, expected a number", ErrInvalidType, key, value)
	}
}

// String returns the string value of key, or "" when absent
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// StringList returns key as a list of strings. A single string is treated as
// a one element list.
func (d Document) StringList(key string) ([]string, error) {
	value, ok := d[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	list, ok := toStrings(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, expected a list of strings", ErrInvalidType, key, value)
	}

	return list, nil
}

// OutputDir returns the output_dir setting
func (d Document) OutputDir() (string, bool) {
	dir, ok := d[KeyOutputDir].(string)
	return dir, ok
}

// ReferenceKeys returns every reference.* key in sorted order
func (d Document) ReferenceKeys() []string {
	var keys []string
	for key := range d {
		if strings.HasPrefix(key, ReferencePrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// LibraryNames returns the library names in sorted order
func (d Document) LibraryNames() []string {
	return sortedKeys(d.section(KeyLibraries))
}

// Library returns the typed view of the named library
func (d Document) Library(name string) (Library, error) {
	record, ok := d.section(KeyLibraries)[name].(map[string]any)
	if !ok {
		return Library{}, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
	}

	assign, _ := toStrings(record[FieldAssign])
	lib := Library{Name: name, Assign: assign}
	lib.DiseaseStatus, _ = record[FieldDiseaseStatus].(string)
	lib.Protocol, _ = record[FieldProtocol].(string)
	lib.BamFile, _ = record[FieldBamFile].(string)

	return lib, nil
}

// LibraryRecord returns the raw mutable record of the named library
func (d Document) LibraryRecord(name string) (map[string]any, bool) {
	record, ok := d.section(KeyLibraries)[name].(map[string]any)
	return record, ok
}

// ConversionAliases returns the convert aliases in sorted order
func (d Document) ConversionAliases() []string {
	return sortedKeys(d.section(KeyConvert))
}

// IsConversion reports whether name is a key of the convert section
func (d Document) IsConversion(name string) bool {
	_, ok := d.section(KeyConvert)[name]
	return ok
}

// Conversion returns the typed view of the named conversion
func (d Document) Conversion(alias string) (Conversion, bool) {
	record, ok := d.section(KeyConvert)[alias].(map[string]any)
	if !ok {
		return Conversion{}, false
	}

	inputs, _ := toStrings(record[FieldInputs])
	conv := Conversion{Alias: alias, Inputs: inputs}
	conv.FileType, _ = record[FieldFileType].(string)

	return conv, true
}

// ConversionRecord returns the raw mutable record of the named conversion
func (d Document) ConversionRecord(alias string) (map[string]any, bool) {
	record, ok := d.section(KeyConvert)[alias].(map[string]any)
	return record, ok
}

// ConvertedOutput returns where the conversion step writes alias. An empty
// outputDir gives a path relative to the working directory.
func ConvertedOutput(outputDir, alias string) string {
	name := filepath.Join(ConvertedOutputDir, alias+".tab")
	if outputDir == "" {
		return name
	}
	return strings.TrimSuffix(outputDir, "/") + "/" + name
}

// GetByPrefix returns every entry whose key starts with prefix, keyed by the
// remainder of the key
func GetByPrefix(values map[string]any, prefix string) Document {
	out := Document{}
	for key, value := range values {
		if strings.HasPrefix(key, prefix) {
			out[strings.TrimPrefix(key, prefix)] = value
		}
	}
	return out
}

func (d Document) section(key string) map[string]any {
	section, _ := d[key].(map[string]any)
	return section
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func toStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
