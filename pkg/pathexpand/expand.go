// Package pathexpand expands bash-style brace and glob path expressions into
// concrete absolute file paths
package pathexpand

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const magicChars = "*?["

// ErrNoMatch is returned when an expression does not match any file
var ErrNoMatch = errors.New("the expression does not match any files")

// NoMatchError identifies the expression that matched nothing
type NoMatchError struct {
	Expression string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoMatch, e.Expression)
}

// Is lets errors.Is match ErrNoMatch
func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// Expand brace-expands and globs each expression and returns the absolute
// paths of all matches in expansion order. Every expression must match at
// least one existing path.
//
//	pathexpand.Expand("./{test,doc}/*.go")
func Expand(expressions ...string) ([]string, error) {
	var matches []string

	for _, expression := range expressions {
		var found []string
		for _, pattern := range Braces(expression) {
			names, err := glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid path expression %q: %w", expression, err)
			}
			found = append(found, names...)
		}

		if len(found) == 0 {
			return nil, &NoMatchError{Expression: expression}
		}

		matches = append(matches, found...)
	}

	for i, name := range matches {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
		}
		matches[i] = abs
	}

	return matches, nil
}

// glob matches pattern like filepath.Glob, except that wildcard segments do
// not match names starting with a dot unless the segment itself starts with
// one, and a pattern with an unterminated character class is taken literally
func glob(pattern string) ([]string, error) {
	names, err := filepath.Glob(pattern)
	if errors.Is(err, filepath.ErrBadPattern) {
		if _, statErr := os.Lstat(pattern); statErr != nil {
			return nil, nil
		}
		return []string{pattern}, nil
	}
	if err != nil {
		return nil, err
	}

	visible := names[:0]
	for _, name := range names {
		if !matchesHidden(pattern, name) {
			visible = append(visible, name)
		}
	}

	return visible, nil
}

// matchesHidden reports whether a wildcard segment of pattern matched a dot
// file in name. Segments are compared from the end since Glob cleans the
// directory part of its matches.
func matchesHidden(pattern, name string) bool {
	patternParts := strings.Split(pattern, string(filepath.Separator))
	nameParts := strings.Split(name, string(filepath.Separator))

	for i, j := len(patternParts)-1, len(nameParts)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		segment := patternParts[i]
		if !strings.ContainsAny(segment, magicChars) || strings.HasPrefix(segment, ".") {
			continue
		}
		if strings.HasPrefix(nameParts[j], ".") {
			return true
		}
	}

	return false
}
