// Package rows counts data rows in (optionally gzipped) tabular input files
package rows

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// CompressedSuffix marks files that are read through gzip
const CompressedSuffix = ".gz"

// Count returns the cumulative number of rows in paths. Blank lines and lines
// starting with '#' are ignored and identical lines within one file are
// counted once. Duplicates across different files are counted once per file.
func Count(paths []string) (int, error) {
	total := 0

	for _, path := range paths {
		n, err := countFile(path)
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

func countFile(path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from the validated config
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("failed to open compressed file %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	return countDistinct(r)
}

// countDistinct keeps the line terminator as part of the line, so a final
// line without a newline is distinct from the same text followed by one.
// CRLF terminators count as LF.
func countDistinct(r io.Reader) (int, error) {
	reader := bufio.NewReader(r)
	seen := make(map[string]struct{})

	for {
		line, err := reader.ReadString('\n')
		if line != "" && !strings.HasPrefix(line, "#") && strings.TrimSpace(line) != "" {
			if strings.HasSuffix(line, "\r\n") {
				line = strings.TrimSuffix(line, "\r\n") + "\n"
			}
			seen[line] = struct{}{}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	return len(seen), nil
}
