package pathexpand

import (
	"strconv"
	"strings"
)

// Braces performs bash-style brace expansion of expression. Comma lists
// ({a,b}), nested groups, integer ranges ({1..10..2}, zero padded when either
// bound is) and character ranges ({a..e}) are expanded in order. Braces that
// are unbalanced or contain neither a comma nor a range are kept literally.
// A backslash escapes the following brace or comma.
func Braces(expression string) []string {
	expanded := expand(expression)
	for i, s := range expanded {
		expanded[i] = unescape(s)
	}
	return expanded
}

func expand(s string) []string {
	for start := 0; start < len(s); start++ {
		if s[start] == '\\' {
			start++
			continue
		}
		if s[start] != '{' {
			continue
		}

		end := matchingBrace(s, start)
		if end < 0 {
			continue
		}

		alternatives := alternativesOf(s[start+1 : end])
		if alternatives == nil {
			continue
		}

		prefix := s[:start]
		suffixes := expand(s[end+1:])

		var out []string
		for _, alt := range alternatives {
			for _, a := range expand(alt) {
				for _, suffix := range suffixes {
					out = append(out, prefix+a+suffix)
				}
			}
		}
		return out
	}

	return []string{s}
}

// matchingBrace returns the index of the brace closing the one at start, or
// -1 when it is unbalanced
func matchingBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// alternativesOf splits the body of a brace group. It returns nil when the
// group is not expandable.
func alternativesOf(body string) []string {
	var (
		parts []string
		depth int
		last  int
	)

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[last:i])
				last = i + 1
			}
		}
	}

	if parts != nil {
		return append(parts, body[last:])
	}

	return sequence(body)
}

// sequence expands x..y[..incr] ranges
func sequence(body string) []string {
	bounds := strings.Split(body, "..")
	if len(bounds) != 2 && len(bounds) != 3 {
		return nil
	}

	step := 1
	if len(bounds) == 3 {
		incr, err := strconv.Atoi(bounds[2])
		if err != nil {
			return nil
		}
		if incr < 0 {
			incr = -incr
		}
		if incr != 0 {
			step = incr
		}
	}

	if from, err := strconv.Atoi(bounds[0]); err == nil {
		to, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil
		}
		width := 0
		if padded(bounds[0]) || padded(bounds[1]) {
			width = max(len(bounds[0]), len(bounds[1]))
		}
		return intRange(from, to, step, width)
	}

	if len(bounds[0]) == 1 && len(bounds[1]) == 1 && isLetter(bounds[0][0]) && isLetter(bounds[1][0]) {
		return charRange(bounds[0][0], bounds[1][0], step)
	}

	return nil
}

func intRange(from, to, step, width int) []string {
	if from > to {
		step = -step
	}

	var out []string
	for n := from; (step > 0 && n <= to) || (step < 0 && n >= to); n += step {
		out = append(out, pad(n, width))
	}
	return out
}

func charRange(from, to byte, step int) []string {
	if from > to {
		step = -step
	}

	var out []string
	for c := int(from); (step > 0 && c <= int(to)) || (step < 0 && c >= int(to)); c += step {
		out = append(out, string(rune(c)))
	}
	return out
}

func padded(bound string) bool {
	bound = strings.TrimPrefix(bound, "-")
	return len(bound) > 1 && bound[0] == '0'
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if width == 0 {
		return s
	}

	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
		width--
	}
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return sign + s
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte("{},", s[i+1]) >= 0 {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
