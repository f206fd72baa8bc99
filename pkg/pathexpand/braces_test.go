package pathexpand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBraces(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   []string
	}{
		{name: "no braces", expression: "a/b.txt", expected: []string{"a/b.txt"}},
		{name: "comma list", expression: "./{test,doc}/*.go", expected: []string{"./test/*.go", "./doc/*.go"}},
		{name: "keeps order", expression: "{b,a}", expected: []string{"b", "a"}},
		{name: "empty alternative", expression: "file{,.gz}", expected: []string{"file", "file.gz"}},
		{name: "two groups", expression: "{a,b}{1,2}", expected: []string{"a1", "a2", "b1", "b2"}},
		{name: "nested", expression: "x{a,b{c,d}}y", expected: []string{"xay", "xbcy", "xbdy"}},
		{name: "integer range", expression: "chr{1..3}.bed", expected: []string{"chr1.bed", "chr2.bed", "chr3.bed"}},
		{name: "reverse range", expression: "{3..1}", expected: []string{"3", "2", "1"}},
		{name: "stepped range", expression: "{1..7..3}", expected: []string{"1", "4", "7"}},
		{name: "zero padded", expression: "{08..10}", expected: []string{"08", "09", "10"}},
		{name: "character range", expression: "{a..c}", expected: []string{"a", "b", "c"}},
		{name: "single element is literal", expression: "{a}", expected: []string{"{a}"}},
		{name: "unbalanced is literal", expression: "{a,b", expected: []string{"{a,b"}},
		{name: "literal group before expandable one", expression: "{x}/{a,b}", expected: []string{"{x}/a", "{x}/b"}},
		{name: "escaped brace", expression: `\{a,b\}`, expected: []string{"{a,b}"}},
		{name: "escaped comma", expression: `{a\,b,c}`, expected: []string{"a,b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Braces(tt.expression))
		})
	}
}
