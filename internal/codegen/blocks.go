package codegen

import (
	"strings"

	"github.com/pugc-lang/pugc/internal/source"
)

func indentOf(text string) int {
	n := 0
	for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
		n++
	}
	return n
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// captureDeeper returns the run of lines strictly more indented than
// lines[i], and the index just past it (blank lines kept).
func captureDeeper(lines []source.Line, i int) ([]source.Line, int) {
	base := indentOf(lines[i].Text)
	j := i + 1
	for j < len(lines) {
		if isBlank(lines[j].Text) {
			j++
			continue
		}
		if indentOf(lines[j].Text) <= base {
			break
		}
		j++
	}
	return lines[i+1 : j], j
}

// minIndent returns the smallest indent among non-blank lines, or 0.
func minIndent(lines []source.Line) int {
	min := -1
	for _, l := range lines {
		if isBlank(l.Text) {
			continue
		}
		n := indentOf(l.Text)
		if min == -1 || n < min {
			min = n
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// stripMinIndent strips the common leading indent from every non-blank
// line, returning plain text (origin discarded — used for verbatim
// literal/raw-code/filter bodies).
func stripMinIndent(lines []source.Line) []string {
	base := minIndent(lines)
	out := make([]string, len(lines))
	for i, l := range lines {
		if isBlank(l.Text) {
			out[i] = ""
			continue
		}
		if len(l.Text) >= base {
			out[i] = l.Text[base:]
		} else {
			out[i] = strings.TrimLeft(l.Text, " \t")
		}
	}
	return out
}
