// Package diag formats compile-time and runtime diagnostics, mapping
// generated-code failures back to original template coordinates
// (spec.md §4.6).
package diag

import (
	"fmt"
	"io/fs"
	"strings"
)

// Diagnostic is the shared payload every error kind in §7's taxonomy
// carries.
type Diagnostic struct {
	Path    string
	Line    int
	Detail  string
	Context int // lines before/after to show; 0 uses the package default
}

const defaultContext = 2

// Format renders path:line, a ±Context line source excerpt with a ">" marker
// on the offending line, then the detail. If the file can't be read the
// excerpt degrades to "(File not found: path:line)".
func Format(fsys fs.FS, d Diagnostic) string {
	ctx := d.Context
	if ctx <= 0 {
		ctx = defaultContext
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d\n", d.Path, d.Line)

	lines, err := readLines(fsys, d.Path)
	if err != nil {
		fmt.Fprintf(&b, "%s\n\n(File not found: %s:%d)", d.Detail, d.Path, d.Line)
		return b.String()
	}

	lo := d.Line - ctx
	if lo < 1 {
		lo = 1
	}
	hi := d.Line + ctx
	if hi > len(lines) {
		hi = len(lines)
	}

	width := len(fmt.Sprintf("%d", hi))
	for n := lo; n <= hi; n++ {
		marker := "  "
		if n == d.Line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%*d | %s\n", marker, width, n, lines[n-1])
	}
	b.WriteString("\n")
	b.WriteString(d.Detail)
	return b.String()
}

func readLines(fsys fs.FS, path string) ([]string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

// Warning is a non-fatal diagnostic collected alongside a successful
// compile (spec.md §9's switch-arm open question).
type Warning struct {
	Diagnostic
}

func (w Warning) String() string {
	return w.Detail + " (" + w.Path + ":" + fmt.Sprint(w.Line) + ")"
}
