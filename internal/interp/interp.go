// Package interp converts raw template text into a sequence of literal and
// host-expression segments (spec.md §4.4). Codegen stitches the segments
// into a host-script string expression and, in parallel, into ir.Parts for
// the reference runtime — the same duality used throughout internal/codegen.
package interp

import (
	"fmt"

	"github.com/pugc-lang/pugc/internal/lex"
)

// SegmentKind classifies one piece of interpolated text.
type SegmentKind int

const (
	// Literal is verbatim output text (already escape-unquoted).
	Literal SegmentKind = iota
	// Escaped is a host expression whose value is HTML-escaped at render
	// time: #{...} / #(...).
	Escaped
	// Raw is a host expression emitted unescaped: ${...}.
	Raw
	// InlineTag is a nested tag expression spliced inline: #[...].
	InlineTag
)

// Segment is one literal run or one host expression found while scanning
// template text.
type Segment struct {
	Kind SegmentKind
	Text string // Literal text, or InlineTag's inner tag source
	Expr string // Escaped/Raw host expression source
}

// UnterminatedError reports a dangling #{, ${, or #[ with no matching close.
type UnterminatedError struct {
	Open string
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated %s interpolation", e.Open)
}

// Parse scans raw template text and returns its literal/expression
// segments. The scan is idempotent on already-escaped output: a literal
// backslash not followed by a recognized escape target passes through
// unchanged.
func Parse(raw string) ([]Segment, error) {
	var segs []Segment
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			segs = append(segs, Segment{Kind: Literal, Text: string(lit)})
			lit = lit[:0]
		}
	}

	i := 0
	for i < len(raw) {
		c := raw[i]

		if (c == '\\' || c == '`') && i+1 < len(raw) {
			next := raw[i+1]
			if next == '$' || next == '`' || next == '\\' {
				lit = append(lit, next)
				i += 2
				continue
			}
		}

		if c == '#' && i+1 < len(raw) && (raw[i+1] == '{' || raw[i+1] == '(') {
			open, close := raw[i+1], matchingClose(raw[i+1])
			inner, closeIdx, ok := lex.Balanced(raw, i+1, open, close)
			if !ok {
				return nil, &UnterminatedError{Open: "#" + string(open)}
			}
			flush()
			segs = append(segs, Segment{Kind: Escaped, Expr: inner})
			i = closeIdx + 1
			continue
		}

		if c == '#' && i+1 < len(raw) && raw[i+1] == '[' {
			inner, closeIdx, ok := lex.Balanced(raw, i+1, '[', ']')
			if !ok {
				return nil, &UnterminatedError{Open: "#["}
			}
			flush()
			segs = append(segs, Segment{Kind: InlineTag, Text: inner})
			i = closeIdx + 1
			continue
		}

		if c == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			inner, closeIdx, ok := lex.Balanced(raw, i+1, '{', '}')
			if !ok {
				return nil, &UnterminatedError{Open: "${"}
			}
			flush()
			segs = append(segs, Segment{Kind: Raw, Expr: inner})
			i = closeIdx + 1
			continue
		}

		lit = append(lit, c)
		i++
	}
	flush()
	return segs, nil
}

func matchingClose(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ')'
}
