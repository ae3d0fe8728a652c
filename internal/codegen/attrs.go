package codegen

import (
	"github.com/pugc-lang/pugc/internal/ir"
	"github.com/pugc-lang/pugc/internal/lex"
)

// buildAttrs converts a raw "(...)" attribute-list body into ir.Attr pairs
// via the shared lex.SplitAttrs splitter (spec.md §4.3).
func buildAttrs(raw string) []ir.Attr {
	pairs := lex.SplitAttrs(raw)
	out := make([]ir.Attr, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, ir.Attr{
			Name:   p.Name,
			Expr:   p.Expr,
			Escape: p.Escape,
			Bare:   p.Bare,
		})
	}
	return out
}
