package codegen

import (
	"strings"

	"github.com/pugc-lang/pugc/internal/interp"
	"github.com/pugc-lang/pugc/internal/ir"
)

// toParts converts the escaper/interpolator's segments (spec.md §4.4) into
// the ir.Part fragments codegen attaches to text/inline-content nodes.
func toParts(segs []interp.Segment) []ir.Part {
	var out []ir.Part
	for _, s := range segs {
		switch s.Kind {
		case interp.Literal:
			out = append(out, ir.Part{Kind: ir.PartLiteral, Text: s.Text})
		case interp.Escaped:
			out = append(out, ir.Part{Kind: ir.PartEscaped, Expr: s.Expr})
		case interp.Raw:
			out = append(out, ir.Part{Kind: ir.PartRaw, Expr: s.Expr})
		case interp.InlineTag:
			out = append(out, expandInlineTag(s.Text)...)
		}
	}
	return out
}

// expandInlineTag flattens a "#[tag content]" inline-tag interpolation
// (spec.md §4.4) into literal/expression parts at compile time, reusing
// the same tag grammar a line tag uses. An inline tag carrying a "(...)"
// attribute list or "&attributes" is not expanded — it falls back to
// literal passthrough of the original source rather than silently dropping
// the attributes.
func expandInlineTag(raw string) []ir.Part {
	trimmed := strings.TrimSpace(raw)
	spec, rest, ok := parseTag(trimmed)
	if !ok || rest != "" || spec.HasAttrs || spec.MergeExpr != "" {
		return []ir.Part{{Kind: ir.PartLiteral, Text: "#[" + raw + "]"}}
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(spec.Name)
	if spec.ID != "" {
		b.WriteString(` id="`)
		b.WriteString(spec.ID)
		b.WriteByte('"')
	}
	if len(spec.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(spec.Classes, " "))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	parts := []ir.Part{{Kind: ir.PartLiteral, Text: b.String()}}
	if spec.HasContent {
		switch spec.Op {
		case "!=":
			parts = append(parts, ir.Part{Kind: ir.PartRaw, Expr: spec.Content})
		case "=":
			parts = append(parts, ir.Part{Kind: ir.PartEscaped, Expr: spec.Content})
		default:
			if segs, err := interp.Parse(spec.Content); err == nil {
				parts = append(parts, toParts(segs)...)
			}
		}
	}
	parts = append(parts, ir.Part{Kind: ir.PartLiteral, Text: "</" + spec.Name + ">"})
	return parts
}
