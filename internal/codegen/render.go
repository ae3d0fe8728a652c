package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pugc-lang/pugc/internal/ir"
)

// Render stringifies a compiled ir.Program into the textual host-script
// body (spec.md §4.5 items 2-3: "an opening accumulator … per-line
// emissions"). The preamble/epilogue skeleton comes from the text/template
// registry in templates.go; this function hand-assembles the
// context-sensitive per-line fragments with strings.Builder, exactly the
// split SPEC_FULL.md §4.5 describes.
func Render(prog *ir.Program, opts Options) string {
	var b strings.Builder
	rc := &renderCtx{opts: opts, xml: prog.XML}
	for name, m := range prog.Mixins {
		rc.renderMixinDef(&b, name, m)
	}
	rc.renderNodes(&b, prog.Body, 0, "", false)
	return b.String()
}

type renderCtx struct {
	opts Options
	xml  bool
}

func (rc *renderCtx) effectiveOpts() Options {
	if rc.xml {
		return xmlOptions()
	}
	return rc.opts
}

func (rc *renderCtx) trace(b *strings.Builder, n *ir.Node) {
	fmt.Fprintf(b, "  src_line = %d; src_path = %q;\n", n.SrcLine, n.SrcPath)
}

// indentExpr returns the host expression producing this line's leading
// whitespace: empty inside a literal-tag ancestor (inLiteral), a fixed
// literal outside mixins otherwise, or "pug_indent + N tabs" inside one.
// inLiteral must reflect the whole ancestor chain, not just the immediate
// parent, so a second level of nesting under e.g. "pre" doesn't reinsert
// indentation (spec.md §3/§4.5).
func indentExpr(inLiteral bool, prefix string, depth int) string {
	if inLiteral {
		return `""`
	}
	if prefix == "" {
		return strconv.Quote(strings.Repeat("\t", depth))
	}
	return prefix + ` + ` + strconv.Quote(strings.Repeat("\t", depth))
}

func (rc *renderCtx) renderMixinDef(b *strings.Builder, name string, m *ir.Mixin) {
	fmt.Fprintf(b, "  function mixin_%s(pug_indent", name)
	for _, p := range m.Params {
		fmt.Fprintf(b, ", %s", p.Name)
	}
	if m.HasBlock {
		b.WriteString(", block")
	}
	b.WriteString(") {\n")
	for _, p := range m.Params {
		if p.Default != "" {
			fmt.Fprintf(b, "    if (%s === undefined) { %s = %s; }\n", p.Name, p.Name, p.Default)
		}
	}
	rc.renderNodes(b, m.Body, 0, "pug_indent", false)
	b.WriteString("  }\n")
}

// renderNodes emits one fragment per node. depth is the element-nesting
// tab count (outside mixins); relPrefix is the "pug_indent" host
// expression prefix to use instead when non-empty (inside a mixin body);
// inLiteral is true when any ancestor element is in the literal-tag set,
// suppressing indentation for every line in this subtree regardless of
// how deeply it is nested under that ancestor.
func (rc *renderCtx) renderNodes(b *strings.Builder, nodes []*ir.Node, depth int, relPrefix string, inLiteral bool) {
	for _, n := range nodes {
		rc.renderNode(b, n, depth, relPrefix, inLiteral)
	}
}

func (rc *renderCtx) renderNode(b *strings.Builder, n *ir.Node, depth int, relPrefix string, inLiteral bool) {
	switch n.Kind {
	case ir.NodeDoctype:
		if n.SetsXML {
			rc.xml = true
		}
		fmt.Fprintf(b, "  __out.push(%s);\n", strconv.Quote(n.DoctypeLiteral))

	case ir.NodeText:
		rc.trace(b, n)
		fmt.Fprintf(b, "  __out.push(%s + %s);\n", indentExpr(inLiteral, relPrefix, depth), rc.partsExpr(n.Parts))

	case ir.NodeLiteralHTML:
		fmt.Fprintf(b, "  __out.push(%s + %s);\n", indentExpr(inLiteral, relPrefix, depth), rc.partsExpr(n.Parts))

	case ir.NodeComment:
		if n.Comment == nil {
			return
		}
		fmt.Fprintf(b, "  __out.push(%s + \"<!-- \" + %s + \" -->\");\n", indentExpr(inLiteral, relPrefix, depth), rc.partsExpr(n.Comment))

	case ir.NodeRawCode:
		for _, l := range n.RawLines {
			fmt.Fprintf(b, "  %s\n", l)
		}

	case ir.NodeCodeBlock:
		rc.trace(b, n)
		header := strings.TrimRight(n.Header, " \t")
		if strings.HasSuffix(header, "{") {
			fmt.Fprintf(b, "  %s\n", header)
		} else {
			fmt.Fprintf(b, "  %s {\n", header)
		}
		if n.IsSwitch {
			rc.renderSwitchArms(b, n.Body, depth, relPrefix, inLiteral)
		} else {
			rc.renderNodes(b, n.Body, depth, relPrefix, inLiteral)
		}
		b.WriteString("  }\n")

	case ir.NodeMixinDef:
		// handled up-front by Render via Program.Mixins

	case ir.NodeMixinCall:
		rc.trace(b, n)
		var args []string
		args = append(args, indentExpr(inLiteral, relPrefix, depth))
		for _, a := range n.Args {
			args = append(args, a.Expr)
		}
		if n.CallBody != nil {
			var blockBody strings.Builder
			rc.renderNodes(&blockBody, n.CallBody, 0, indentExpr(inLiteral, relPrefix, depth)+` + "\t"`, inLiteral)
			fmt.Fprintf(b, "  mixin_%s(%s, function(pug_indent) {\n%s  });\n", n.MixinName, strings.Join(args, ", "), blockBody.String())
		} else {
			fmt.Fprintf(b, "  mixin_%s(%s);\n", n.MixinName, strings.Join(args, ", "))
		}

	case ir.NodeBlockCall:
		b.WriteString("  if (block) { block(pug_indent); }\n")

	case ir.NodeFilterBlock:
		text := strconv.Quote(strings.Join(n.RawText, "\n"))
		fmt.Fprintf(b, "  __out.push(%s + apply_filters(%q, %s));\n", indentExpr(inLiteral, relPrefix, depth), n.FilterChain, text)

	case ir.NodeElement:
		rc.renderElement(b, n, depth, relPrefix, inLiteral)
	}
}

// renderSwitchArms renders a switch statement's direct arm children
// without trace emission: they're structural case labels, not host
// expressions that can raise (spec.md §4.5 "Inside a switch parent, trace
// emission is skipped for its case arms"). Anything nested inside an
// arm's own body goes back through the normal renderNode dispatch, tracing
// as usual.
func (rc *renderCtx) renderSwitchArms(b *strings.Builder, arms []*ir.Node, depth int, relPrefix string, inLiteral bool) {
	for _, arm := range arms {
		if arm.Kind != ir.NodeCodeBlock {
			rc.renderNode(b, arm, depth, relPrefix, inLiteral)
			continue
		}
		header := strings.TrimRight(arm.Header, " \t")
		if strings.HasSuffix(header, "{") {
			fmt.Fprintf(b, "  %s\n", header)
		} else {
			fmt.Fprintf(b, "  %s {\n", header)
		}
		rc.renderNodes(b, arm.Body, depth, relPrefix, inLiteral)
		b.WriteString("  }\n")
	}
}

func (rc *renderCtx) partsExpr(parts []ir.Part) string {
	if len(parts) == 0 {
		return `""`
	}
	var pieces []string
	for _, p := range parts {
		switch p.Kind {
		case ir.PartLiteral:
			pieces = append(pieces, strconv.Quote(p.Text))
		case ir.PartEscaped:
			pieces = append(pieces, "out_enc("+p.Expr+")")
		case ir.PartRaw:
			pieces = append(pieces, "String("+p.Expr+")")
		}
	}
	return strings.Join(pieces, " + ")
}

func (rc *renderCtx) attrsExpr(n *ir.Node) string {
	plan := n.BuildAttrPlan()
	var pieces []string
	for _, a := range plan {
		switch a.Kind {
		case ir.PlanClass:
			var lit string
			if len(a.ClassLiterals) > 0 {
				lit = strconv.Quote(strings.Join(a.ClassLiterals, " "))
			} else {
				lit = `""`
			}
			args := append([]string{lit}, a.ClassExprs...)
			pieces = append(pieces, fmt.Sprintf(`out_attr("class", out_class(%s), false)`, strings.Join(args, ", ")))
		case ir.PlanStyle:
			pieces = append(pieces, fmt.Sprintf(`out_attr("style", out_style(%s), false)`, strings.Join(a.StyleExprs, ", ")))
		default:
			if a.Bare {
				pieces = append(pieces, fmt.Sprintf(`out_attr(%q, true, false)`, a.Name))
				continue
			}
			pieces = append(pieces, fmt.Sprintf(`out_attr(%q, %s, %t)`, a.Name, a.Expr, a.Escape))
		}
	}
	if n.MergeExpr != "" {
		pieces = append(pieces, fmt.Sprintf(`out_merged_attrs_text(%s)`, n.MergeExpr))
	}
	if len(pieces) == 0 {
		return `""`
	}
	return strings.Join(pieces, " + ")
}

func (rc *renderCtx) renderElement(b *strings.Builder, n *ir.Node, depth int, relPrefix string, inLiteral bool) {
	opts := rc.effectiveOpts()

	if n.Tag == "" {
		// bare "." literal block: no wrapping tag, raw verbatim lines.
		for _, l := range n.LiteralBody {
			fmt.Fprintf(b, "  __out.push(%s);\n", strconv.Quote(l))
		}
		return
	}

	isVoid := voidTags[n.Tag]
	isLiteral := literalTags[n.Tag]
	empty := len(n.Children) == 0 && len(n.Inline) == 0 && len(n.LiteralBody) == 0

	var selfClose bool
	switch {
	case n.ExplicitSelf:
		selfClose = empty
	case isVoid:
		selfClose = empty && opts.VoidSelfClose
	default:
		selfClose = empty && opts.ContainerSelfClose
	}

	rc.trace(b, n)
	open := fmt.Sprintf("<%s", n.Tag)
	attrsExpr := rc.attrsExpr(n)
	if selfClose {
		fmt.Fprintf(b, "  __out.push(%s + %s + %s + \" />\");\n", indentExpr(inLiteral, relPrefix, depth), strconv.Quote(open), attrsExpr)
		return
	}
	if isVoid && empty {
		fmt.Fprintf(b, "  __out.push(%s + %s + %s + \">\");\n", indentExpr(inLiteral, relPrefix, depth), strconv.Quote(open), attrsExpr)
		return
	}
	if empty && !n.ExplicitSelf && !isVoid {
		fmt.Fprintf(b, "  __out.push(%s + %s + %s + \"></%s>\");\n", indentExpr(inLiteral, relPrefix, depth), strconv.Quote(open), attrsExpr, n.Tag)
		return
	}

	// Inline text content stays on the tag's own line; real child
	// elements and literal blocks get their own lines.
	if len(n.Inline) > 0 {
		fmt.Fprintf(b, "  __out.push(%s + %s + %s + \">\" + %s + \"</%s>\");\n",
			indentExpr(inLiteral, relPrefix, depth), strconv.Quote(open), attrsExpr, rc.partsExpr(n.Inline), n.Tag)
		return
	}

	fmt.Fprintf(b, "  __out.push(%s + %s + %s + \">\");\n", indentExpr(inLiteral, relPrefix, depth), strconv.Quote(open), attrsExpr)

	childInLiteral := inLiteral || isLiteral
	childDepth := depth
	childPrefix := relPrefix
	if isLiteral && !inLiteral {
		childPrefix = ""
		childDepth = 0
	} else if !inLiteral {
		childDepth = depth + 1
	}

	if len(n.LiteralBody) > 0 {
		for _, l := range n.LiteralBody {
			fmt.Fprintf(b, "  __out.push(%s);\n", strconv.Quote(l))
		}
	} else {
		rc.renderNodes(b, n.Children, childDepth, childPrefix, childInLiteral)
	}

	fmt.Fprintf(b, "  __out.push(%s + \"</%s>\");\n", indentExpr(inLiteral, relPrefix, depth), n.Tag)
}
