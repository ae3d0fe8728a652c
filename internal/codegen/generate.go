// Package codegen implements spec.md §4.5: a single-pass walk over resolved
// template lines, driven by an explicit scope stack, that builds an
// ir.Program. internal/assemble + this package's own Render stringify that
// program into the textual host-script artifact; internal/hostrt
// interprets it directly.
package codegen

import (
	"fmt"
	"strings"

	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/interp"
	"github.com/pugc-lang/pugc/internal/ir"
	"github.com/pugc-lang/pugc/internal/lex"
	"github.com/pugc-lang/pugc/internal/source"
)

type frameKind int

const (
	frameRoot frameKind = iota
	frameElement
	frameCodeBlock
	frameMixinDef
	frameMixinCall
)

type frame struct {
	kind      frameKind
	indent    int
	container *[]*ir.Node
	isSwitch  bool
	mixin     *ir.Mixin
}

type generator struct {
	opts  Options
	xml   bool
	stack []*frame
	prog  *ir.Program
}

// Generate walks lines (already extends/include-resolved) into a compiled
// ir.Program.
func Generate(lines []source.Line, opts Options) (*ir.Program, error) {
	g := &generator{
		opts: opts,
		prog: &ir.Program{Mixins: map[string]*ir.Mixin{}},
	}
	g.stack = []*frame{{kind: frameRoot, indent: -1, container: &g.prog.Body}}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlank(line.Text) {
			i++
			continue
		}
		indent := indentOf(line.Text)
		g.popTo(indent)

		next, err := g.dispatch(lines, i, indent, line)
		if err != nil {
			return nil, err
		}
		i = next
	}
	g.popTo(-1)
	g.prog.XML = g.xml
	return g.prog, nil
}

func (g *generator) top() *frame { return g.stack[len(g.stack)-1] }

func (g *generator) popTo(indent int) {
	for len(g.stack) > 1 && indent <= g.top().indent {
		f := g.top()
		g.stack = g.stack[:len(g.stack)-1]
		if f.kind == frameMixinDef && f.mixin != nil {
			f.mixin.HasBlock = containsBlockCall(f.mixin.Body)
		}
	}
}

func (g *generator) push(f *frame) { g.stack = append(g.stack, f) }

func (g *generator) container() *[]*ir.Node { return g.top().container }

func (g *generator) append(n *ir.Node) { *g.container() = append(*g.container(), n) }

func (g *generator) inMixinDef() bool {
	for _, f := range g.stack {
		if f.kind == frameMixinDef {
			return true
		}
	}
	return false
}

func (g *generator) effectiveOpts() Options {
	if g.xml {
		return xmlOptions()
	}
	return g.opts
}

func parseErr(line source.Line, detail string) error {
	return diag.New(diag.ErrParse, line.Path, line.Num, detail)
}

// dispatch classifies one line per spec.md §4.5's table and returns the
// index of the next unprocessed line.
func (g *generator) dispatch(lines []source.Line, i, indent int, line source.Line) (int, error) {
	content := strings.TrimLeft(line.Text, " \t")

	switch {
	case strings.HasPrefix(content, "//-"):
		_, end := captureDeeper(lines, i)
		return end, nil

	case strings.HasPrefix(content, "//"):
		return g.genComment(lines, i, line, content)
	}

	if content == "-" {
		body, end := captureDeeper(lines, i)
		g.append(&ir.Node{Kind: ir.NodeRawCode, SrcLine: line.Num, SrcPath: line.Path, RawLines: stripMinIndent(body)})
		return end, nil
	}
	if strings.HasPrefix(content, "- ") {
		return g.genDashExpr(i, indent, line, strings.TrimSpace(content[2:]))
	}

	if chainSrc, tail, ok := lex.HasFilterHeader(content); ok {
		return g.genFilter(lines, i, line, chainSrc, tail)
	}

	if arg, ok := matchKeyword(content, "doctype"); ok {
		lit, xml := doctypeLiteral(arg)
		if xml {
			g.xml = true
		}
		g.append(&ir.Node{Kind: ir.NodeDoctype, SrcLine: line.Num, SrcPath: line.Path, DoctypeLiteral: lit, SetsXML: xml})
		return i + 1, nil
	}

	if strings.HasPrefix(content, "<") {
		segs, err := interp.Parse(content)
		if err != nil {
			return 0, parseErr(line, err.Error())
		}
		g.append(&ir.Node{Kind: ir.NodeLiteralHTML, SrcLine: line.Num, SrcPath: line.Path, Parts: toParts(segs)})
		return i + 1, nil
	}

	if name, ok := matchKeyword(content, "block"); ok {
		_ = name
		if g.inMixinDef() {
			g.append(&ir.Node{Kind: ir.NodeBlockCall, SrcLine: line.Num, SrcPath: line.Path})
			return i + 1, nil
		}
		// A bare "block" outside any mixin definition at this stage means
		// the resolver already spliced an extends override (or there is
		// no override and this is a no-op default-body marker); either
		// way nothing is emitted here and any children fall through to
		// the enclosing container untouched.
		return i + 1, nil
	}

	if rest, ok := matchKeyword(content, "mixin"); ok {
		name, params := parseMixinHeader(rest)
		mixin := &ir.Mixin{Name: name, Params: params}
		g.prog.Mixins[name] = mixin
		g.push(&frame{kind: frameMixinDef, indent: indent, container: &mixin.Body, mixin: mixin})
		return i + 1, nil
	}

	if strings.HasPrefix(content, "+") {
		name, argsRaw := parseMixinCallHead(content[1:])
		node := &ir.Node{Kind: ir.NodeMixinCall, SrcLine: line.Num, SrcPath: line.Path, MixinName: name, Args: buildCallArgs(argsRaw)}
		g.append(node)
		if hasDeeperChild(lines, i, indent) {
			g.push(&frame{kind: frameMixinCall, indent: indent, container: &node.CallBody})
		}
		return i + 1, nil
	}

	switch {
	case strings.HasPrefix(content, "!="):
		expr := strings.TrimSpace(content[2:])
		g.append(&ir.Node{Kind: ir.NodeText, SrcLine: line.Num, SrcPath: line.Path, Parts: []ir.Part{{Kind: ir.PartRaw, Expr: expr}}})
		return i + 1, nil

	case strings.HasPrefix(content, "="):
		expr := strings.TrimSpace(content[1:])
		g.append(&ir.Node{Kind: ir.NodeText, SrcLine: line.Num, SrcPath: line.Path, Parts: []ir.Part{{Kind: ir.PartEscaped, Expr: expr}}})
		return i + 1, nil

	case strings.HasPrefix(content, "|"):
		text := strings.TrimPrefix(strings.TrimPrefix(content, "|"), " ")
		segs, err := interp.Parse(text)
		if err != nil {
			return 0, parseErr(line, err.Error())
		}
		g.append(&ir.Node{Kind: ir.NodeText, SrcLine: line.Num, SrcPath: line.Path, Parts: toParts(segs)})
		return i + 1, nil
	}

	if strings.HasSuffix(content, ".") && hasDeeperChild(lines, i, indent) {
		if end, handled, err := g.tryLiteralBlock(lines, i, indent, line, content); handled || err != nil {
			return end, err
		}
	}

	if spec, rest, ok := parseTag(content); ok && rest == "" {
		return g.emitElementChain(lines, i, indent, line, spec)
	}

	return 0, parseErr(line, fmt.Sprintf("line fits no code generator rule: %q", content))
}

func (g *generator) genDashExpr(i, indent int, line source.Line, expr string) (int, error) {
	top := g.top()
	switchArm := top.kind == frameCodeBlock && top.isSwitch

	if switchArm && !isControlExpr(expr) {
		if w := armWarning(line, expr); w != nil {
			g.prog.Warnings = append(g.prog.Warnings, *w)
		}
	}

	if isControlExpr(expr) || switchArm || endsInOpenBrace(expr) {
		node := &ir.Node{
			Kind: ir.NodeCodeBlock, SrcLine: line.Num, SrcPath: line.Path,
			Header: expr, IsSwitch: isSwitchExpr(expr),
		}
		g.append(node)
		g.push(&frame{kind: frameCodeBlock, indent: indent, container: &node.Body, isSwitch: node.IsSwitch})
		return i + 1, nil
	}

	g.append(&ir.Node{Kind: ir.NodeRawCode, SrcLine: line.Num, SrcPath: line.Path, RawLines: []string{expr}})
	return i + 1, nil
}

// armWarning reports spec.md §9's switch-arm open question: the source
// emits a literal arm value unquoted, so the host language must accept it
// as a case label; flag it when it parses as neither a quoted string nor
// a numeric literal, since that's the ambiguous case most likely to be a
// mistake rather than a deliberate host expression.
func armWarning(line source.Line, expr string) *diag.Warning {
	val := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(expr), ":"))
	if val == "" || strings.EqualFold(firstWord(val), "default") {
		return nil
	}
	if isQuotedString(val) || isNumericLiteral(val) {
		return nil
	}
	return &diag.Warning{Diagnostic: diag.Diagnostic{
		Path:   line.Path,
		Line:   line.Num,
		Detail: fmt.Sprintf("switch arm %q is neither a quoted string nor a numeric literal", val),
	}}
}

func isQuotedString(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}

func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	if i == len(s) {
		return false
	}
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '.' && !seenDot {
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (g *generator) genComment(lines []source.Line, i int, line source.Line, content string) (int, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(content, "//"))
	body, end := captureDeeper(lines, i)

	top := g.top()
	inSwitch := top.kind == frameCodeBlock && top.isSwitch

	var raws []string
	if len(body) > 0 {
		raws = stripMinIndent(body)
	} else {
		raws = []string{rest}
	}

	if inSwitch {
		for idx, r := range raws {
			raws[idx] = "// " + r
		}
		g.append(&ir.Node{Kind: ir.NodeRawCode, SrcLine: line.Num, SrcPath: line.Path, RawLines: raws})
		return end, nil
	}

	segs, err := interp.Parse(strings.Join(raws, "\n"))
	if err != nil {
		return 0, parseErr(line, err.Error())
	}
	g.append(&ir.Node{Kind: ir.NodeComment, SrcLine: line.Num, SrcPath: line.Path, Comment: toParts(segs)})
	return end, nil
}

func (g *generator) genFilter(lines []source.Line, i int, line source.Line, chainSrc, tail string) (int, error) {
	chain := lex.ParseFilterChain(chainSrc)
	var raw []string
	var end int
	if strings.TrimSpace(tail) != "" {
		raw = []string{strings.TrimSpace(tail)}
		end = i + 1
	} else {
		body, e := captureDeeper(lines, i)
		raw = stripMinIndent(body)
		end = e
	}
	g.append(&ir.Node{
		Kind: ir.NodeFilterBlock, SrcLine: line.Num, SrcPath: line.Path,
		FilterChain: chainText(chain), RawText: raw,
	})
	return end, nil
}

// tryLiteralBlock handles "tag." (or bare ".") followed by a deeper block
// of verbatim text (spec.md §4.5). handled is false when content isn't
// actually this form (e.g. ordinary text that happens to end in "."),
// letting the caller fall through to the tag-grammar dispatch.
func (g *generator) tryLiteralBlock(lines []source.Line, i, indent int, line source.Line, content string) (int, bool, error) {
	head := content[:len(content)-1]
	if head == "" {
		body, end := captureDeeper(lines, i)
		g.append(&ir.Node{Kind: ir.NodeElement, SrcLine: line.Num, SrcPath: line.Path, LiteralBody: stripMinIndent(body)})
		return end, true, nil
	}
	spec, rest, ok := parseTag(head)
	if !ok || rest != "" || spec.HasContent || spec.HasExpand {
		return 0, false, nil
	}
	body, end := captureDeeper(lines, i)
	opts := g.effectiveOpts()
	node := &ir.Node{
		Kind: ir.NodeElement, SrcLine: line.Num, SrcPath: line.Path,
		Tag: resolveTagName(spec.Name, opts), ID: spec.ID, Classes: spec.Classes,
		Attrs: buildAttrs(spec.AttrsRaw), MergeExpr: spec.MergeExpr, ExplicitSelf: spec.SelfClose,
		LiteralBody: stripMinIndent(body),
	}
	g.append(node)
	return end, true, nil
}
