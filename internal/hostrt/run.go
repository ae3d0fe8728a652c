package hostrt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/filters"
	"github.com/pugc-lang/pugc/internal/ir"
)

// blockCtx is the call-site block a mixin body's "block" line renders,
// captured as a closure over the calling scope the way the real host
// runtime's out-of-band "block" function parameter would be.
type blockCtx struct {
	nodes []*ir.Node
	env   *Env
}

type runner struct {
	prog    *ir.Program
	opts    Options
	xml     bool
	filters filters.Provider
	block   *blockCtx
}

// Run interprets prog directly against data, producing the same HTML an
// artifact built by Artifact would, without needing an external host
// engine to execute it — the path spec.md §8's scenarios are actually
// exercised through.
func Run(prog *ir.Program, data map[string]interface{}, opts Options) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*runtimeErr)
			if !ok {
				panic(r)
			}
			err = &diag.RuntimeError{Cause: re.cause, PugLine: re.line, PugPath: re.path}
		}
	}()

	rn := &runner{prog: prog, opts: opts, xml: prog.XML, filters: filters.Default()}
	env := newEnv(nil)
	env.Bind("data", data)

	var b strings.Builder
	rn.renderNodes(&b, prog.Body, env, "", false)
	return b.String(), nil
}

type runtimeErr struct {
	cause error
	line  int
	path  string
}

func (rn *runner) fail(n *ir.Node, err error) {
	panic(&runtimeErr{cause: err, line: n.SrcLine, path: n.SrcPath})
}

func (rn *runner) eval(n *ir.Node, src string, env *Env) interface{} {
	e, err := ParseExpr(src)
	if err != nil {
		rn.fail(n, fmt.Errorf("parsing %q: %w", src, err))
	}
	v, err := e.Eval(env)
	if err != nil {
		rn.fail(n, err)
	}
	return v
}

func (rn *runner) effectiveOpts() Options {
	if rn.xml {
		return xmlOptions()
	}
	return rn.opts
}

// inLiteral is true when any ancestor element is in the literal-tag set
// (spec.md §3/§4.5), suppressing indentation for every line in this
// subtree regardless of how deeply it is nested under that ancestor.
func (rn *runner) renderNodes(b *strings.Builder, nodes []*ir.Node, env *Env, indent string, inLiteral bool) {
	var ifChainOpen bool // did the most recent if/elseif in this sibling run already render?
	for _, n := range nodes {
		header := ""
		if n.Kind == ir.NodeCodeBlock {
			header = strings.TrimSpace(firstWordLower(n.Header))
		}
		switch header {
		case "if":
			cond := rn.eval(n, afterKeyword(n.Header, "if"), env)
			ifChainOpen = truthy(cond)
			if ifChainOpen {
				rn.renderNodes(b, n.Body, newEnv(env), indent, inLiteral)
			}
			continue
		case "elseif":
			if !ifChainOpen {
				cond := rn.eval(n, afterKeyword(n.Header, header), env)
				ifChainOpen = truthy(cond)
				if ifChainOpen {
					rn.renderNodes(b, n.Body, newEnv(env), indent, inLiteral)
				}
			}
			continue
		case "else":
			if !ifChainOpen {
				rn.renderNodes(b, n.Body, newEnv(env), indent, inLiteral)
				ifChainOpen = true
			}
			continue
		}
		ifChainOpen = false
		rn.renderNode(b, n, env, indent, inLiteral)
	}
}

func firstWordLower(s string) string {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '(' {
		i++
	}
	return strings.ToLower(s[:i])
}

func afterKeyword(header, kw string) string {
	s := strings.TrimSpace(header)
	s = strings.TrimPrefix(s, kw)
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "{")
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

func (rn *runner) renderNode(b *strings.Builder, n *ir.Node, env *Env, indent string, inLiteral bool) {
	if inLiteral {
		indent = ""
	}
	switch n.Kind {
	case ir.NodeDoctype:
		if n.SetsXML {
			rn.xml = true
		}
		b.WriteString(n.DoctypeLiteral)
		b.WriteByte('\n')

	case ir.NodeText:
		b.WriteString(indent)
		b.WriteString(rn.partsText(n, n.Parts, env))
		b.WriteByte('\n')

	case ir.NodeLiteralHTML:
		b.WriteString(indent)
		b.WriteString(rn.partsText(n, n.Parts, env))
		b.WriteByte('\n')

	case ir.NodeComment:
		if n.Comment == nil {
			return
		}
		b.WriteString(indent)
		b.WriteString("<!-- ")
		b.WriteString(rn.partsText(n, n.Comment, env))
		b.WriteString(" -->\n")

	case ir.NodeRawCode:
		for _, l := range n.RawLines {
			rn.execAssign(n, l, env)
		}

	case ir.NodeCodeBlock:
		rn.renderCodeBlock(b, n, env, indent, inLiteral)

	case ir.NodeMixinDef:
		// collected into Program.Mixins up-front; nothing to do in body order.

	case ir.NodeMixinCall:
		rn.renderMixinCall(b, n, env, indent, inLiteral)

	case ir.NodeBlockCall:
		// Block content renders at the indent level of the "block" line's
		// own position inside the mixin body, using the caller's scope.
		if rn.block != nil {
			saved := rn.block
			rn.block = nil
			rn.renderNodes(b, saved.nodes, saved.env, indent, inLiteral)
			rn.block = saved
		}

	case ir.NodeFilterBlock:
		text := strings.Join(n.RawText, "\n")
		rendered, err := rn.filters.Run(n.FilterChain, text)
		if err != nil {
			rn.fail(n, err)
		}
		b.WriteString(indent)
		b.WriteString(rendered)
		b.WriteByte('\n')

	case ir.NodeElement:
		rn.renderElement(b, n, env, indent, inLiteral)
	}
}

func (rn *runner) execAssign(n *ir.Node, line string, env *Env) {
	name, src, ok := splitAssign(line)
	if !ok {
		return
	}
	v := rn.eval(n, src, env)
	env.Set(name, v)
}

// splitAssign recognizes "$name = expr", the only NodeRawCode shape the
// reference runtime executes; any other raw host statement (arbitrary
// imperative code the real host engine would run) is a no-op here.
func splitAssign(line string) (name, expr string, ok bool) {
	line = strings.TrimSpace(line)
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		if i+1 < len(line) && line[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && (line[i-1] == '!' || line[i-1] == '<' || line[i-1] == '>') {
			continue
		}
		lhs := strings.TrimSpace(line[:i])
		lhs = strings.TrimPrefix(lhs, "$")
		if lhs == "" || !isIdentLike(lhs) {
			return "", "", false
		}
		return lhs, strings.TrimSpace(line[i+1:]), true
	}
	return "", "", false
}

func isIdentLike(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

func (rn *runner) renderCodeBlock(b *strings.Builder, n *ir.Node, env *Env, indent string, inLiteral bool) {
	kw := firstWordLower(n.Header)
	switch kw {
	case "for", "foreach":
		rn.renderLoop(b, n, env, indent, inLiteral)
	case "while":
		cond := afterKeyword(n.Header, kw)
		guard := 0
		for truthy(rn.eval(n, cond, env)) && guard < 100000 {
			rn.renderNodes(b, n.Body, newEnv(env), indent, inLiteral)
			guard++
		}
	case "switch":
		rn.renderSwitch(b, n, env, indent, inLiteral)
	default:
		// Unrecognized control construct (try/catch and similar): the
		// reference runtime has no host engine behind it, so it simply
		// runs the body once in a fresh child scope.
		rn.renderNodes(b, n.Body, newEnv(env), indent, inLiteral)
	}
}

// renderLoop supports "for (x in expr)" / "foreach (x in expr)" and the
// classic C-style "for (init; cond; post)" forms — the two shapes the
// generator's control-keyword table actually distinguishes.
func (rn *runner) renderLoop(b *strings.Builder, n *ir.Node, env *Env, indent string, inLiteral bool) {
	header := afterKeyword(n.Header, firstWordLower(n.Header))
	if idx := strings.Index(header, " in "); idx >= 0 {
		varName := strings.TrimPrefix(strings.TrimSpace(header[:idx]), "$")
		collSrc := strings.TrimSpace(header[idx+4:])
		coll := rn.eval(n, collSrc, env)
		switch items := coll.(type) {
		case []interface{}:
			for _, it := range items {
				child := newEnv(env)
				child.Bind(varName, it)
				rn.renderNodes(b, n.Body, child, indent, inLiteral)
			}
		case map[string]interface{}:
			keys := make([]string, 0, len(items))
			for k := range items {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				child := newEnv(env)
				child.Bind(varName, items[k])
				rn.renderNodes(b, n.Body, child, indent, inLiteral)
			}
		}
		return
	}

	parts := strings.SplitN(header, ";", 3)
	if len(parts) != 3 {
		rn.renderNodes(b, n.Body, newEnv(env), indent, inLiteral)
		return
	}
	child := newEnv(env)
	rn.execAssign(n, strings.TrimSpace(parts[0]), child)
	cond := strings.TrimSpace(parts[1])
	post := strings.TrimSpace(parts[2])
	guard := 0
	for (cond == "" || truthy(rn.eval(n, cond, child))) && guard < 100000 {
		rn.renderNodes(b, n.Body, newEnv(child), indent, inLiteral)
		rn.applyPost(n, post, child)
		guard++
	}
}

func (rn *runner) applyPost(n *ir.Node, post string, env *Env) {
	post = strings.TrimSpace(post)
	if strings.HasSuffix(post, "++") {
		name := strings.TrimPrefix(strings.TrimSuffix(post, "++"), "$")
		v, _ := env.Get(name)
		f, _ := toNumber(v)
		env.Set(name, f+1)
		return
	}
	if strings.HasSuffix(post, "--") {
		name := strings.TrimPrefix(strings.TrimSuffix(post, "--"), "$")
		v, _ := env.Get(name)
		f, _ := toNumber(v)
		env.Set(name, f-1)
		return
	}
	rn.execAssign(n, post, env)
}

// renderSwitch evaluates the switch subject once, then scans the arm
// children for the first one that matches. Arms carry no "case" keyword:
// any non-control "- expr" line inside a switch frame is itself the arm's
// comparison expression, except "default" which names the fallback arm.
// A simplified, non-fallthrough model, sufficient for the arms the
// generator ever produces.
func (rn *runner) renderSwitch(b *strings.Builder, n *ir.Node, env *Env, indent string, inLiteral bool) {
	subject := rn.eval(n, afterKeyword(n.Header, "switch"), env)
	var defaultArm *ir.Node
	for _, arm := range n.Body {
		if arm.Kind != ir.NodeCodeBlock {
			continue
		}
		header := strings.TrimSpace(arm.Header)
		if firstWordLower(header) == "default" {
			defaultArm = arm
			continue
		}
		val := rn.eval(arm, header, env)
		if valuesEqual(subject, val) {
			rn.renderNodes(b, arm.Body, newEnv(env), indent, inLiteral)
			return
		}
	}
	if defaultArm != nil {
		rn.renderNodes(b, defaultArm.Body, newEnv(env), indent, inLiteral)
	}
}

func (rn *runner) renderMixinCall(b *strings.Builder, n *ir.Node, callerEnv *Env, indent string, inLiteral bool) {
	mixin, ok := rn.prog.Mixins[n.MixinName]
	if !ok {
		rn.fail(n, fmt.Errorf("undefined mixin %q", n.MixinName))
	}
	callEnv := newEnv(nil)
	for i, p := range mixin.Params {
		var v interface{}
		if i < len(n.Args) {
			v = rn.eval(n, n.Args[i].Expr, callerEnv)
		} else if p.Default != "" {
			v = rn.eval(n, p.Default, callerEnv)
		}
		callEnv.Bind(p.Name, v)
	}
	// Named args (argsRaw "name=expr") override positional binding.
	for _, a := range n.Args {
		if a.Name != "" {
			callEnv.Bind(a.Name, rn.eval(n, a.Expr, callerEnv))
		}
	}

	savedBlock := rn.block
	if n.CallBody != nil {
		rn.block = &blockCtx{nodes: n.CallBody, env: callerEnv}
	} else {
		rn.block = nil
	}
	rn.renderNodes(b, mixin.Body, callEnv, indent, inLiteral)
	rn.block = savedBlock
}

func (rn *runner) partsText(n *ir.Node, parts []ir.Part, env *Env) string {
	var sb strings.Builder
	for _, p := range parts {
		switch p.Kind {
		case ir.PartLiteral:
			sb.WriteString(p.Text)
		case ir.PartEscaped:
			sb.WriteString(encodeHTML(stringify(rn.eval(n, p.Expr, env))))
		case ir.PartRaw:
			sb.WriteString(stringify(rn.eval(n, p.Expr, env)))
		}
	}
	return sb.String()
}

func encodeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// indent arrives already blanked by renderNode when inLiteral is set; this
// parameter only decides whether the element's own children inherit the
// suppression.
func (rn *runner) renderElement(b *strings.Builder, n *ir.Node, env *Env, indent string, inLiteral bool) {
	opts := rn.effectiveOpts()

	if n.Tag == "" {
		for _, l := range n.LiteralBody {
			b.WriteString(l)
			b.WriteByte('\n')
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

	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(n.Tag)
	b.WriteString(rn.attrsText(n, env))

	switch {
	case selfClose:
		b.WriteString(" />\n")
		return
	case isVoid && empty:
		b.WriteString(">\n")
		return
	case empty && !n.ExplicitSelf && !isVoid:
		b.WriteString("></")
		b.WriteString(n.Tag)
		b.WriteString(">\n")
		return
	}
	b.WriteByte('>')

	// Inline text content (a tag followed by "= expr"/"!= expr"/plain
	// text on the same source line) stays on the tag's own line; only
	// real child elements and literal blocks get their own lines.
	if len(n.Inline) > 0 {
		b.WriteString(rn.partsText(n, n.Inline, env))
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">\n")
		return
	}
	b.WriteByte('\n')

	childInLiteral := inLiteral || isLiteral
	childIndent := indent
	if !inLiteral {
		if isLiteral {
			childIndent = ""
		} else {
			childIndent = indent + "\t"
		}
	}

	if len(n.LiteralBody) > 0 {
		for _, l := range n.LiteralBody {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	} else {
		rn.renderNodes(b, n.Children, newEnv(env), childIndent, childInLiteral)
	}

	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">\n")
}

func (rn *runner) attrsText(n *ir.Node, env *Env) string {
	plan := n.BuildAttrPlan()
	var b strings.Builder
	for _, a := range plan {
		switch a.Kind {
		case ir.PlanClass:
			var vals []interface{}
			if len(a.ClassLiterals) > 0 {
				vals = append(vals, strings.Join(a.ClassLiterals, " "))
			}
			for _, e := range a.ClassExprs {
				vals = append(vals, rn.eval(n, e, env))
			}
			cls := mergeClasses(vals)
			if cls != "" {
				rn.writeAttr(&b, "class", cls, false)
			}
		case ir.PlanStyle:
			var vals []interface{}
			for _, e := range a.StyleExprs {
				vals = append(vals, rn.eval(n, e, env))
			}
			st := mergeStyles(vals)
			if st != "" {
				rn.writeAttr(&b, "style", st, false)
			}
		default:
			if a.Bare {
				rn.writeAttr(&b, a.Name, true, false)
				continue
			}
			rn.writeAttr(&b, a.Name, rn.eval(n, a.Expr, env), a.Escape)
		}
	}
	if n.MergeExpr != "" {
		merged := rn.eval(n, n.MergeExpr, env)
		if m, ok := merged.(map[string]interface{}); ok {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				rn.writeAttr(&b, k, m[k], k != "class" && k != "style")
			}
		}
	}
	return b.String()
}

// writeAttr mirrors the generated artifact's out_attr helper exactly,
// including its properties-flag-dependent rendering of a bare boolean
// attribute (spec.md §8 property 6).
func (rn *runner) writeAttr(b *strings.Builder, name string, value interface{}, escape bool) {
	if value == nil || value == false {
		return
	}
	if value == true {
		if rn.effectiveOpts().Properties {
			b.WriteByte(' ')
			b.WriteString(name)
			return
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(name)
		b.WriteString(`"`)
		return
	}
	s := stringify(value)
	if escape {
		s = encodeHTML(s)
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(s)
	b.WriteString(`"`)
}

func mergeClasses(vals []interface{}) string {
	seen := map[string]bool{}
	var out []string
	var flatten func(v interface{})
	flatten = func(v interface{}) {
		switch t := v.(type) {
		case nil, false:
			return
		case []interface{}:
			for _, e := range t {
				flatten(e)
			}
		case map[string]interface{}:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if truthy(t[k]) {
					flatten(k)
				}
			}
		default:
			for _, tok := range strings.Fields(stringify(t)) {
				if !seen[tok] {
					seen[tok] = true
					out = append(out, tok)
				}
			}
		}
	}
	for _, v := range vals {
		flatten(v)
	}
	return strings.Join(out, " ")
}

func mergeStyles(vals []interface{}) string {
	var out []string
	for _, v := range vals {
		switch t := v.(type) {
		case nil, false:
			continue
		case map[string]interface{}:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				out = append(out, kebab(k)+": "+stringify(t[k]))
			}
		default:
			s := strings.TrimSpace(stringify(t))
			s = strings.TrimSuffix(s, ";")
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return strings.Join(out, "; ")
}
