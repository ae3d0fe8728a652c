package codegen

import (
	"strings"

	"github.com/pugc-lang/pugc/internal/ir"
	"github.com/pugc-lang/pugc/internal/lex"
)

// parseMixinHeader parses the argument of "mixin <rest>" into the mixin's
// name and its formal parameter list.
func parseMixinHeader(rest string) (string, []ir.MixinParam) {
	name := rest
	var paramsRaw string
	if idx := strings.IndexByte(rest, '('); idx >= 0 {
		name = strings.TrimSpace(rest[:idx])
		if inner, _, ok := lex.Balanced(rest, idx, '(', ')'); ok {
			paramsRaw = inner
		}
	}
	var params []ir.MixinParam
	for _, p := range lex.SplitAttrs(paramsRaw) {
		if p.Bare {
			params = append(params, ir.MixinParam{Name: p.Name})
			continue
		}
		params = append(params, ir.MixinParam{Name: p.Name, Default: p.Expr})
	}
	return name, params
}

// parseMixinCallHead parses the text after "+" in "+name(args)" into the
// mixin name and the raw argument-list text.
func parseMixinCallHead(s string) (name, argsRaw string) {
	i := 0
	for i < len(s) && lex.IsIdentPart(s[i]) {
		i++
	}
	name = s[:i]
	if i < len(s) && s[i] == '(' {
		if inner, _, ok := lex.Balanced(s, i, '(', ')'); ok {
			argsRaw = inner
		}
	}
	return name, argsRaw
}

// buildCallArgs converts a mixin call's raw argument-list text into
// ir.CallArg pairs; a bare token becomes a positional argument.
func buildCallArgs(raw string) []ir.CallArg {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []ir.CallArg
	for _, p := range lex.SplitAttrs(raw) {
		if p.Bare {
			out = append(out, ir.CallArg{Expr: p.Name})
			continue
		}
		out = append(out, ir.CallArg{Name: p.Name, Expr: p.Expr})
	}
	return out
}

// containsBlockCall reports whether body (or anything nested in it)
// contains a NodeBlockCall — used to set Mixin.HasBlock once a mixin
// definition's frame is popped.
func containsBlockCall(body []*ir.Node) bool {
	for _, n := range body {
		if n == nil {
			continue
		}
		if n.Kind == ir.NodeBlockCall {
			return true
		}
		if containsBlockCall(n.Children) || containsBlockCall(n.Body) || containsBlockCall(n.CallBody) {
			return true
		}
	}
	return false
}

func chainText(chain []lex.FilterStep) string {
	var b strings.Builder
	for i, step := range chain {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(step.Name)
		if len(step.Args) == 0 {
			continue
		}
		b.WriteByte('(')
		for j, a := range step.Args {
			if j > 0 {
				b.WriteString(", ")
			}
			if a.Name != "" {
				b.WriteString(a.Name)
				b.WriteByte('=')
			}
			b.WriteString(a.Value)
		}
		b.WriteByte(')')
	}
	return b.String()
}
