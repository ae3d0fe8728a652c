package resolver

import (
	"fmt"
	"strings"

	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/lex"
	"github.com/pugc-lang/pugc/internal/source"
)

// parseInclude recognizes "include[:filter(args)?] <path>" and returns the
// parsed filter chain (nil if none) and the target path.
func parseInclude(text string) (chain []lex.FilterStep, path string, ok bool) {
	t := trimmed(text)
	const kw = "include"
	if !strings.HasPrefix(t, kw) {
		return nil, "", false
	}
	rest := t[len(kw):]
	if rest == "" {
		return nil, "", false
	}
	switch rest[0] {
	case ':':
		chainSrc, tail, _ := lex.HasFilterHeader(rest)
		chain = lex.ParseFilterChain(chainSrc)
		return chain, strings.TrimSpace(tail), true
	case ' ', '\t':
		return nil, strings.TrimSpace(rest), true
	default:
		return nil, "", false
	}
}

func indentRawLines(lines []source.Line, cols int) []source.Line {
	prefix := strings.Repeat(" ", cols)
	out := make([]source.Line, len(lines))
	for i, l := range lines {
		out[i] = source.Line{Text: prefix + l.Text, Path: l.Path, Num: l.Num}
	}
	return out
}

func matchesTemplateExt(path string, opts Options) bool {
	ext := strings.TrimPrefix(opts.Extension, ".")
	if ext == "" {
		ext = "pug"
	}
	return strings.HasSuffix(path, "."+ext) || strings.HasSuffix(path, ".pug")
}

func asPipedLines(lines []source.Line) []source.Line {
	out := make([]source.Line, len(lines))
	for i, l := range lines {
		out[i] = source.Line{Text: "| " + l.Text, Path: l.Path, Num: l.Num}
	}
	return out
}

// resolveIncludes implements spec.md §4.2 Pass B: a linear walk splicing
// include targets in place. Lines inside "//" / "//-" comment regions are
// copied verbatim without interpreting any include directive found there.
func resolveIncludes(loader *loaderState, currentPath string, lines []source.Line) ([]source.Line, error) {
	var out []source.Line
	i := 0
	for i < len(lines) {
		line := lines[i]

		if isCommentOut(line.Text) || isComment(line.Text) {
			body, end := captureBlock(lines, i)
			out = append(out, line)
			out = append(out, body...)
			i = end
			continue
		}

		chain, path, ok := parseInclude(line.Text)
		if !ok {
			out = append(out, line)
			i++
			continue
		}

		targetPath, found := find(loader.fsys, currentPath, path, loader.opts)
		if !found {
			return nil, diag.New(diag.ErrIncludeNotFound, currentPath, line.Num,
				fmt.Sprintf("include target not found: %q", path))
		}
		indent := indentOf(line.Text)

		switch {
		case len(chain) > 0:
			raw, err := source.Load(loader.fsys, targetPath, loader.deps)
			if err != nil {
				return nil, err
			}
			header := source.Line{
				Text: strings.Repeat(" ", indent) + ":" + chainText(chain),
				Path: line.Path, Num: line.Num,
			}
			out = append(out, header)
			out = append(out, indentRawLines(raw, indent+2)...)

		case matchesTemplateExt(targetPath, loader.opts):
			childLines, err := resolveFile(loader, targetPath, map[string]bool{})
			if err != nil {
				return nil, err
			}
			out = append(out, indentRawLines(childLines, indent)...)

		default:
			raw, err := source.Load(loader.fsys, targetPath, loader.deps)
			if err != nil {
				return nil, err
			}
			out = append(out, indentRawLines(asPipedLines(raw), indent)...)
		}
		i++
	}
	return out, nil
}

func chainText(chain []lex.FilterStep) string {
	var b strings.Builder
	for i, step := range chain {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(step.Name)
		if len(step.Args) > 0 {
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
	}
	return b.String()
}
