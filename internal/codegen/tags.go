package codegen

import (
	"strings"

	"github.com/pugc-lang/pugc/internal/lex"
)

// tagSpec is one parsed tag-grammar line (spec.md §4.5 "Tag grammar").
type tagSpec struct {
	Name       string
	ID         string
	Classes    []string
	AttrsRaw   string // the "(...)" inner text, unparsed
	HasAttrs   bool
	MergeExpr  string // "&attributes(expr)" argument; empty if absent
	SelfClose  bool   // explicit trailing "/"
	Op         string // "=" or "!=" or "" (plain text content)
	Content    string // raw remainder: expression source for Op, else template text
	HasContent bool
	HasExpand  bool   // "tag: tag2 content" block expansion (spec.md §4.5)
	Expand     string // the remainder after ":", reparsed as another tagSpec
}

func isTagNameByte(c byte) bool {
	return lex.IsIdentPart(c) || c == '-'
}

// parseTag attempts to parse s (already indent-stripped) per the tag
// grammar. ok is false if s does not start with a name/#id/.class token at
// all (the caller then tries other dispatch rules, finally ParseError).
func parseTag(s string) (tagSpec, string, bool) {
	var spec tagSpec
	i := 0

	// name (optional — defaults to "div" if an #id/.class follows).
	start := i
	for i < len(s) && (lex.IsIdentStart(s[i]) && i == start || (i > start && isTagNameByte(s[i]))) {
		i++
	}
	spec.Name = s[start:i]

	sawHead := spec.Name != ""

	// #id / .class chain
	for i < len(s) && (s[i] == '#' || s[i] == '.') {
		kind := s[i]
		i++
		tokStart := i
		for i < len(s) && isTagNameByte(s[i]) {
			i++
		}
		if i == tokStart {
			break
		}
		tok := s[tokStart:i]
		if kind == '#' {
			spec.ID = tok
		} else {
			spec.Classes = append(spec.Classes, tok)
		}
		sawHead = true
	}

	if !sawHead {
		return spec, s, false
	}
	if spec.Name == "" {
		spec.Name = "div"
	}

	// attributes and &attributes() merge, in either order, possibly
	// repeated (only one of each is meaningful but we accept either
	// sequencing the author wrote).
	for {
		switch {
		case i < len(s) && s[i] == '(':
			inner, closeIdx, ok := lex.Balanced(s, i, '(', ')')
			if !ok {
				return spec, s, false
			}
			spec.AttrsRaw = inner
			spec.HasAttrs = true
			i = closeIdx + 1
			continue
		case strings.HasPrefix(s[i:], "&attributes("):
			openIdx := i + len("&attributes")
			inner, closeIdx, ok := lex.Balanced(s, openIdx, '(', ')')
			if !ok {
				return spec, s, false
			}
			spec.MergeExpr = inner
			i = closeIdx + 1
			continue
		}
		break
	}

	if i < len(s) && s[i] == '/' {
		spec.SelfClose = true
		i++
	}

	rest := s[i:]
	switch {
	case rest == ":" || strings.HasPrefix(rest, ": "):
		spec.HasExpand = true
		spec.Expand = strings.TrimLeft(strings.TrimPrefix(rest, ":"), " \t")
	case strings.HasPrefix(rest, "!="):
		spec.Op = "!="
		spec.Content = strings.TrimSpace(rest[2:])
		spec.HasContent = true
	case strings.HasPrefix(rest, "="):
		spec.Op = "="
		spec.Content = strings.TrimSpace(rest[1:])
		spec.HasContent = true
	case rest == "":
		// no inline content
	case rest[0] == ' ' || rest[0] == '\t':
		spec.Content = strings.TrimLeft(rest, " \t")
		spec.HasContent = true
	default:
		return spec, s, false
	}

	return spec, "", true
}
