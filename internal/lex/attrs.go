package lex

import "strings"

// AttrPair is one parsed entry from a tag's attribute list (spec.md §4.3).
type AttrPair struct {
	Name   string
	Expr   string // empty for Bare
	Escape bool   // true for "name=expr", false for "name!=expr"
	Bare   bool   // true for a lone boolean-attribute name
}

// SplitAttrs splits the inside of a "(...)" attribute list (the caller
// passes the text between the parens, not including them) into pairs.
// Commas at depth 0 always separate entries; spaces at depth 0 separate
// entries only when neither side is an incomplete "key=" fragment; quoted
// substrings and nested parens, brackets and braces are opaque to both.
func SplitAttrs(s string) []AttrPair {
	normalized := closeGapsAroundEquals(s)
	var pairs []AttrPair
	for _, tok := range splitTopLevel(normalized) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		pairs = append(pairs, parseAttrToken(tok))
	}
	return pairs
}

// closeGapsAroundEquals removes depth-0, unquoted whitespace immediately
// before or after a top-level '=' or '!=', so "key = value" and
// "key= value" behave identically to "key=value" for splitting purposes.
func closeGapsAroundEquals(s string) string {
	var b strings.Builder
	depth := 0
	var quote byte
	i := 0
	for i < len(s) {
		c := s[i]
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			b.WriteByte(c)
			i++
		case '(', '[':
			depth++
			b.WriteByte(c)
			i++
		case ')', ']':
			depth--
			b.WriteByte(c)
			i++
		case ' ', '\t':
			if depth == 0 {
				// Skip run of spaces; re-emit a single space only if the
				// next non-space char is not '=' and the previous emitted
				// char was not '=' or '!'.
				j := i
				for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
					j++
				}
				prev := lastByte(b.String())
				next := byte(0)
				if j < len(s) {
					next = s[j]
				}
				if next != '=' && prev != '=' {
					b.WriteByte(' ')
				}
				i = j
			} else {
				b.WriteByte(c)
				i++
			}
		case '!':
			if depth == 0 && i+1 < len(s) && s[i+1] == '=' {
				b.WriteString("!=")
				i += 2
			} else {
				b.WriteByte(c)
				i++
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func lastByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// splitTopLevel splits on commas and spaces at depth 0, outside quotes.
func splitTopLevel(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	i := 0
	for i < len(s) {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				cur.WriteByte(s[i])
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == '(' || c == '[' || c == '{':
			depth++
			cur.WriteByte(c)
		case c == ')' || c == ']' || c == '}':
			depth--
			cur.WriteByte(c)
		case depth == 0 && c == ',':
			flush()
		case depth == 0 && (c == ' ' || c == '\t'):
			flush()
		default:
			cur.WriteByte(c)
		}
		i++
	}
	flush()
	return out
}

func parseAttrToken(tok string) AttrPair {
	if idx := indexTopLevel(tok, "!="); idx >= 0 {
		return AttrPair{Name: strings.TrimSpace(tok[:idx]), Expr: strings.TrimSpace(tok[idx+2:]), Escape: false}
	}
	if idx := indexTopLevel(tok, "="); idx >= 0 {
		return AttrPair{Name: strings.TrimSpace(tok[:idx]), Expr: strings.TrimSpace(tok[idx+1:]), Escape: true}
	}
	return AttrPair{Name: tok, Bare: true}
}

// indexTopLevel finds sep outside quotes/parens.
func indexTopLevel(s, sep string) int {
	depth := 0
	var quote byte
	for i := 0; i+len(sep) <= len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if depth == 0 && s[i:i+len(sep)] == sep {
				return i
			}
		}
	}
	return -1
}
