package resolver

import "strings"

// trimmed returns the line with leading indentation removed.
func trimmed(text string) string {
	return strings.TrimLeft(text, " \t")
}

func indentOf(text string) int {
	n := 0
	for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
		n++
	}
	return n
}

func matchKeyword(line, keyword string) (arg string, ok bool) {
	t := trimmed(line)
	if t == keyword {
		return "", true
	}
	if strings.HasPrefix(t, keyword+" ") {
		return strings.TrimSpace(t[len(keyword)+1:]), true
	}
	return "", false
}

// blockName returns the name in "block NAME" (or "block append/prepend
// NAME", treated the same as a plain override for this implementation).
func blockName(line string) (string, bool) {
	arg, ok := matchKeyword(line, "block")
	if !ok || arg == "" {
		return "", false
	}
	fields := strings.Fields(arg)
	if len(fields) == 2 && (fields[0] == "append" || fields[0] == "prepend") {
		return fields[1], true
	}
	return fields[0], true
}

// mixinName returns NAME from "mixin NAME(...)" or "mixin NAME".
func mixinName(line string) (string, bool) {
	arg, ok := matchKeyword(line, "mixin")
	if !ok || arg == "" {
		return "", false
	}
	name := arg
	if idx := strings.IndexByte(arg, '('); idx >= 0 {
		name = arg[:idx]
	}
	return strings.TrimSpace(name), true
}

func isCommentOut(line string) bool {
	t := trimmed(line)
	return strings.HasPrefix(t, "//-")
}

func isComment(line string) bool {
	t := trimmed(line)
	return strings.HasPrefix(t, "//") && !strings.HasPrefix(t, "//-")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
