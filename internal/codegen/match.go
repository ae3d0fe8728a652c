package codegen

import (
	"strings"

	"github.com/pugc-lang/pugc/internal/source"
)

// matchKeyword reports whether content is exactly keyword or "keyword "
// followed by an argument, returning the trimmed argument.
func matchKeyword(content, keyword string) (arg string, ok bool) {
	if content == keyword {
		return "", true
	}
	if strings.HasPrefix(content, keyword+" ") {
		return strings.TrimSpace(content[len(keyword)+1:]), true
	}
	return "", false
}

func hasDeeperChild(lines []source.Line, i, indent int) bool {
	for j := i + 1; j < len(lines); j++ {
		if isBlank(lines[j].Text) {
			continue
		}
		return indentOf(lines[j].Text) > indent
	}
	return false
}
