package codegen

import "strings"

// controlKeywords is the set from spec.md §4.5's "- <expr>" dispatch rule.
var controlKeywords = map[string]bool{
	"if": true, "elseif": true, "else": true, "foreach": true, "for": true,
	"while": true, "switch": true, "try": true, "catch": true,
	"finally": true, "default": true,
}

// firstWord returns the leading identifier token of expr.
func firstWord(expr string) string {
	i := 0
	for i < len(expr) && (expr[i] == '_' || (expr[i] >= 'a' && expr[i] <= 'z') || (expr[i] >= 'A' && expr[i] <= 'Z')) {
		i++
	}
	return expr[:i]
}

func isControlExpr(expr string) bool {
	return controlKeywords[firstWord(expr)]
}

func isSwitchExpr(expr string) bool {
	return firstWord(expr) == "switch"
}

func endsInOpenBrace(expr string) bool {
	return strings.HasSuffix(strings.TrimRight(expr, " \t"), "{")
}
