package lex

// ASCII classification tables, precomputed once at package init, grounded
// on pkgs/lexer/lexer.go's fast single-byte lookup tables: the tag-grammar
// scanner and attribute-pair splitter need the same identifier-boundary
// tests a general tokenizer needs.
var (
	isSpace      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isDigit      [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isSpace[i] = ch == ' ' || ch == '\t'
		isDigit[i] = ch >= '0' && ch <= '9'
		letter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		isIdentStart[i] = letter
		isIdentPart[i] = letter || isDigit[i] || ch == '-'
	}
}

func isSpaceByte(c byte) bool {
	return c < 128 && isSpace[c]
}

// IsIdentStart reports whether c can begin a tag/attribute identifier.
func IsIdentStart(c byte) bool { return c < 128 && isIdentStart[c] }

// IsIdentPart reports whether c can continue a tag/attribute identifier.
func IsIdentPart(c byte) bool { return c < 128 && isIdentPart[c] }
