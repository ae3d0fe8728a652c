package lex

// Balanced extracts the substring between a matching pair of open/close
// delimiters. start must index the opening delimiter. Quoted substrings
// ('...' and "...") are opaque: delimiters inside them never affect depth.
// ok is false if depth never returns to zero before s ends (unterminated).
func Balanced(s string, start int, open, close byte) (inner string, closeIdx int, ok bool) {
	if start >= len(s) || s[start] != open {
		return "", -1, false
	}
	depth := 0
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' && i+1 < len(s) {
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start+1 : i], i, true
			}
		}
	}
	return "", -1, false
}

// JoinContinuations concatenates subsequent physical lines into a logical
// line when the first begins with a tag-like token and contains an
// unterminated '(' — Pug's multi-line attribute-list continuation
// (spec.md §4.3). first is the candidate first line; next yields
// further physical lines on demand and reports whether one was available.
// It returns the joined text and how many extra lines (beyond the first)
// were consumed.
func JoinContinuations(first string, next func() (string, bool)) (joined string, consumed int) {
	openIdx := -1
	start := 0
	for start < len(first) && first[start] == ' ' {
		start++
	}
	if start < len(first) && (IsIdentStart(first[start]) || first[start] == '#' || first[start] == '.') {
		for i := start; i < len(first); i++ {
			if first[i] == '(' {
				openIdx = i
				break
			}
		}
	}
	if openIdx < 0 {
		return first, 0
	}
	if _, _, ok := Balanced(first, openIdx, '(', ')'); ok {
		return first, 0
	}

	joined = first
	for {
		line, had := next()
		if !had {
			return joined, consumed
		}
		consumed++
		trimmed := trimSpace(line)
		joined = joined + " " + trimmed
		if idx := firstUnmatchedOpen(joined, openIdx); idx < 0 {
			return joined, consumed
		}
	}
}

// firstUnmatchedOpen returns -1 once the '(' at openIdx in s is balanced.
func firstUnmatchedOpen(s string, openIdx int) int {
	if _, _, ok := Balanced(s, openIdx, '(', ')'); ok {
		return -1
	}
	return openIdx
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpaceByte(s[i]) {
		i++
	}
	for j > i && isSpaceByte(s[j-1]) {
		j--
	}
	return s[i:j]
}
