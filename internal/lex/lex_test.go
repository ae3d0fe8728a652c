package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndent(t *testing.T) {
	assert.Equal(t, 0, Indent("p Hello"))
	assert.Equal(t, 2, Indent("  p Hello"))
	assert.Equal(t, 4, Indent("\t\t\t\tp Hello"))
}

func TestBalanced(t *testing.T) {
	inner, idx, ok := Balanced(`(a, b(c), "d)")`, 0, '(', ')')
	require.True(t, ok)
	assert.Equal(t, `a, b(c), "d)"`, inner)
	assert.Equal(t, 14, idx)

	_, _, ok = Balanced(`(a, b`, 0, '(', ')')
	assert.False(t, ok)
}

func TestJoinContinuations(t *testing.T) {
	lines := []string{`  a-href=(url`, `    ", x)`}
	i := 1
	next := func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		l := lines[i]
		i++
		return l, true
	}
	joined, consumed := JoinContinuations(lines[0], next)
	assert.Equal(t, 1, consumed)
	assert.Contains(t, joined, "url")
	assert.Contains(t, joined, "x)")
}

func TestSplitAttrs(t *testing.T) {
	pairs := SplitAttrs(`href="/x", disabled, class=["a", "b"] data-x!=raw`)
	require.Len(t, pairs, 4)
	assert.Equal(t, "href", pairs[0].Name)
	assert.Equal(t, `"/x"`, pairs[0].Expr)
	assert.True(t, pairs[0].Escape)

	assert.True(t, pairs[1].Bare)
	assert.Equal(t, "disabled", pairs[1].Name)

	assert.Equal(t, "class", pairs[2].Name)
	assert.Equal(t, `["a", "b"]`, pairs[2].Expr)

	assert.Equal(t, "data-x", pairs[3].Name)
	assert.False(t, pairs[3].Escape)
	assert.Equal(t, "raw", pairs[3].Expr)
}

func TestSplitAttrsSpaceAroundEquals(t *testing.T) {
	pairs := SplitAttrs(`foo = bar, baz= "q q"`)
	require.Len(t, pairs, 2)
	assert.Equal(t, "foo", pairs[0].Name)
	assert.Equal(t, "bar", pairs[0].Expr)
	assert.Equal(t, "baz", pairs[1].Name)
	assert.Equal(t, `"q q"`, pairs[1].Expr)
}

func TestParseFilterChain(t *testing.T) {
	steps := ParseFilterChain(`markdown:highlight(lang=go, 2)`)
	require.Len(t, steps, 2)
	assert.Equal(t, "markdown", steps[0].Name)
	assert.Empty(t, steps[0].Args)

	assert.Equal(t, "highlight", steps[1].Name)
	require.Len(t, steps[1].Args, 2)
	assert.Equal(t, "lang", steps[1].Args[0].Name)
	assert.Equal(t, "go", steps[1].Args[0].Value)
	assert.Equal(t, "2", steps[1].Args[1].Value)
}

func TestHasFilterHeader(t *testing.T) {
	chain, rest, ok := HasFilterHeader(":markdown(strict) foo")
	require.True(t, ok)
	assert.Equal(t, "markdown(strict)", chain)
	assert.Equal(t, "foo", rest)

	_, _, ok = HasFilterHeader("p hello")
	assert.False(t, ok)
}
