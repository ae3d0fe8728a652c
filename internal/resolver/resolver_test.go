package resolver

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestResolveNoExtendsIsIdempotent(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("p hello\n  span world\n")},
	}
	lines, _, err := Resolve(fsys, "a.pug", Options{Extension: "pug"})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "p hello", lines[0].Text)
	require.Equal(t, "  span world", lines[1].Text)
}

func TestResolveExtendsOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"parent.pug": {Data: []byte("html\n  body\n    block content\n      p default\n")},
		"child.pug":  {Data: []byte("extends parent\nblock content\n  p overridden\n")},
	}
	lines, _, err := Resolve(fsys, "child.pug", Options{Extension: "pug"})
	require.NoError(t, err)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	require.Equal(t, []string{
		"html",
		"  body",
		"    block content",
		"      p overridden",
	}, texts)
}

func TestResolveExtendsKeepsDefaultWhenNoOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"parent.pug": {Data: []byte("html\n  block content\n    p default\n")},
		"child.pug":  {Data: []byte("extends parent\nblock other\n  p unused\n")},
	}
	lines, _, err := Resolve(fsys, "child.pug", Options{Extension: "pug"})
	require.NoError(t, err)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	require.Equal(t, []string{"html", "  block content", "    p default"}, texts)
}

func TestResolveCyclicExtends(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("extends b\np a\n")},
		"b.pug": {Data: []byte("extends a\np b\n")},
	}
	_, _, err := Resolve(fsys, "a.pug", Options{Extension: "pug"})
	require.Error(t, err)
}

func TestResolveIncludeSplice(t *testing.T) {
	fsys := fstest.MapFS{
		"main.pug":    {Data: []byte("div\n  include part.pug\n")},
		"part.pug":    {Data: []byte("p included\n")},
	}
	lines, deps, err := Resolve(fsys, "main.pug", Options{Extension: "pug"})
	require.NoError(t, err)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	require.Equal(t, []string{"div", "  p included"}, texts)
	require.Contains(t, deps, "part.pug")
}

func TestResolveIncludeMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"main.pug": {Data: []byte("include missing.pug\n")},
	}
	_, _, err := Resolve(fsys, "main.pug", Options{Extension: "pug"})
	require.Error(t, err)
}

func TestResolveJoinsMultiLineAttributeList(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("div(\n  a=1\n  b=2\n)\n  span ok\n")},
	}
	lines, _, err := Resolve(fsys, "a.pug", Options{Extension: "pug"})
	require.NoError(t, err)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	require.Equal(t, []string{"div( a=1 b=2 )", "  span ok"}, texts)
	require.Equal(t, 1, lines[0].Num) // diagnostics still point at the opening line
}

func TestResolveIncludeFilterChain(t *testing.T) {
	fsys := fstest.MapFS{
		"main.pug": {Data: []byte("div\n  include:markdown article.md\n")},
		"article.md": {Data: []byte("# Title\n")},
	}
	lines, _, err := Resolve(fsys, "main.pug", Options{Extension: "pug"})
	require.NoError(t, err)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	require.Equal(t, []string{"div", "  :markdown", "    # Title"}, texts)
}
