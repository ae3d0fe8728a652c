package filters_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pugc-lang/pugc/internal/filters"
)

func TestMarkdownFilter(t *testing.T) {
	out, err := filters.Default().Run("markdown", "# Title")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Title</h1>")
}

func TestJSONFilterReformatsWithIndent(t *testing.T) {
	out, err := filters.Default().Run("json(indent=2)", `{"b":1,"a":2}`)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}", out)
}

func TestJSONFilterRejectsInvalidInput(t *testing.T) {
	_, err := filters.Default().Run("json", "not json")
	require.Error(t, err)
}

func TestCDATAFilterEscapesEmbeddedTerminator(t *testing.T) {
	out, err := filters.Default().Run("cdata", "a ]]> b")
	require.NoError(t, err)
	require.Equal(t, "<![CDATA[a ]]]]><![CDATA[> b]]>", out)
}

func TestEscapeFilter(t *testing.T) {
	out, err := filters.Default().Run("escape", `<a href="x">&amp</a>`)
	require.NoError(t, err)
	require.Equal(t, "&lt;a href=&quot;x&quot;&gt;&amp;amp&lt;/a&gt;", out)
}

func TestChainAppliesFiltersLeftToRight(t *testing.T) {
	out, err := filters.Default().Run("markdown:escape", "# Hi")
	require.NoError(t, err)
	require.Contains(t, out, "&lt;h1&gt;Hi&lt;/h1&gt;")
	require.NotContains(t, out, "<h1>")
}

func TestUnknownFilterErrors(t *testing.T) {
	_, err := filters.Default().Run("nope", "x")
	require.Error(t, err)
}

func TestEmptyChainErrors(t *testing.T) {
	_, err := filters.Default().Run("", "x")
	require.Error(t, err)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := filters.NewRegistry()
	_, ok := r.Get("custom")
	require.False(t, ok)

	r.Register("custom", func(text string, args map[string]string) (string, error) {
		return "[" + text + "]", nil
	})
	out, err := r.Run("custom", "x")
	require.NoError(t, err)
	require.Equal(t, "[x]", out)
}
