package transpiler_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/pugc-lang/pugc/transpiler"
)

func TestCompileProducesArtifactAndDeps(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("div\n  include part.pug\n")},
		"part.pug":  {Data: []byte("p included\n")},
	}
	res, err := transpiler.Compile(fsys, "index.pug", transpiler.DefaultFlags())
	require.NoError(t, err)
	require.NotEmpty(t, res.Artifact)
	require.Contains(t, res.Deps, "index.pug")
	require.Contains(t, res.Deps, "part.pug")
	require.NotNil(t, res.Program)
}

func TestCompileStreamCompilesInMemoryRoot(t *testing.T) {
	res, err := transpiler.CompileStream(fstest.MapFS{}, "p hi\n", "inline.pug", transpiler.DefaultFlags())
	require.NoError(t, err)
	require.NotEmpty(t, res.Artifact)
}

func TestRenderEndToEnd(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("p Hello #{$data.name}\n")},
	}
	out, err := transpiler.Render(fsys, "index.pug", map[string]interface{}{"name": "Ada"}, transpiler.DefaultFlags())
	require.NoError(t, err)
	require.Equal(t, "<p>Hello Ada</p>", strings.TrimRight(out, "\n"))
}

func TestCompileJoinsMultiLineAttributeList(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("div(\n  id=\"a\"\n  class=\"b\"\n)\n")},
	}
	out, err := transpiler.Render(fsys, "index.pug", nil, transpiler.DefaultFlags())
	require.NoError(t, err)
	require.Equal(t, `<div id="a" class="b"></div>`, strings.TrimRight(out, "\n"))
}

func TestCompileWarnsOnNonLiteralSwitchArm(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("- switch ($data.color)\n  - 'red':\n    p stop\n  - someVar:\n    p go\n")},
	}
	res, err := transpiler.Compile(fsys, "index.pug", transpiler.DefaultFlags())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0].Detail, "someVar")
	require.Equal(t, 4, res.Warnings[0].Line)
}

func TestCompileDoesNotWarnOnLiteralSwitchArms(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("- switch ($data.color)\n  - 'red':\n    p stop\n  - 2:\n    p go\n  - default:\n    p unknown\n")},
	}
	res, err := transpiler.Compile(fsys, "index.pug", transpiler.DefaultFlags())
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
}

func TestRenderSuppressesIndentTwoLevelsUnderLiteralTag(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("pre\n  span\n    b hi\n")},
	}
	out, err := transpiler.Render(fsys, "index.pug", nil, transpiler.DefaultFlags())
	require.NoError(t, err)
	// "b" is two levels under "pre" (via "span"), not a direct child; its
	// line must still carry no indentation tab.
	require.Equal(t, "<pre>\n<span>\n<b>hi</b>\n</span>\n</pre>\n", out)
}

func TestCompileReturnsFormattedErrorOnMissingInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("include missing.pug\n")},
	}
	_, err := transpiler.Compile(fsys, "index.pug", transpiler.DefaultFlags())
	require.Error(t, err)
	var fe *transpiler.FormattedError
	require.ErrorAs(t, err, &fe)
	require.NotEmpty(t, fe.Formatted)
}

func TestDefaultFlags(t *testing.T) {
	f := transpiler.DefaultFlags()
	require.Equal(t, ".pug", f.Extension)
	require.Equal(t, 2, f.ErrorContext)
	require.False(t, f.Properties)
	require.False(t, f.VoidSelfClose)
}

func TestNewAppliesOptionsOverDefaults(t *testing.T) {
	f := transpiler.New(
		transpiler.WithExtension(".jade"),
		transpiler.WithProperties(true),
		transpiler.WithKebabCase(true),
		transpiler.WithErrorContext(5),
	)
	require.Equal(t, ".jade", f.Extension)
	require.True(t, f.Properties)
	require.True(t, f.KebabCase)
	require.Equal(t, 5, f.ErrorContext)
}

func TestLoadYAMLMergesOntoDefaults(t *testing.T) {
	f, err := transpiler.LoadYAML([]byte("properties: true\nvoid_self_close: true\n"))
	require.NoError(t, err)
	require.True(t, f.Properties)
	require.True(t, f.VoidSelfClose)
	require.Equal(t, ".pug", f.Extension, "fields the document omits keep their default")
}

func TestLoadYAMLRejectsMalformedInput(t *testing.T) {
	_, err := transpiler.LoadYAML([]byte("properties: [this, is, not, a, bool\n"))
	require.Error(t, err)
}
