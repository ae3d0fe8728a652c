package hostrt_test

import (
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/transpiler"
)

// render compiles and runs root through the full pipeline, trimming the
// single trailing newline the line-oriented renderer always appends after
// its last emitted line (spec.md §8's expected strings carry none).
func render(t *testing.T, fsys fs.FS, root string, data map[string]interface{}) string {
	t.Helper()
	out, err := transpiler.Render(fsys, root, data, transpiler.DefaultFlags())
	require.NoError(t, err)
	return strings.TrimRight(out, "\n")
}

// S1 — doctype + simple tag, interpolated inline content stays on the
// element's own line.
func TestScenarioS1DoctypeAndSimpleTag(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte("doctype html\np Hello #{$data.name}\n")},
	}
	got := render(t, fsys, "index.pug", map[string]interface{}{"name": "Ada"})
	require.Equal(t, "<!DOCTYPE html>\n<p>Hello Ada</p>", got)
}

// S2 — extends/block override resolves before codegen ever runs, so this
// exercises the whole pipeline end to end rather than just the resolver.
// Fixture: testdata/inherit/{parent,child}.pug.
func TestScenarioS2InheritanceOverride(t *testing.T) {
	got := render(t, os.DirFS("testdata/inherit"), "child.pug", nil)
	require.Equal(t, "<html>\n\t<body>\n\t\t<p>overridden</p>\n\t</body>\n</html>", got)
}

// S3 — a mixin's "block" line renders the call-site body against the
// caller's scope, at the indent level the "block" line itself occupies.
// Fixture: testdata/card/index.pug.
func TestScenarioS3MixinWithBlock(t *testing.T) {
	got := render(t, os.DirFS("testdata/card"), "index.pug", nil)
	require.Equal(t, "<div class=\"card\">\n\t<h2>X</h2>\n\t<p>body</p>\n</div>", got)
}

// S4 — a dict literal assigned to $m and merged into class= drops falsy
// keys and renders only the truthy ones.
func TestScenarioS4ClassDictionary(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte(
			"- $m = @{ active = $true; hidden = $false }\n" +
				"div(class=$m) x\n",
		)},
	}
	got := render(t, fsys, "index.pug", nil)
	require.Equal(t, `<div class="active">x</div>`, got)
}

// S5 — "doctype xml" switches into XML mode, which stays on through the
// following plist doctype; the otherwise-empty dict container self-closes.
func TestScenarioS5XMLMode(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte(
			"doctype xml\n" +
				"doctype plist\n" +
				"plist(version=\"1.0\")\n" +
				"  dict\n",
		)},
	}
	got := render(t, fsys, "index.pug", nil)
	lines := strings.Split(got, "\n")
	require.True(t, strings.HasPrefix(lines[0], "<?xml"))
	require.Contains(t, lines[1], "plist")
	require.Equal(t, `<plist version="1.0">`, lines[2])
	require.Equal(t, "\t<dict />", lines[3])
	require.Equal(t, "</plist>", lines[4])
}

// S6 — a host expression failing mid-render surfaces the template line and
// path it came from, not the generated code's own coordinates.
func TestScenarioS6RuntimeErrorMapping(t *testing.T) {
	fsys := fstest.MapFS{
		"index.pug": {Data: []byte(
			"div\n" +
				"  p one\n" +
				"  p two\n" +
				"  p three\n" +
				"  p four\n" +
				"  p five\n" +
				"  p= $data.missing.sub\n",
		)},
	}
	_, err := transpiler.Render(fsys, "index.pug", map[string]interface{}{}, transpiler.DefaultFlags())
	require.Error(t, err)

	var re *diag.RuntimeError
	require.ErrorAs(t, err, &re)
	require.Equal(t, 7, re.PugLine)
	require.Equal(t, "index.pug", re.PugPath)
}

// Property 9 (trace fidelity), exercised through transpiler.Render; ErrorAs
// reaches the hostrt RuntimeError beneath the FormattedError wrapper.
func TestRuntimeErrorCarriesSourceCoordinates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("div\n  p= $data.x.y\n")},
	}
	_, err := transpiler.Render(fsys, "a.pug", map[string]interface{}{}, transpiler.DefaultFlags())
	require.Error(t, err)
	var re *diag.RuntimeError
	require.ErrorAs(t, err, &re)
	require.Equal(t, 2, re.PugLine)
	require.Equal(t, "a.pug", re.PugPath)
}

// Property 6 — boolean attributes follow the properties flag: bare when
// true, "name=\"name\"" when false (spec.md §8 property 6).
func TestBooleanAttributeProperty(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("input(disabled)\n")},
	}
	got := render(t, fsys, "a.pug", nil)
	require.Equal(t, `<input disabled="disabled">`, got)

	out, err := transpiler.Render(fsys, "a.pug", nil, transpiler.New(transpiler.WithProperties(true)))
	require.NoError(t, err)
	require.Equal(t, "<input disabled>", strings.TrimRight(out, "\n"))
}

// Property 7 — class merging dedupes across literal classes and class=.
func TestClassMergingProperty(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte(`div.a.b(class=["c", "d", "a"])` + "\n")},
	}
	got := render(t, fsys, "a.pug", nil)
	require.Equal(t, `<div class="a b c d"></div>`, got)
}

// Property 8 — style values kebab-case their object keys.
func TestStyleKebabProperty(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte(`div(style=@{ backgroundColor = "red" })` + "\n")},
	}
	got := render(t, fsys, "a.pug", nil)
	require.Equal(t, `<div style="background-color: red"></div>`, got)
}

// Loop rendering over an array with a classic C-style for alongside it.
func TestForeachAndClassicForLoops(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte(
			"ul\n" +
				"  - for ($item in $data.items)\n" +
				"    li= $item\n" +
				"- for ($i = 0; $i < 3; $i++)\n" +
				"  span= $i\n",
		)},
	}
	data := map[string]interface{}{"items": []interface{}{"x", "y"}}
	got := render(t, fsys, "a.pug", data)
	require.Equal(t,
		"<ul>\n\t<li>x</li>\n\t<li>y</li>\n</ul>\n<span>0</span>\n<span>1</span>\n<span>2</span>",
		got)
}

// if/elseif/else renders as a sibling chain, not nested blocks.
func TestIfElseIfElseChain(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte(
			"- if ($data.n == 1)\n" +
				"  p one\n" +
				"- elseif ($data.n == 2)\n" +
				"  p two\n" +
				"- else\n" +
				"  p other\n",
		)},
	}
	require.Equal(t, "<p>one</p>", render(t, fsys, "a.pug", map[string]interface{}{"n": 1.0}))
	require.Equal(t, "<p>two</p>", render(t, fsys, "a.pug", map[string]interface{}{"n": 2.0}))
	require.Equal(t, "<p>other</p>", render(t, fsys, "a.pug", map[string]interface{}{"n": 3.0}))
}

// switch arms carry no "case" keyword: each non-default arm's own header
// expression is the comparison value.
func TestSwitchArmsWithoutCaseKeyword(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte(
			"- switch $data.status\n" +
				"  - 'active'\n" +
				"    p is active\n" +
				"  - default\n" +
				"    p unknown\n",
		)},
	}
	require.Equal(t, "<p>is active</p>", render(t, fsys, "a.pug", map[string]interface{}{"status": "active"}))
	require.Equal(t, "<p>unknown</p>", render(t, fsys, "a.pug", map[string]interface{}{"status": "archived"}))
}
