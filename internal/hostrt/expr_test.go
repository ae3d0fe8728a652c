package hostrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src string, env *Env) interface{} {
	t.Helper()
	e, err := ParseExpr(src)
	require.NoError(t, err)
	v, err := e.Eval(env)
	require.NoError(t, err)
	return v
}

func TestParseExprLiterals(t *testing.T) {
	env := newEnv(nil)
	require.Equal(t, 42.0, eval(t, "42", env))
	require.Equal(t, "hi", eval(t, `"hi"`, env))
	require.Equal(t, true, eval(t, "$true", env))
	require.Equal(t, false, eval(t, "$false", env))
	require.Nil(t, eval(t, "$null", env))
}

func TestParseExprVarAndField(t *testing.T) {
	env := newEnv(nil)
	env.Bind("data", map[string]interface{}{"name": "Ada", "nested": map[string]interface{}{"n": 5.0}})
	require.Equal(t, "Ada", eval(t, "$data.name", env))
	require.Equal(t, 5.0, eval(t, "$data.nested.n", env))
}

func TestParseExprIndexing(t *testing.T) {
	env := newEnv(nil)
	env.Bind("data", map[string]interface{}{"items": []interface{}{"a", "b", "c"}})
	require.Equal(t, "b", eval(t, "$data.items[1]", env))
}

func TestParseExprArithmeticAndComparison(t *testing.T) {
	env := newEnv(nil)
	require.Equal(t, 7.0, eval(t, "3 + 4", env))
	require.Equal(t, 12.0, eval(t, "3 * 4", env))
	require.Equal(t, true, eval(t, "3 < 4", env))
	require.Equal(t, true, eval(t, "(1 + 2) == 3", env))
	require.Equal(t, true, eval(t, "!$false", env))
	require.Equal(t, -5.0, eval(t, "-5", env))
}

func TestParseExprLogicalShortCircuit(t *testing.T) {
	env := newEnv(nil)
	require.Equal(t, true, eval(t, "$true || $false", env))
	require.Equal(t, false, eval(t, "$true && $false", env))
}

func TestParseExprArrayAndDictLiterals(t *testing.T) {
	env := newEnv(nil)
	require.Equal(t, []interface{}{1.0, 2.0, 3.0}, eval(t, "[1, 2, 3]", env))
	got := eval(t, "@{ a = 1; b = 2 }", env)
	require.Equal(t, map[string]interface{}{"a": 1.0, "b": 2.0}, got)
}

func TestFieldAccessOnUndefinedErrors(t *testing.T) {
	env := newEnv(nil)
	env.Bind("data", map[string]interface{}{})
	e, err := ParseExpr("$data.missing.sub")
	require.NoError(t, err)
	_, err = e.Eval(env)
	require.Error(t, err)
}

func TestEnvSetUpdatesOwningScope(t *testing.T) {
	parent := newEnv(nil)
	parent.Bind("x", 1.0)
	child := newEnv(parent)
	child.Set("x", 2.0)
	v, ok := parent.Get("x")
	require.True(t, ok)
	require.Equal(t, 2.0, v)
}

func TestEnvBindAlwaysLocal(t *testing.T) {
	parent := newEnv(nil)
	parent.Bind("x", 1.0)
	child := newEnv(parent)
	child.Bind("x", 2.0)
	pv, _ := parent.Get("x")
	cv, _ := child.Get("x")
	require.Equal(t, 1.0, pv)
	require.Equal(t, 2.0, cv)
}
