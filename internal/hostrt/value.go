package hostrt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type litExpr struct{ v interface{} }

func (e *litExpr) Eval(env *Env) (interface{}, error) { return e.v, nil }

type varExpr struct{ name string }

func (e *varExpr) Eval(env *Env) (interface{}, error) {
	v, _ := env.Get(e.name)
	return v, nil
}

type fieldExpr struct {
	recv  Expr
	field string
}

func (e *fieldExpr) Eval(env *Env) (interface{}, error) {
	v, err := e.recv.Eval(env)
	if err != nil {
		return nil, err
	}
	return getField(v, e.field)
}

func getField(v interface{}, field string) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot read property %q of undefined", field)
	}
	switch m := v.(type) {
	case map[string]interface{}:
		return m[field], nil
	default:
		return nil, fmt.Errorf("cannot read property %q of non-object value %v", field, v)
	}
}

type indexExpr struct {
	recv Expr
	idx  Expr
}

func (e *indexExpr) Eval(env *Env) (interface{}, error) {
	v, err := e.recv.Eval(env)
	if err != nil {
		return nil, err
	}
	idx, err := e.idx.Eval(env)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("cannot index undefined value")
	}
	switch coll := v.(type) {
	case []interface{}:
		n, ok := toNumber(idx)
		if !ok {
			return nil, fmt.Errorf("array index must be numeric, got %v", idx)
		}
		i := int(n)
		if i < 0 || i >= len(coll) {
			return nil, nil
		}
		return coll[i], nil
	case map[string]interface{}:
		return coll[stringify(idx)], nil
	default:
		return nil, fmt.Errorf("cannot index non-collection value %v", v)
	}
}

type arrayExpr struct{ items []Expr }

func (e *arrayExpr) Eval(env *Env) (interface{}, error) {
	out := make([]interface{}, 0, len(e.items))
	for _, it := range e.items {
		v, err := it.Eval(env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type dictExpr struct {
	entries map[string]Expr
	order   []string
}

func (e *dictExpr) Eval(env *Env) (interface{}, error) {
	out := map[string]interface{}{}
	for _, k := range e.order {
		v, err := e.entries[k].Eval(env)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

type unaryExpr struct {
	op      string
	operand Expr
}

func (e *unaryExpr) Eval(env *Env) (interface{}, error) {
	v, err := e.operand.Eval(env)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "!":
		return !truthy(v), nil
	case "-":
		n, _ := toNumber(v)
		return -n, nil
	}
	return nil, fmt.Errorf("unsupported unary operator %q", e.op)
}

type binExpr struct {
	op          string
	left, right Expr
}

func (e *binExpr) Eval(env *Env) (interface{}, error) {
	l, err := e.left.Eval(env)
	if err != nil {
		return nil, err
	}
	if e.op == "&&" {
		if !truthy(l) {
			return false, nil
		}
		r, err := e.right.Eval(env)
		if err != nil {
			return nil, err
		}
		return truthy(r), nil
	}
	if e.op == "||" {
		if truthy(l) {
			return true, nil
		}
		r, err := e.right.Eval(env)
		if err != nil {
			return nil, err
		}
		return truthy(r), nil
	}
	r, err := e.right.Eval(env)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "==":
		return valuesEqual(l, r), nil
	case "!=":
		return !valuesEqual(l, r), nil
	case "+":
		if ls, ok := l.(string); ok {
			return ls + stringify(r), nil
		}
		if rs, ok := r.(string); ok {
			return stringify(l) + rs, nil
		}
		ln, _ := toNumber(l)
		rn, _ := toNumber(r)
		return ln + rn, nil
	case "-", "*", "/":
		ln, _ := toNumber(l)
		rn, _ := toNumber(r)
		switch e.op {
		case "-":
			return ln - rn, nil
		case "*":
			return ln * rn, nil
		case "/":
			return ln / rn, nil
		}
	case "<", ">", "<=", ">=":
		ln, lok := toNumber(l)
		rn, rok := toNumber(r)
		if lok && rok {
			switch e.op {
			case "<":
				return ln < rn, nil
			case ">":
				return ln > rn, nil
			case "<=":
				return ln <= rn, nil
			case ">=":
				return ln >= rn, nil
			}
		}
		ls, rs := stringify(l), stringify(r)
		switch e.op {
		case "<":
			return ls < rs, nil
		case ">":
			return ls > rs, nil
		case "<=":
			return ls <= rs, nil
		case ">=":
			return ls >= rs, nil
		}
	}
	return nil, fmt.Errorf("unsupported operator %q", e.op)
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return true
	default:
		return true
	}
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(t, 64)
		return n, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, aok := toNumber(a); aok {
		if bn, bok := toNumber(b); bok {
			return an == bn
		}
	}
	return stringify(a) == stringify(b)
}

// stringify renders a value the way out_attr/out_class/text interpolation
// need it rendered: plain for strings/numbers/bools, deterministic key
// order for objects (so generated HTML is reproducible across runs).
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(k)
			sb.WriteByte(':')
			sb.WriteString(stringify(t[k]))
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
