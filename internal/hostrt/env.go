package hostrt

// Env is a lexical variable scope chain, the runtime counterpart of the
// generator's *ir.Mixin parameter binding: one Env per mixin invocation
// and per top-level Run, parented to whatever scope called it.
type Env struct {
	vars   map[string]interface{}
	parent *Env
}

func newEnv(parent *Env) *Env {
	return &Env{vars: map[string]interface{}{}, parent: parent}
}

// Get looks up name in this scope, then its parents. ok is false if no
// scope in the chain ever bound it (distinct from a bound nil).
func (e *Env) Get(name string) (interface{}, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set assigns name in the nearest enclosing scope that already owns it,
// falling back to defining it in this scope (host assignment semantics:
// "$x = ..." either updates an existing binding or declares a local one).
func (e *Env) Set(name string, v interface{}) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

// Bind defines name in this scope only, shadowing any parent binding —
// used for mixin parameters and loop variables.
func (e *Env) Bind(name string, v interface{}) {
	e.vars[name] = v
}
