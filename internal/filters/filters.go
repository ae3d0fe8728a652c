// Package filters implements spec.md §4.9's named filter functions
// (":markdown", ":json", ":cdata", ":escape" and any chain of them), kept
// in a mutex-guarded Registry the way the teacher's decorator lookup
// works (pkgs/decorators/registry.go), scaled down to one map instead of
// three since filters have no function/block/pattern split.
package filters

import (
	"fmt"
	"sync"
)

// Func transforms a filter's raw text body with args taken from its
// "(k=v, ...)" parenthesized argument list (e.g. ":json(indent=2)").
type Func func(text string, args map[string]string) (string, error)

// Provider runs a ":f1(args):f2(args)" chain (internal/lex.ParseFilterChain
// already split, internal/codegen.chainText already joined back into this
// compact textual form — Run re-parses it so hostrt doesn't need to carry
// []lex.FilterStep across the ir.Program boundary).
type Provider interface {
	Run(chain string, text string) (string, error)
}

// Registry is a mutex-guarded name -> Func map, the same shape as the
// teacher's decorators.Registry.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{filters: map[string]Func{}}
}

// Register adds or replaces the filter named name.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[name] = fn
}

// Get retrieves the filter named name.
func (r *Registry) Get(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.filters[name]
	return fn, ok
}

// Run parses chain (spec.md §4.9's "name(args):name2(args2)" textual
// form) and applies each filter in sequence, left to right, feeding each
// step's output into the next.
func (r *Registry) Run(chain string, text string) (string, error) {
	steps := parseChain(chain)
	if len(steps) == 0 {
		return "", fmt.Errorf("empty filter chain")
	}
	out := text
	for _, step := range steps {
		fn, ok := r.Get(step.name)
		if !ok {
			return "", fmt.Errorf("unknown filter %q", step.name)
		}
		var err error
		out, err = fn(out, step.args)
		if err != nil {
			return "", fmt.Errorf("filter %q: %w", step.name, err)
		}
	}
	return out, nil
}

var defaultRegistry = newDefault()

// Default returns the built-in registry (:markdown, :json, :cdata,
// :escape) every compile starts from.
func Default() *Registry { return defaultRegistry }

func newDefault() *Registry {
	r := NewRegistry()
	r.Register("markdown", markdownFilter)
	r.Register("json", jsonFilter)
	r.Register("cdata", cdataFilter)
	r.Register("escape", escapeFilter)
	return r
}
