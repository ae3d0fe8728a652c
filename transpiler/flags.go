// Package transpiler is pugc's top-level entry point: it composes
// internal/resolver, internal/codegen, internal/assemble and
// internal/diag behind one Flags struct and a single Compile call
// (spec.md §3, §6).
package transpiler

import "gopkg.in/yaml.v3"

// Flags is the complete compiler flag set from spec.md §3, gathering the
// resolver's path flags, the generator's HTML-shape flags, and the
// formatter's error-context flag into one value every layer is built
// from.
type Flags struct {
	Extension          string `yaml:"extension"`
	BaseDir            string `yaml:"base_dir"`
	Properties         bool   `yaml:"properties"`
	VoidSelfClose      bool   `yaml:"void_self_close"`
	ContainerSelfClose bool   `yaml:"container_self_close"`
	KebabCase          bool   `yaml:"kebab_case"`
	ErrorContext       int    `yaml:"error_context"`
}

// DefaultFlags returns spec.md §3's documented defaults.
func DefaultFlags() Flags {
	return Flags{
		Extension:    ".pug",
		ErrorContext: 2,
	}
}

// Option mutates a Flags value being built, the same small functional-
// option shape other_examples' engine/scrubber constructors use
// (streamscrub.Option, xml.Option) generalized to this compiler's flags.
type Option func(*Flags)

// WithExtension sets the default include/extends file extension.
func WithExtension(ext string) Option {
	return func(f *Flags) { f.Extension = ext }
}

// WithBaseDir sets the root absolute include/extends paths resolve
// against.
func WithBaseDir(dir string) Option {
	return func(f *Flags) { f.BaseDir = dir }
}

// WithProperties toggles HTML boolean-attribute rendering
// (disabled="disabled" vs. bare "disabled").
func WithProperties(v bool) Option {
	return func(f *Flags) { f.Properties = v }
}

// WithVoidSelfClose toggles self-closing void elements ("<br />" vs.
// "<br>").
func WithVoidSelfClose(v bool) Option {
	return func(f *Flags) { f.VoidSelfClose = v }
}

// WithContainerSelfClose toggles self-closing empty non-void elements.
func WithContainerSelfClose(v bool) Option {
	return func(f *Flags) { f.ContainerSelfClose = v }
}

// WithKebabCase toggles CamelCase-to-kebab-case tag name conversion.
func WithKebabCase(v bool) Option {
	return func(f *Flags) { f.KebabCase = v }
}

// WithErrorContext sets how many source lines of context surround a
// diagnostic.
func WithErrorContext(n int) Option {
	return func(f *Flags) { f.ErrorContext = n }
}

// New builds a Flags value from spec.md §3's defaults plus opts, applied
// in order.
func New(opts ...Option) Flags {
	f := DefaultFlags()
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// LoadYAML merges a YAML document (spec.md §3's config-file shape) onto
// spec.md's defaults; fields the document omits keep their default.
func LoadYAML(data []byte) (Flags, error) {
	f := DefaultFlags()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Flags{}, err
	}
	return f, nil
}
