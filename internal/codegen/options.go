package codegen

import "github.com/pugc-lang/pugc/internal/htmlspec"

// Options is internal/htmlspec.Options under the generator's own name —
// the flags it and internal/hostrt both consult to decide how a tag
// renders.
type Options = htmlspec.Options

var xmlOptions = htmlspec.XMLOptions

var kebab = htmlspec.Kebab
