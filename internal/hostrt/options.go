package hostrt

import "github.com/pugc-lang/pugc/internal/htmlspec"

// Options is internal/htmlspec.Options under the runtime's own name.
type Options = htmlspec.Options

var xmlOptions = htmlspec.XMLOptions

var kebab = htmlspec.Kebab

var voidTags = htmlspec.VoidTags

var literalTags = htmlspec.LiteralTags
