// Package ir is the structured program the code generator builds by
// walking the resolved template once. It is consumed two ways, mirroring
// the teacher's dual-mode Engine (pkgs/engine.Engine: one AST walk, two
// execution modes): internal/codegen stringifies it into the textual
// host-script artifact, and internal/hostrt interprets it directly so the
// properties in spec.md §8 are exercisable without an external host
// runtime.
package ir

import "github.com/pugc-lang/pugc/internal/diag"

// PartKind classifies one fragment of inline content (a tag's trailing
// text, a "|" line, a "=" / "!=" line).
type PartKind int

const (
	PartLiteral PartKind = iota // verbatim text
	PartEscaped                 // HTML-escaped host expression
	PartRaw                     // unescaped host expression
)

// Part is one fragment concatenated to build one piece of inline content.
type Part struct {
	Kind PartKind
	Text string // PartLiteral
	Expr string // PartEscaped / PartRaw: host expression source
}

// Attr is one compile-time-known attribute pair on an element.
type Attr struct {
	Name   string
	Expr   string // host expression source; empty when Bare
	Escape bool   // true for "=", false for "!="
	Bare   bool   // boolean attribute written with no value (spec.md §4.5 "disabled")
}

// IndentKind distinguishes a node's indentation source (spec.md §4.5
// "Indentation of emitted output").
type IndentKind int

const (
	// IndentFixed: a compile-time-known tab count (outside any mixin body).
	IndentFixed IndentKind = iota
	// IndentRelative: pug_indent (the call-site indent) plus a fixed
	// number of additional tabs — used inside a mixin body.
	IndentRelative
	// IndentLiteral: no tab prefix at all (inside a literal-tag ancestor).
	IndentLiteral
)

// Indent describes how much to indent a node at render time.
type Indent struct {
	Kind  IndentKind
	Fixed int // IndentFixed / IndentRelative's additional depth
}

// NodeKind discriminates the node variants within a tree.
type NodeKind int

const (
	NodeElement    NodeKind = iota // a tag: open, attributes, children/inline content, close
	NodeText                       // a standalone "= expr" / "!= expr" / "| text" line
	NodeComment                    // "//" (rendered); a "//-" line produces no node
	NodeRawCode                    // "- " with no deeper block, or the body of "- " with a verbatim-code child block
	NodeCodeBlock                  // "- if/for/while/switch/try/…", with a nested body
	NodeMixinDef                   // "mixin name(params)"
	NodeMixinCall                  // "+name(args)"
	NodeBlockCall                  // "block" referenced inside a mixin body
	NodeLiteralHTML                // a line starting with "<"
	NodeFilterBlock                // ":filter[(args)]" with a captured child block
	NodeDoctype                    // "doctype kind"
)

// MixinParam is one formal parameter of a mixin definition.
type MixinParam struct {
	Name    string
	Default string // host expression source; empty if no default
}

// CallArg is one argument passed at a mixin call site.
type CallArg struct {
	Name string // empty for positional
	Expr string
}

// Node is one instruction in the compiled tree. Only the fields relevant
// to Kind are populated; see the comment on each NodeKind above.
type Node struct {
	Kind NodeKind

	SrcLine int
	SrcPath string
	Indent  Indent

	// NodeElement
	Tag          string
	ID           string   // compile-time-known "#id" shorthand; "" if absent
	Classes      []string // compile-time-known ".class" shorthand tokens, in order
	Attrs        []Attr
	MergeExpr    string // "&attributes(expr)" argument; empty if absent
	ExplicitSelf bool   // trailing "/" on the tag line
	Inline       []Part // content after the tag on the same line
	Children     []*Node
	LiteralBody  []string // "tag." block: verbatim child lines, min-indent stripped

	// NodeText / NodeLiteralHTML
	Parts []Part

	// NodeComment
	Silent  bool
	Comment []Part

	// NodeRawCode
	RawLines []string

	// NodeCodeBlock
	Header   string // the "- <expr>" source, keyword included
	IsSwitch bool
	Body     []*Node

	// NodeMixinDef
	MixinName string
	Params    []MixinParam
	HasBlock  bool

	// NodeMixinCall
	Args     []CallArg
	CallBody []*Node

	// NodeFilterBlock
	FilterChain string
	RawText     []string

	// NodeDoctype
	DoctypeLiteral string
	SetsXML        bool
}

// Program is the whole compiled template: the document body (doctype
// lines appear in Body in source order, like everything else) and every
// mixin definition encountered.
type Program struct {
	XML    bool // final XML-mode state (spec.md §3 "doctype xml" sets this)
	Body   []*Node
	Mixins map[string]*Mixin
	// Warnings collects non-fatal diagnostics found during generation —
	// currently just switch-arm values that parse as neither a quoted
	// string nor a numeric literal (spec.md §9).
	Warnings []diag.Warning
}

// Mixin is a compiled mixin definition, indexed by name on Program.
type Mixin struct {
	Name     string
	Params   []MixinParam
	HasBlock bool
	Body     []*Node
}
