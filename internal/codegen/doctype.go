package codegen

import "github.com/pugc-lang/pugc/internal/htmlspec"

var doctypeLiteral = htmlspec.DoctypeLiteral

var voidTags = htmlspec.VoidTags

var literalTags = htmlspec.LiteralTags
