// Package htmlspec holds the small fixed tables spec.md §3 defines —
// void elements, literal-indent-suppressing elements, the doctype
// shorthand table, and the compiler's HTML-shape flags — shared by both
// consumers of ir.Program: internal/codegen's textual renderer and
// internal/hostrt's tree-walking interpreter. Neither owns these tables;
// splitting them out keeps the two renderers from drifting apart.
package htmlspec

// Options is the subset of spec.md §3's compiler flags that affect how a
// tag renders. Resolver-only flags (extension, base_dir) and
// formatter-only flags (error_context) live in their own packages; the
// transpiler package composes all of them into one flag set.
type Options struct {
	Properties         bool
	VoidSelfClose      bool
	ContainerSelfClose bool
	KebabCase          bool
}

// XMLOptions is Options forced into spec.md §3's XML-mode shape:
// void_self_close=true, container_self_close=true, properties=false,
// kebab_case=false.
func XMLOptions() Options {
	return Options{
		Properties:         false,
		VoidSelfClose:      true,
		ContainerSelfClose: true,
		KebabCase:          false,
	}
}

// Kebab converts a CamelCase tag name to kebab-case, e.g. "MyWidget" ->
// "my-widget". Leaves already-lowercase/hyphenated names untouched.
func Kebab(name string) string {
	var b []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b = append(b, '-')
			}
			b = append(b, c-'A'+'a')
			continue
		}
		b = append(b, c)
	}
	return string(b)
}

// Doctypes is the closed shorthand table from spec.md §3. Anything not
// listed here renders as a verbatim "<!DOCTYPE {kind}>".
var Doctypes = map[string]string{
	"html":         "<!DOCTYPE html>",
	"5":            "<!DOCTYPE html>",
	"xml":          `<?xml version="1.0" encoding="utf-8"?>`,
	"transitional": `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`,
	"strict":       `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`,
	"frameset":     `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Frameset//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-frameset.dtd">`,
	"1.1":          `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">`,
	"basic":        `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML Basic 1.1//EN" "http://www.w3.org/TR/xhtml-basic/xhtml-basic11.dtd">`,
	"mobile":       `<!DOCTYPE html PUBLIC "-//WAPFORUM//DTD XHTML Mobile 1.2//EN" "http://www.openmobilealliance.org/tech/DTD/xhtml-mobile12.dtd">`,
	"plist":        `<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">`,
	"svg1.1":       `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">`,
	"smil1":        `<!DOCTYPE smil PUBLIC "-//W3C//DTD SMIL 1.0//EN" "http://www.w3.org/TR/REC-smil/SMIL10.dtd">`,
	"smil2":        `<!DOCTYPE smil PUBLIC "-//W3C//DTD SMIL 2.0//EN" "http://www.w3.org/TR/REC-SMIL2.0/SMIL20.dtd">`,
}

// DoctypeLiteral resolves the text a "doctype <kind>" line emits, and
// whether it switches the compilation into XML mode.
func DoctypeLiteral(kind string) (literal string, xml bool) {
	if kind == "xml" {
		return Doctypes["xml"], true
	}
	if lit, ok := Doctypes[kind]; ok {
		return lit, false
	}
	return "<!DOCTYPE " + kind + ">", false
}

// VoidTags is the fixed void-element set from spec.md §3.
var VoidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// LiteralTags is the fixed literal-tag set from spec.md §3: any ancestor
// in this set suppresses indentation in emitted output.
var LiteralTags = map[string]bool{
	"pre": true, "code": true, "textarea": true, "xmp": true,
}
