package codegen

import (
	"bytes"
	"text/template"
)

// TemplateData is executed against the "preamble" and "epilogue" named
// templates below — the direct analogue of the teacher's
// TemplateRegistry.GetAllTemplates() + ExecuteTemplate("main", data)
// pattern (pkgs/generator/go_template.go), scaled down to the two static
// skeleton pieces the artifact needs; the body itself is hand-assembled
// per line by Render (spec.md §4.5's dispatch is inherently imperative).
type TemplateData struct {
	Properties         bool
	VoidSelfClose      bool
	ContainerSelfClose bool
}

// registry mirrors the teacher's named-component registry: each entry is
// parsed once into the shared *template.Template under its own name.
var registry = template.Must(template.New("pugc").Parse(`
{{define "preamble"}}(function(data) {
  var src_line = 0;
  var src_path = "";
  var __out = [];
  function out_attr(name, value, escape) {
    if (value === null || value === undefined || value === false) { return ""; }
    if (value === true) {
      return {{if .Properties}}" " + name{{else}}" " + name + "=\"" + name + "\""{{end}};
    }
    var v = escape ? out_enc(String(value)) : String(value);
    return " " + name + "=\"" + v + "\"";
  }
  function out_class() {
    var seen = {};
    var parts = [];
    function flatten(v) {
      if (v === null || v === undefined || v === false) { return; }
      if (Array.isArray(v)) { v.forEach(flatten); return; }
      if (typeof v === "object") {
        Object.keys(v).forEach(function(k) { if (v[k]) { flatten(k); } });
        return;
      }
      String(v).split(/\s+/).forEach(function(tok) {
        if (tok && !seen[tok]) { seen[tok] = true; parts.push(tok); }
      });
    }
    for (var i = 0; i < arguments.length; i++) { flatten(arguments[i]); }
    return parts.join(" ");
  }
  function out_style() {
    var parts = [];
    function kebab(k) { return k.replace(/[A-Z]/g, function(c) { return "-" + c.toLowerCase(); }); }
    function flatten(v) {
      if (v === null || v === undefined || v === false) { return; }
      if (typeof v === "object" && !Array.isArray(v)) {
        Object.keys(v).forEach(function(k) { parts.push(kebab(k) + ": " + v[k]); });
        return;
      }
      var s = String(v).trim();
      if (s) { parts.push(s.replace(/;$/, "")); }
    }
    for (var i = 0; i < arguments.length; i++) { flatten(arguments[i]); }
    return parts.join("; ");
  }
  function out_merged_attrs(inline, dynamic) {
    var merged = {};
    Object.keys(inline || {}).forEach(function(k) { merged[k] = inline[k]; });
    Object.keys(dynamic || {}).forEach(function(k) {
      if (k === "class" && merged.class) {
        merged.class = out_class(merged.class, dynamic.class);
      } else if (k === "style" && merged.style) {
        merged.style = out_style(merged.style, dynamic.style);
      } else {
        merged[k] = dynamic[k];
      }
    });
    return merged;
  }
  function out_merged_attrs_text(dynamic) {
    var merged = out_merged_attrs({}, dynamic || {});
    var parts = [];
    Object.keys(merged).forEach(function(k) {
      parts.push(out_attr(k, merged[k], k !== "class" && k !== "style"));
    });
    return parts.join("");
  }
  function out_enc(s) {
    return String(s)
      .replace(/&/g, "&amp;")
      .replace(/</g, "&lt;")
      .replace(/>/g, "&gt;")
      .replace(/"/g, "&quot;");
  }
  function apply_filters(chain, text) {
    if (typeof __filters === "undefined") { return text; }
    return __filters.run(chain, text);
  }
  try {
{{end}}
{{define "epilogue"}}
    return __out.join("\n");
  } catch (e) {
    e.PugLine = src_line;
    e.PugPath = src_path;
    throw e;
  }
})
{{end}}
`))

func execTemplate(name string, data TemplateData) string {
	var buf bytes.Buffer
	_ = registry.ExecuteTemplate(&buf, name, data)
	return buf.String()
}
