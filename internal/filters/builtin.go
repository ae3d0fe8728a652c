package filters

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// markdownFilter renders text as HTML via blackfriday — spec.md §4.9's
// ":markdown" filter.
func markdownFilter(text string, args map[string]string) (string, error) {
	return string(blackfriday.Run([]byte(text))), nil
}

// jsonFilter re-marshals text through encoding/json, honoring an
// "indent=N" argument the way ":json(indent=2)" is written in templates.
// text is expected to already be valid JSON (the filter block's template
// text, passed through verbatim); this filter's job is reformatting, not
// producing JSON from scratch.
func jsonFilter(text string, args map[string]string) (string, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return "", fmt.Errorf("invalid JSON input: %w", err)
	}
	if indentArg, ok := args["indent"]; ok {
		n, err := strconv.Atoi(indentArg)
		if err != nil {
			return "", fmt.Errorf("invalid indent %q: %w", indentArg, err)
		}
		out, err := json.MarshalIndent(v, "", strings.Repeat(" ", n))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// cdataFilter wraps text in a CDATA section — spec.md §4.9's ":cdata",
// used under an XML-mode doctype.
func cdataFilter(text string, args map[string]string) (string, error) {
	return "<![CDATA[" + strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>") + "]]>", nil
}

// escapeFilter HTML-entity-encodes text verbatim.
func escapeFilter(text string, args map[string]string) (string, error) {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(text), nil
}
