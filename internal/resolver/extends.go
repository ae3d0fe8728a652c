package resolver

import (
	"fmt"
	"strings"

	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/source"
)

// captureBlock returns the lines nested under lines[headerIdx] (those with
// indent strictly greater than the header's, blank lines kept verbatim) and
// the index just past the captured block.
func captureBlock(lines []source.Line, headerIdx int) ([]source.Line, int) {
	headerIndent := indentOf(lines[headerIdx].Text)
	i := headerIdx + 1
	for i < len(lines) {
		if isBlank(lines[i].Text) {
			i++
			continue
		}
		if indentOf(lines[i].Text) <= headerIndent {
			break
		}
		i++
	}
	return lines[headerIdx+1 : i], i
}

// scanChildOverrides walks a child template (the one with the "extends"
// directive) collecting its block-override bodies and its top-level mixin
// definitions, skipping "//-" comment-out regions entirely (spec.md §4.2
// Pass A, step 3).
func scanChildOverrides(lines []source.Line) (blocks map[string][]source.Line, mixinLines []source.Line) {
	blocks = make(map[string][]source.Line)
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlank(line.Text) {
			i++
			continue
		}
		if isCommentOut(line.Text) {
			_, end := captureBlock(lines, i)
			i = end
			continue
		}
		if _, ok := mixinName(line.Text); ok && indentOf(line.Text) == 0 {
			body, end := captureBlock(lines, i)
			mixinLines = append(mixinLines, line)
			mixinLines = append(mixinLines, body...)
			i = end
			continue
		}
		if name, ok := blockName(line.Text); ok {
			if _, exists := blocks[name]; !exists {
				body, end := captureBlock(lines, i)
				blocks[name] = body
				i = end
				continue
			}
		}
		i++
	}
	return blocks, mixinLines
}

// indentChar guesses the whitespace character a set of lines is indented
// with (templates are assumed internally consistent, per spec.md §3).
func indentChar(lines []source.Line) byte {
	for _, l := range lines {
		if len(l.Text) > 0 && (l.Text[0] == ' ' || l.Text[0] == '\t') {
			return l.Text[0]
		}
	}
	return ' '
}

// reindent shifts every non-blank line in body by delta columns of ch,
// preserving blank lines verbatim.
func reindent(body []source.Line, delta int, ch byte) []source.Line {
	if delta == 0 {
		return body
	}
	out := make([]source.Line, len(body))
	for i, l := range body {
		if isBlank(l.Text) {
			out[i] = l
			continue
		}
		cur := indentOf(l.Text)
		next := cur + delta
		if next < 0 {
			next = 0
		}
		out[i] = source.Line{Text: strings.Repeat(string(ch), next) + trimmed(l.Text), Path: l.Path, Num: l.Num}
	}
	return out
}

// applyBlockOverrides walks parent (already fully resolved), replacing each
// "block NAME" directive's default body with the corresponding entry of
// overrides, reindented so its minimum content indent lines up with the
// directive's own indent plus the file's natural nesting offset.
func applyBlockOverrides(parent []source.Line, overrides map[string][]source.Line) []source.Line {
	var out []source.Line
	i := 0
	for i < len(parent) {
		line := parent[i]
		name, ok := blockName(line.Text)
		if !ok {
			out = append(out, line)
			i++
			continue
		}
		defaultBody, end := captureBlock(parent, i)
		out = append(out, line)
		childBody, hasOverride := overrides[name]
		if !hasOverride {
			out = append(out, defaultBody...)
			i = end
			continue
		}
		delta := reindentDelta(line, defaultBody, childBody)
		out = append(out, reindent(childBody, delta, indentChar(childBody))...)
		i = end
	}
	return out
}

func reindentDelta(header source.Line, defaultBody, childBody []source.Line) int {
	targetMin := minIndent(defaultBody)
	if len(defaultBody) == 0 {
		targetMin = indentOf(header.Text) + 2
	}
	sourceMin := minIndent(childBody)
	if sourceMin < 0 {
		return 0
	}
	return targetMin - sourceMin
}

func minIndent(lines []source.Line) int {
	min := -1
	for _, l := range lines {
		if isBlank(l.Text) {
			continue
		}
		n := indentOf(l.Text)
		if min == -1 || n < min {
			min = n
		}
	}
	return min
}

// resolveExtends implements spec.md §4.2 Pass A. If the first non-empty
// line is not "extends <path>", lines are returned unchanged (the Idempotent
// resolution property, spec.md §8 property 2).
func resolveExtends(loader *loaderState, currentPath string, lines []source.Line, ancestors map[string]bool) ([]source.Line, error) {
	idx, firstLine, found := firstNonBlank(lines)
	if !found {
		return lines, nil
	}
	parentRef, isExtends := matchKeyword(firstLine.Text, "extends")
	if !isExtends {
		return lines, nil
	}

	parentPath, ok := find(loader.fsys, currentPath, parentRef, loader.opts)
	if !ok {
		return nil, diag.New(diag.ErrExtendsNotFound, currentPath, firstLine.Num,
			fmt.Sprintf("extends target not found: %q", parentRef))
	}
	if ancestors[parentPath] {
		return nil, diag.New(diag.ErrCyclicExtends, currentPath, firstLine.Num,
			fmt.Sprintf("cyclic extends involving %q", parentPath))
	}

	nextAncestors := make(map[string]bool, len(ancestors)+1)
	for k := range ancestors {
		nextAncestors[k] = true
	}
	nextAncestors[currentPath] = true

	parentLines, err := resolveFile(loader, parentPath, nextAncestors)
	if err != nil {
		return nil, err
	}

	rest := append(append([]source.Line{}, lines[:idx]...), lines[idx+1:]...)
	overrides, mixinLines := scanChildOverrides(rest)
	merged := applyBlockOverrides(parentLines, overrides)

	return append(mixinLines, merged...), nil
}

func firstNonBlank(lines []source.Line) (int, source.Line, bool) {
	for i, l := range lines {
		if !isBlank(l.Text) {
			return i, l, true
		}
	}
	return 0, source.Line{}, false
}
