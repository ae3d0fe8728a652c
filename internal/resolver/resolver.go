// Package resolver expands a root template's "extends" and "include"
// directives into a single flat annotated-line sequence (spec.md §4.2).
package resolver

import (
	"io/fs"

	"github.com/pugc-lang/pugc/internal/lex"
	"github.com/pugc-lang/pugc/internal/source"
)

type loaderState struct {
	fsys fs.FS
	opts Options
	deps source.DepMap
}

// Resolve expands extends/include directives starting from rootPath,
// returning the flattened lines and the transitive dependency map (every
// file opened, with its modification time).
func Resolve(fsys fs.FS, rootPath string, opts Options) ([]source.Line, source.DepMap, error) {
	deps := source.DepMap{}
	loader := &loaderState{fsys: fsys, opts: opts, deps: deps}
	lines, err := resolveFile(loader, rootPath, map[string]bool{})
	if err != nil {
		return nil, nil, err
	}
	return joinContinuations(lines), deps, nil
}

// ResolveStream is Resolve for an in-memory root template (no on-disk root
// file; includes/extends it references still resolve against fsys).
func ResolveStream(fsys fs.FS, content string, virtualPath string, opts Options) ([]source.Line, source.DepMap, error) {
	deps := source.DepMap{}
	loader := &loaderState{fsys: fsys, opts: opts, deps: deps}
	raw, err := source.LoadStream(content, virtualPath)
	if err != nil {
		return nil, nil, err
	}
	afterExtends, err := resolveExtends(loader, virtualPath, raw, map[string]bool{})
	if err != nil {
		return nil, nil, err
	}
	lines, err := resolveIncludes(loader, virtualPath, afterExtends)
	if err != nil {
		return nil, nil, err
	}
	return joinContinuations(lines), deps, nil
}

// joinContinuations merges a tag line's multi-line "(...)" attribute list
// (spec.md §4.3) into a single logical source.Line, running
// internal/lex.JoinContinuations over the already-flattened line stream so
// every caller of codegen.Generate sees continuations pre-joined regardless
// of which file the continuation lines came from. The merged line keeps the
// first physical line's Path/Num for diagnostics.
func joinContinuations(lines []source.Line) []source.Line {
	out := make([]source.Line, 0, len(lines))
	i := 0
	for i < len(lines) {
		cur := lines[i]
		j := i
		joined, consumed := lex.JoinContinuations(cur.Text, func() (string, bool) {
			if j+1 < len(lines) {
				j++
				return lines[j].Text, true
			}
			return "", false
		})
		out = append(out, source.Line{Path: cur.Path, Num: cur.Num, Text: joined})
		i += 1 + consumed
	}
	return out
}

// resolveFile runs both passes for one on-disk file, and is the recursion
// point for both extends' "resolve the parent" and include's "recursively
// resolve and splice" (spec.md §4.2).
func resolveFile(loader *loaderState, path string, ancestors map[string]bool) ([]source.Line, error) {
	raw, err := source.Load(loader.fsys, path, loader.deps)
	if err != nil {
		return nil, err
	}
	afterExtends, err := resolveExtends(loader, path, raw, ancestors)
	if err != nil {
		return nil, err
	}
	return resolveIncludes(loader, path, afterExtends)
}
