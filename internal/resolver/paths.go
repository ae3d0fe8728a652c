package resolver

import (
	"io/fs"
	"path"
	"strings"
)

// Options mirrors the subset of spec.md §3's compiler flags the resolver
// consults.
type Options struct {
	Extension string // default suffix for include/extend resolution, with or without a leading dot
	BaseDir   string // root for absolute include paths; empty => current-file dir
}

// resolveDir picks the directory a reference path resolves against: an
// absolute ('/' or '\'-prefixed) reference resolves against BaseDir when
// set, else the current file's directory; a relative reference always
// resolves against the current file's directory (spec.md §4.2).
func resolveDir(currentPath, ref string, opts Options) (dir string, trimmed string) {
	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`) {
		trimmed = strings.TrimLeft(ref, `/\`)
		if opts.BaseDir != "" {
			return opts.BaseDir, trimmed
		}
		return path.Dir(currentPath), trimmed
	}
	return path.Dir(currentPath), ref
}

// candidates returns the paths to try, in order, for a reference from
// currentPath: the literal resolution, then (if it carries no extension)
// the configured extension, then the literal ".pug" fallback. The .pug
// fallback is tried even for a non-default configured extension — spec.md
// §9 preserves this as a documented quirk rather than "fixing" it.
func candidates(currentPath, ref string, opts Options) []string {
	dir, trimmed := resolveDir(currentPath, ref, opts)
	resolved := path.Join(dir, trimmed)

	if path.Ext(resolved) != "" {
		return []string{resolved}
	}

	ext := strings.TrimPrefix(opts.Extension, ".")
	if ext == "" {
		ext = "pug"
	}
	out := []string{resolved, resolved + "." + ext}
	if ext != "pug" {
		out = append(out, resolved+".pug")
	}
	return out
}

// find tries each candidate in order and returns the first that exists.
func find(fsys fs.FS, currentPath, ref string, opts Options) (string, bool) {
	for _, c := range candidates(currentPath, ref, opts) {
		if _, err := fs.Stat(fsys, c); err == nil {
			return c, true
		}
	}
	return "", false
}
