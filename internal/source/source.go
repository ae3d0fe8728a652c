// Package source reads template files into annotated line sequences.
package source

import (
	"bufio"
	"bytes"
	"io/fs"
	"time"
)

// Line is one physical source line plus its origin. Newlines inside a Line
// are impossible: the loader splits on them before a Line is ever created.
type Line struct {
	Text string
	Path string
	Num  int // 1-based
}

// DepMap tracks every file opened during a load/resolve, keyed by path, so
// an external cache collaborator can invalidate compiled artifacts when any
// transitive dependency changes (spec.md §4.2 "Dependency tracking").
type DepMap map[string]time.Time

// NotFoundError reports a missing root template.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "template not found: " + e.Path
}

// Load reads path from fsys and splits it into annotated lines, recording
// its modification time into deps (deps may be nil to skip tracking).
func Load(fsys fs.FS, path string, deps DepMap) ([]Line, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}
	defer f.Close()

	if deps != nil {
		if info, statErr := fs.Stat(fsys, path); statErr == nil {
			deps[path] = info.ModTime()
		}
	}

	return split(f, path)
}

// LoadStream splits an in-memory stream into annotated lines attributed to
// virtualPath (used when the root template is supplied as a pipeline rather
// than a file, per spec.md §4.1).
func LoadStream(content string, virtualPath string) ([]Line, error) {
	return split(bytes.NewBufferString(content), virtualPath)
}

func split(r interface{ Read([]byte) (int, error) }, path string) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []Line
	n := 0
	for scanner.Scan() {
		n++
		lines = append(lines, Line{Text: scanner.Text(), Path: path, Num: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
