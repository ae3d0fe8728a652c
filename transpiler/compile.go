package transpiler

import (
	"errors"
	"io/fs"

	"github.com/pugc-lang/pugc/internal/codegen"
	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/hostrt"
	"github.com/pugc-lang/pugc/internal/ir"
	"github.com/pugc-lang/pugc/internal/resolver"
	"github.com/pugc-lang/pugc/internal/source"
)

// Result is one successful compile: the structured program, the textual
// host-script artifact built from it, and the dependency map a caching
// layer (internal/viewengine) needs for invalidation.
type Result struct {
	Program  *ir.Program
	Artifact string
	Deps     source.DepMap
	// Warnings are non-fatal diagnostics collected during generation
	// (spec.md §9's switch-arm open question), surfaced alongside a
	// successful compile rather than failing it.
	Warnings []diag.Warning
}

func (f Flags) resolverOpts() resolver.Options {
	return resolver.Options{Extension: f.Extension, BaseDir: f.BaseDir}
}

func (f Flags) codegenOpts() codegen.Options {
	return codegen.Options{
		Properties:         f.Properties,
		VoidSelfClose:      f.VoidSelfClose,
		ContainerSelfClose: f.ContainerSelfClose,
		KebabCase:          f.KebabCase,
	}
}

// Compile resolves, generates and assembles rootPath from fsys into a
// Result (spec.md §4's full pipeline, one call).
func Compile(fsys fs.FS, rootPath string, flags Flags) (*Result, error) {
	lines, deps, err := resolver.Resolve(fsys, rootPath, flags.resolverOpts())
	if err != nil {
		return nil, wrapDiag(fsys, err, flags)
	}
	return generate(fsys, lines, deps, flags)
}

// CompileStream is Compile for an in-memory root template supplied as a
// string rather than read from a file.
func CompileStream(fsys fs.FS, content, virtualPath string, flags Flags) (*Result, error) {
	lines, deps, err := resolver.ResolveStream(fsys, content, virtualPath, flags.resolverOpts())
	if err != nil {
		return nil, wrapDiag(fsys, err, flags)
	}
	return generate(fsys, lines, deps, flags)
}

func generate(fsys fs.FS, lines []source.Line, deps source.DepMap, flags Flags) (*Result, error) {
	prog, err := codegen.Generate(lines, flags.codegenOpts())
	if err != nil {
		return nil, wrapDiag(fsys, err, flags)
	}
	artifact := codegen.Artifact(prog, flags.codegenOpts())
	return &Result{Program: prog, Artifact: artifact, Deps: deps, Warnings: prog.Warnings}, nil
}

// Render compiles rootPath and immediately interprets it against data via
// internal/hostrt, returning the rendered document directly — the path
// that doesn't need an external host engine at all.
func Render(fsys fs.FS, rootPath string, data map[string]interface{}, flags Flags) (string, error) {
	res, err := Compile(fsys, rootPath, flags)
	if err != nil {
		return "", err
	}
	return RenderProgram(fsys, res.Program, data, flags)
}

// RenderProgram interprets an already-compiled Program, letting a caller
// that needs res.Warnings (e.g. the CLI) call Compile itself first instead
// of going through Render.
func RenderProgram(fsys fs.FS, prog *ir.Program, data map[string]interface{}, flags Flags) (string, error) {
	out, err := hostrt.Run(prog, data, toHostOpts(flags))
	if err != nil {
		return "", wrapRuntimeErr(fsys, err, flags)
	}
	return out, nil
}

func toHostOpts(f Flags) hostrt.Options {
	return hostrt.Options{
		Properties:         f.Properties,
		VoidSelfClose:      f.VoidSelfClose,
		ContainerSelfClose: f.ContainerSelfClose,
		KebabCase:          f.KebabCase,
	}
}

// wrapDiag attaches flags.ErrorContext to a *diag.Error's diagnostic and
// formats a source-excerpt message (spec.md §4.6), leaving any other
// error kind untouched.
func wrapDiag(fsys fs.FS, err error, flags Flags) error {
	var de *diag.Error
	if errors.As(err, &de) {
		de.Diagnostic.Context = flags.ErrorContext
		return &FormattedError{Err: de, Formatted: diag.Format(fsys, de.Diagnostic)}
	}
	return err
}

func wrapRuntimeErr(fsys fs.FS, err error, flags Flags) error {
	var re *diag.RuntimeError
	if errors.As(err, &re) {
		d := diag.Diagnostic{Path: re.PugPath, Line: re.PugLine, Detail: re.Error(), Context: flags.ErrorContext}
		return &FormattedError{Err: re, Formatted: diag.Format(fsys, d)}
	}
	return err
}

// FormattedError pairs the original error (for errors.Is/As) with its
// rendered source-excerpt text (spec.md §4.6's display form).
type FormattedError struct {
	Err       error
	Formatted string
}

func (e *FormattedError) Error() string { return e.Formatted }
func (e *FormattedError) Unwrap() error { return e.Err }
