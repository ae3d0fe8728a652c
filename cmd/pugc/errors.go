package main

import (
	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/log"
)

// cliError pairs an error with the exit code exitCodeFor should return for
// it, the same per-stage exit code table cmd/devcmd/main.go hardcodes
// inline (ExitIOError, ExitParseError, ExitGenerationError), generalized
// here so any layer can raise its own.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return exitCompileError
}

// printWarnings surfaces non-fatal compile warnings (spec.md §9) through
// the same colorized logger the CLI's "-debug" flag gates.
func printWarnings(warnings []diag.Warning) {
	for _, w := range warnings {
		log.Warnf("%s", w.String())
	}
}
