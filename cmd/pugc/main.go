package main

import (
	"os"

	"github.com/pugc-lang/pugc/internal/log"
)

// Exit code constants, the same shape cmd/devcmd/main.go uses: one code
// per pipeline stage that can fail.
const (
	exitSuccess          = 0
	exitInvalidArguments = 1
	exitIOError          = 2
	exitCompileError     = 3
	exitRuntimeError     = 4
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("%s", err)
		os.Exit(exitCodeFor(err))
	}
}
