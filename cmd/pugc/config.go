package main

import (
	"os"

	"github.com/pugc-lang/pugc/transpiler"
)

func loadConfigFile(path string) (transpiler.Flags, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return transpiler.Flags{}, &cliError{code: exitIOError, err: err}
	}
	f, err := transpiler.LoadYAML(data)
	if err != nil {
		return transpiler.Flags{}, &cliError{code: exitInvalidArguments, err: err}
	}
	return f, nil
}
