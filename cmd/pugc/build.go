package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pugc-lang/pugc/transpiler"
)

func newBuildCmd(fs *flagSet) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build <template>",
		Short: "Compile a template into its host-script artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := fs.toFlags()
			if err != nil {
				return err
			}
			root := filepath.ToSlash(args[0])
			res, err := transpiler.Compile(os.DirFS("."), root, flags)
			if err != nil {
				return &cliError{code: exitCompileError, err: err}
			}
			printWarnings(res.Warnings)
			return writeOutput(out, res.Artifact)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the artifact here instead of stdout")
	return cmd
}

func writeOutput(out, content string) error {
	if out == "" {
		_, err := fmt.Print(content)
		return err
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return &cliError{code: exitIOError, err: err}
	}
	return nil
}
