package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pugc-lang/pugc/transpiler"
)

func newRenderCmd(fs *flagSet) *cobra.Command {
	var out string
	var dataPath string
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Compile a template and interpret it against a JSON data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := fs.toFlags()
			if err != nil {
				return err
			}
			data, err := loadData(dataPath)
			if err != nil {
				return err
			}
			root := filepath.ToSlash(args[0])
			fsys := os.DirFS(".")
			res, err := transpiler.Compile(fsys, root, flags)
			if err != nil {
				return &cliError{code: exitCompileError, err: err}
			}
			printWarnings(res.Warnings)
			html, err := transpiler.RenderProgram(fsys, res.Program, data, flags)
			if err != nil {
				return &cliError{code: exitRuntimeError, err: err}
			}
			return writeOutput(out, html)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the rendered document here instead of stdout")
	cmd.Flags().StringVar(&dataPath, "data", "", "JSON file bound to $data (default: empty object)")
	return cmd
}

func loadData(path string) (map[string]interface{}, error) {
	if path == "" {
		return map[string]interface{}{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &cliError{code: exitIOError, err: err}
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &cliError{code: exitInvalidArguments, err: err}
	}
	return data, nil
}
