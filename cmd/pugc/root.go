package main

import (
	"github.com/spf13/cobra"

	"github.com/pugc-lang/pugc/internal/log"
	"github.com/pugc-lang/pugc/transpiler"
)

// flagSet holds every persistent CLI flag newRootCmd wires onto both
// subcommands, mirroring spec.md §3's compiler flags (cmd/devcmd/main.go's
// flat flag.StringVar/BoolVar set, lifted onto cobra/pflag since the
// teacher's own go.mod already depends on cobra).
type flagSet struct {
	extension          string
	baseDir            string
	properties         bool
	voidSelfClose      bool
	containerSelfClose bool
	kebabCase          bool
	errorContext       int
	config             string
	debug              bool
}

func (fs *flagSet) toFlags() (transpiler.Flags, error) {
	base := transpiler.DefaultFlags()
	if fs.config != "" {
		loaded, err := loadConfigFile(fs.config)
		if err != nil {
			return transpiler.Flags{}, err
		}
		base = loaded
	}
	return transpiler.New(
		transpiler.WithExtension(orDefault(fs.extension, base.Extension)),
		transpiler.WithBaseDir(orDefault(fs.baseDir, base.BaseDir)),
		transpiler.WithProperties(fs.properties || base.Properties),
		transpiler.WithVoidSelfClose(fs.voidSelfClose || base.VoidSelfClose),
		transpiler.WithContainerSelfClose(fs.containerSelfClose || base.ContainerSelfClose),
		transpiler.WithKebabCase(fs.kebabCase || base.KebabCase),
		transpiler.WithErrorContext(orDefaultInt(fs.errorContext, base.ErrorContext)),
	), nil
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orDefaultInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	fs := &flagSet{}

	root := &cobra.Command{
		Use:           "pugc",
		Short:         "Compile a Pug-dialect template into a host-script artifact",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs.debug {
				log.SetLevel(log.LevelDebug)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&fs.extension, "extension", "", "default include/extends file extension (default \".pug\")")
	pf.StringVar(&fs.baseDir, "base-dir", "", "root for absolute include/extends paths")
	pf.BoolVar(&fs.properties, "properties", false, "render boolean attributes bare (name) instead of name=\"name\"")
	pf.BoolVar(&fs.voidSelfClose, "void-self-close", false, "self-close empty void elements")
	pf.BoolVar(&fs.containerSelfClose, "container-self-close", false, "self-close empty non-void elements")
	pf.BoolVar(&fs.kebabCase, "kebab-case", false, "convert CamelCase tag names to kebab-case")
	pf.IntVar(&fs.errorContext, "error-context", 0, "source lines of context around a diagnostic (default 2)")
	pf.StringVar(&fs.config, "config", "", "YAML file of compiler flags (spec.md §3)")
	pf.BoolVar(&fs.debug, "debug", false, "enable debug logging")

	root.AddCommand(newBuildCmd(fs))
	root.AddCommand(newRenderCmd(fs))
	return root
}
