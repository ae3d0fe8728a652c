package codegen

import (
	"github.com/pugc-lang/pugc/internal/assemble"
	"github.com/pugc-lang/pugc/internal/ir"
)

// Artifact builds the complete host-script string for prog: the
// text/template preamble, the hand-assembled body, and the epilogue
// (spec.md §4.7).
func Artifact(prog *ir.Program, opts Options) string {
	data := TemplateData{
		Properties:         opts.Properties,
		VoidSelfClose:      opts.VoidSelfClose,
		ContainerSelfClose: opts.ContainerSelfClose,
	}
	preamble := execTemplate("preamble", data)
	body := Render(prog, opts)
	epilogue := execTemplate("epilogue", data)
	return assemble.Assemble(preamble, body, epilogue)
}
