package codegen

import (
	"fmt"

	"github.com/pugc-lang/pugc/internal/diag"
	"github.com/pugc-lang/pugc/internal/interp"
	"github.com/pugc-lang/pugc/internal/ir"
	"github.com/pugc-lang/pugc/internal/source"
)

func resolveTagName(name string, opts Options) string {
	if opts.KebabCase {
		return kebab(name)
	}
	return name
}

// emitElementChain builds one NodeElement for spec and, if the line uses
// block expansion ("tag: tag2 content", spec.md §4.5), recurses to build
// the next tag in the chain inside the previous one's Children. lineIndent
// is the physical source line's own indent, shared by every synthetic
// frame the chain pushes so a true sibling line at or above that indent
// pops the whole chain in one popTo call.
func (g *generator) emitElementChain(lines []source.Line, i, lineIndent int, line source.Line, spec tagSpec) (int, error) {
	opts := g.effectiveOpts()
	node := &ir.Node{
		Kind:         ir.NodeElement,
		SrcLine:      line.Num,
		SrcPath:      line.Path,
		Tag:          resolveTagName(spec.Name, opts),
		ID:           spec.ID,
		Classes:      spec.Classes,
		Attrs:        buildAttrs(spec.AttrsRaw),
		MergeExpr:    spec.MergeExpr,
		ExplicitSelf: spec.SelfClose,
	}

	if spec.HasContent {
		switch spec.Op {
		case "!=":
			node.Inline = []ir.Part{{Kind: ir.PartRaw, Expr: spec.Content}}
		case "=":
			node.Inline = []ir.Part{{Kind: ir.PartEscaped, Expr: spec.Content}}
		default:
			segs, err := interp.Parse(spec.Content)
			if err != nil {
				return 0, diag.New(diag.ErrParse, line.Path, line.Num, err.Error())
			}
			node.Inline = toParts(segs)
		}
	}
	g.append(node)

	if spec.HasExpand {
		nested, rest, ok := parseTag(spec.Expand)
		if !ok || rest != "" {
			return 0, diag.New(diag.ErrParse, line.Path, line.Num, fmt.Sprintf("unrecognized expansion: %q", spec.Expand))
		}
		g.push(&frame{kind: frameElement, indent: lineIndent, container: &node.Children})
		return g.emitElementChain(lines, i, lineIndent, line, nested)
	}

	if hasDeeperChild(lines, i, lineIndent) {
		g.push(&frame{kind: frameElement, indent: lineIndent, container: &node.Children})
	}
	return i + 1, nil
}
