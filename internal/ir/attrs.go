package ir

// PlanKind discriminates how one resolved attribute plan entry is
// rendered (spec.md §4.5 "Attribute emission", §8 properties 6-8).
type PlanKind int

const (
	PlanPlain PlanKind = iota // out_attr(name, expr, escape)
	PlanClass                 // out_class(...sources), folding .class + every class= attr
	PlanStyle                 // out_style(...sources), folding every style= attr
)

// AttrPlan is one finished attribute emission for an element, after
// folding the "#id"/".class" shorthand together with any id=/class=/style=
// attribute pairs so every class (or style) source — compile-time literal
// or runtime expression — is merged by a single out_class/out_style call
// rather than emitted as separate duplicate attributes.
type AttrPlan struct {
	Name string
	Kind PlanKind

	// PlanPlain
	Expr   string
	Escape bool
	Bare   bool

	// PlanClass
	ClassLiterals []string // compile-time-known ".class"/id-adjacent tokens
	ClassExprs    []string // each class=/!=class expression, in source order

	// PlanStyle
	StyleExprs []string // each style=/!=style expression, in source order
}

// BuildAttrPlan computes the final attribute list for a NodeElement,
// merging #id/.class shorthand with any parenthesized attrs of the same
// name.
func (n *Node) BuildAttrPlan() []AttrPlan {
	var plain []AttrPlan
	idPlan := AttrPlan{Name: "id", Kind: PlanPlain, Escape: true}
	hasID := n.ID != ""
	if hasID {
		idPlan.Expr = `"` + n.ID + `"`
	}
	classPlan := AttrPlan{Name: "class", Kind: PlanClass, ClassLiterals: append([]string{}, n.Classes...)}
	hasClass := len(n.Classes) > 0
	stylePlan := AttrPlan{Name: "style", Kind: PlanStyle}
	hasStyle := false

	for _, a := range n.Attrs {
		switch a.Name {
		case "id":
			hasID = true
			idPlan.Expr = a.Expr
			idPlan.Escape = a.Escape
		case "class":
			hasClass = true
			classPlan.ClassExprs = append(classPlan.ClassExprs, a.Expr)
		case "style":
			hasStyle = true
			stylePlan.StyleExprs = append(stylePlan.StyleExprs, a.Expr)
		default:
			plain = append(plain, AttrPlan{Name: a.Name, Kind: PlanPlain, Expr: a.Expr, Escape: a.Escape, Bare: a.Bare})
		}
	}

	var out []AttrPlan
	if hasID {
		out = append(out, idPlan)
	}
	if hasClass {
		out = append(out, classPlan)
	}
	out = append(out, plain...)
	if hasStyle {
		out = append(out, stylePlan)
	}
	return out
}
