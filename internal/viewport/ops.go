package viewport

// OpKind selects what an Op does.
type OpKind int

const (
	OpSetText OpKind = iota
	OpSetAttribute
	OpRemoveAttribute
	OpRenderFragment
)

// Op is one deferred write to a view port. Renderers return ops instead of
// writing directly so they stay pure.
type Op struct {
	Kind   OpKind
	Target Target
	Name   string
	Value  string
}

// SetText builds an op replacing the target's text.
func SetText(t Target, text string) Op {
	return Op{Kind: OpSetText, Target: t, Value: text}
}

// SetAttribute builds an op setting an attribute.
func SetAttribute(t Target, name, value string) Op {
	return Op{Kind: OpSetAttribute, Target: t, Name: name, Value: value}
}

// RemoveAttribute builds an op removing an attribute.
func RemoveAttribute(t Target, name string) Op {
	return Op{Kind: OpRemoveAttribute, Target: t, Name: name}
}

// RenderFragment builds an op replacing the target's children with markup.
func RenderFragment(t Target, html string) Op {
	return Op{Kind: OpRenderFragment, Target: t, Value: html}
}

// Apply performs ops in order.
func Apply(vp ViewPort, ops []Op) {
	for _, op := range ops {
		switch op.Kind {
		case OpSetText:
			vp.SetText(op.Target, op.Value)
		case OpSetAttribute:
			vp.SetAttribute(op.Target, op.Name, op.Value)
		case OpRemoveAttribute:
			vp.RemoveAttribute(op.Target, op.Name)
		case OpRenderFragment:
			vp.RenderFragment(op.Target, op.Value)
		}
	}
}
