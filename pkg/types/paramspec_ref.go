package types

// ParamSpecArgsRefType is the type an expression has when it denotes
// `*args` forwarding of a param-spec (written `P.args` at the use site).
// The normalizer (C1) looks for this exact type to recognize a
// `*args, **kwargs` forwarding pair and fold it into one ParamSpec
// argument (spec §4.1).
type ParamSpecArgsRefType struct {
	Var *ParamSpecVar
}

func (p *ParamSpecArgsRefType) typeNode()      {}
func (p *ParamSpecArgsRefType) String() string { return p.Var.Name() + ".args" }
func (p *ParamSpecArgsRefType) Equals(other Type) bool {
	o, ok := other.(*ParamSpecArgsRefType)
	return ok && o.Var == p.Var
}

// ParamSpecKwargsRefType is the `**kwargs` counterpart.
type ParamSpecKwargsRefType struct {
	Var *ParamSpecVar
}

func (p *ParamSpecKwargsRefType) typeNode()      {}
func (p *ParamSpecKwargsRefType) String() string { return p.Var.Name() + ".kwargs" }
func (p *ParamSpecKwargsRefType) Equals(other Type) bool {
	o, ok := other.(*ParamSpecKwargsRefType)
	return ok && o.Var == p.Var
}
