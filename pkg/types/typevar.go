package types

import "strings"

// TypeVarLike is the closed sum described in spec §3: an ordinary type
// variable, a type-variable-tuple, or a param-spec. Pattern-match on the
// concrete type rather than growing an open interface hierarchy (§9).
type TypeVarLike interface {
	typeVarLikeNode()
	Name() string
	Site() DefiningSite
}

// TypeVar is an ordinary generic type variable, optionally bounded or
// constrained to a closed set of alternatives, with an optional default
// used when nothing constrains it (spec §4.4 "Unused type variables").
type TypeVar struct {
	VarName    string
	Site_      DefiningSite
	Bound      Type   // upper bound ("T extends Bound"), nil if unbounded
	Constraint []Type // closed alternative set ("T: (int, str)"), nil if unconstrained
	Default    Type   // nil if no declared default
}

func (tv *TypeVar) typeVarLikeNode() {}
func (tv *TypeVar) Name() string     { return tv.VarName }
func (tv *TypeVar) Site() DefiningSite { return tv.Site_ }

// TypeVarTupleVar binds a variadic positional segment (spec §3, §4.4).
type TypeVarTupleVar struct {
	VarName string
	Site_   DefiningSite
}

func (tv *TypeVarTupleVar) typeVarLikeNode()   {}
func (tv *TypeVarTupleVar) Name() string       { return tv.VarName }
func (tv *TypeVarTupleVar) Site() DefiningSite { return tv.Site_ }

// ParamSpecVar binds an entire (*args, **kwargs) tail of another callable.
type ParamSpecVar struct {
	VarName string
	Site_   DefiningSite
}

func (ps *ParamSpecVar) typeVarLikeNode()   {}
func (ps *ParamSpecVar) Name() string       { return ps.VarName }
func (ps *ParamSpecVar) Site() DefiningSite { return ps.Site_ }

// TypeVarType is a reference to a TypeVar occurring within a signature or
// class body (what you write as "T" inside the generic's own definition).
type TypeVarType struct {
	Var *TypeVar
}

func (t *TypeVarType) typeNode()      {}
func (t *TypeVarType) String() string { return t.Var.VarName }
func (t *TypeVarType) Equals(other Type) bool {
	o, ok := other.(*TypeVarType)
	return ok && o.Var == t.Var
}

// ParamSpecShape is what a ParamSpecVar accumulates: the shape of a
// callable's trailing parameter list, i.e. enough to re-synthesize the
// (*args: X, **kwargs: Y) tail it was bound from, or an arbitrary ordered
// parameter list when the source was a lambda/function literal.
type ParamSpecShape struct {
	Params []*Param // ordered parameter list this param-spec captures
}

func (p *ParamSpecShape) String() string {
	parts := make([]string, len(p.Params))
	for i, prm := range p.Params {
		parts[i] = prm.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *ParamSpecShape) Equals(other *ParamSpecShape) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.Params) != len(other.Params) {
		return false
	}
	for i, prm := range p.Params {
		if !prm.Equals(other.Params[i]) {
			return false
		}
	}
	return true
}
