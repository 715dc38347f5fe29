package types

// TypeArgs is the solver's final output (spec §4.4): a binding from each
// of a signature's (or class's) type-variable-likes to its solved value.
// Exactly one of the three maps holds an entry for any given TypeVarLike,
// keyed by its concrete variant.
type TypeArgs struct {
	Vars       map[*TypeVar]Type
	VarTuples  map[*TypeVarTupleVar]*TupleShape
	ParamSpecs map[*ParamSpecVar]*ParamSpecShape
}

func NewTypeArgs() *TypeArgs {
	return &TypeArgs{
		Vars:       map[*TypeVar]Type{},
		VarTuples:  map[*TypeVarTupleVar]*TupleShape{},
		ParamSpecs: map[*ParamSpecVar]*ParamSpecShape{},
	}
}

// Lookup returns the bound type for an ordinary TypeVarType reference, or
// the reference itself (substitution is a no-op) if the solution has no
// entry for it.
func (a *TypeArgs) Lookup(tv *TypeVar) Type {
	if a == nil {
		return &TypeVarType{Var: tv}
	}
	if t, ok := a.Vars[tv]; ok {
		return t
	}
	return &TypeVarType{Var: tv}
}

// Substitute replaces every TypeVarType/tuple/param-spec occurrence in t
// with its solved value, recursing structurally. Unresolved references
// are left untouched (spec §4.4 "late-bound generics" escape this way).
func Substitute(t Type, args *TypeArgs) Type {
	if t == nil || args == nil {
		return t
	}
	switch v := t.(type) {
	case *TypeVarType:
		if resolved, ok := args.Vars[v.Var]; ok {
			return resolved
		}
		return v
	case *ListType:
		return &ListType{Elem: Substitute(v.Elem, args)}
	case *MappingType:
		return &MappingType{Key: Substitute(v.Key, args), Value: Substitute(v.Value, args)}
	case *TupleType:
		return &TupleType{Shape: substituteTupleShape(v.Shape, args)}
	case *UnionType:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = Substitute(m, args)
		}
		return NewUnionType(members...)
	case *InstantiatedClass:
		newArgs := make([]Type, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			newArgs[i] = Substitute(a, args)
		}
		return &InstantiatedClass{Class: v.Class, TypeArgs: newArgs}
	case *Signature:
		return SubstituteSignature(v, args)
	default:
		return t
	}
}

func substituteTupleShape(shape *TupleShape, args *TypeArgs) *TupleShape {
	if shape == nil {
		return nil
	}
	out := &TupleShape{}
	for _, p := range shape.Prefix {
		out.Prefix = append(out.Prefix, Substitute(p, args))
	}
	for _, s := range shape.Suffix {
		out.Suffix = append(out.Suffix, Substitute(s, args))
	}
	out.Variadic = Substitute(shape.Variadic, args)
	return out
}

// SubstituteSignature rewrites a signature's parameters and return type
// under a solved TypeArgs, expanding a bound type-variable-tuple into its
// solved prefix/variadic/suffix run of positional parameters and a bound
// param-spec into its solved trailing parameter list.
func SubstituteSignature(sig *Signature, args *TypeArgs) *Signature {
	out := &Signature{ReturnType: Substitute(sig.ReturnType, args)}
	for _, p := range sig.Params {
		switch {
		case p.Kind == StarParam && p.StarKind == StarUnpackedTuple && p.TupleShape != nil:
			shape := substituteTupleShapeFromVarTuple(p.TupleShape, args)
			out.Params = append(out.Params, expandTupleShapeToParams(shape)...)
		case p.Kind == StarParam && p.StarKind == StarParamSpecArgs && p.ParamSpecRef != nil:
			if shape, ok := args.ParamSpecs[p.ParamSpecRef]; ok {
				out.Params = append(out.Params, shape.Params...)
				continue
			}
			out.Params = append(out.Params, p)
		case p.Kind == StarStarParam && p.StarStarKind == StarStarParamSpecKwargs && p.ParamSpecRef != nil:
			if _, ok := args.ParamSpecs[p.ParamSpecRef]; ok {
				// already expanded by the matching StarParamSpecArgs case above
				continue
			}
			out.Params = append(out.Params, p)
		default:
			cp := *p
			cp.Type = Substitute(p.Type, args)
			out.Params = append(out.Params, &cp)
		}
	}
	return out
}

func substituteTupleShapeFromVarTuple(shape *TupleShape, args *TypeArgs) *TupleShape {
	return substituteTupleShape(shape, args)
}

func expandTupleShapeToParams(shape *TupleShape) []*Param {
	var out []*Param
	for _, p := range shape.Prefix {
		out = append(out, &Param{Kind: PositionalOnly, Type: p})
	}
	if shape.Variadic != nil {
		out = append(out, &Param{Kind: StarParam, StarKind: StarArbitraryLen, Type: shape.Variadic})
	}
	for _, s := range shape.Suffix {
		out = append(out, &Param{Kind: PositionalOnly, Type: s})
	}
	return out
}
