// Package oracle provides the default external.Oracle: a structural and
// nominal assignability check generalizing the teacher's
// pkg/types.IsAssignable (unions, classes via base-list walking, and
// literal/array handling) to this system's richer type vocabulary
// (type variables, tuples, protocols, typed dicts, param-specs).
//
// Unlike the teacher's checker, which calls IsAssignable as a pure
// boolean predicate, Subtype here also has to *feed* the solver: every
// time it walks past a TypeVarType on the expected side, it records the
// value as a lower bound rather than failing or succeeding outright.
package oracle

import (
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/types"
)

// Oracle is the default external.Oracle implementation. The narrow
// Solver interface it feeds is declared in pkg/external, so this package
// never needs to import pkg/checker.
type Oracle struct{}

func New() *Oracle { return &Oracle{} }

// Solver and SubtypeResult are aliased from pkg/external so this file's
// signatures read the same as the interface they implement.
type (
	Solver        = external.Solver
	SubtypeResult = external.SubtypeResult
)

// Subtype checks `value <= expected`, recording a lower bound on any
// TypeVarType walked past on the expected side (spec §4.4).
func (o *Oracle) Subtype(value, expected types.Type, solver Solver) SubtypeResult {
	if value == nil || expected == nil {
		return SubtypeResult{Ok: false, Reason: "nil type"}
	}

	if tv, ok := expected.(*types.TypeVarType); ok {
		if solver != nil {
			solver.ConstrainLower(tv.Var, value)
		}
		return SubtypeResult{Ok: true}
	}

	if expected == types.Any || value == types.Any {
		return SubtypeResult{Ok: true, ViaAny: true}
	}
	if expected == types.Unknown {
		return SubtypeResult{Ok: true}
	}
	if value == types.Unknown {
		return SubtypeResult{Ok: expected == types.Unknown, Similar: true}
	}
	if value == types.Never {
		return SubtypeResult{Ok: true}
	}

	if value.Equals(expected) {
		return SubtypeResult{Ok: true}
	}

	if valueUnion, ok := value.(*types.UnionType); ok {
		for _, member := range valueUnion.Members {
			if res := o.Subtype(member, expected, solver); !res.Ok {
				return SubtypeResult{Ok: false, Similar: true, Reason: "union member " + member.String() + " incompatible"}
			}
		}
		return SubtypeResult{Ok: true}
	}
	if expectedUnion, ok := expected.(*types.UnionType); ok {
		var best SubtypeResult
		for _, member := range expectedUnion.Members {
			res := o.Subtype(value, member, solver)
			if res.Ok {
				return res
			}
			if res.Similar {
				best = res
			}
		}
		return SubtypeResult{Ok: false, Similar: best.Similar, Reason: "no union member accepts " + value.String()}
	}

	switch exp := expected.(type) {
	case *types.ListType:
		val, ok := value.(*types.ListType)
		if !ok {
			return SubtypeResult{Ok: false, Reason: "not a list"}
		}
		return o.Subtype(val.Elem, exp.Elem, solver)

	case *types.MappingType:
		val, ok := value.(*types.MappingType)
		if !ok {
			return SubtypeResult{Ok: false, Reason: "not a mapping"}
		}
		keyRes := o.Subtype(val.Key, exp.Key, solver)
		valRes := o.Subtype(val.Value, exp.Value, solver)
		return SubtypeResult{Ok: keyRes.Ok && valRes.Ok, ViaAny: keyRes.ViaAny || valRes.ViaAny}

	case *types.TupleType:
		return o.subtypeTuple(value, exp.Shape, solver)

	case *types.ClassType:
		val, ok := value.(*types.ClassType)
		if !ok {
			if inst, ok := value.(*types.InstantiatedClass); ok {
				val = inst.Class
			}
		}
		if val == nil {
			return SubtypeResult{Ok: false, Reason: "not a class instance"}
		}
		if classIsOrExtends(val, exp) {
			return SubtypeResult{Ok: true}
		}
		return SubtypeResult{Ok: false, Reason: val.Name + " is not assignable to " + exp.Name}

	case *types.InstantiatedClass:
		val, ok := value.(*types.InstantiatedClass)
		if !ok || val.Class != exp.Class || len(val.TypeArgs) != len(exp.TypeArgs) {
			return SubtypeResult{Ok: false, Reason: "incompatible instantiation"}
		}
		for i := range val.TypeArgs {
			if res := o.Subtype(val.TypeArgs[i], exp.TypeArgs[i], solver); !res.Ok {
				return res
			}
		}
		return SubtypeResult{Ok: true}

	case *types.ProtocolType:
		return SubtypeResult{Ok: o.ProtocolMatch(value, exp, solver)}

	case *types.TypedDictType:
		val, ok := value.(*types.TypedDictType)
		if !ok {
			return SubtypeResult{Ok: false, Reason: "not a typed dict"}
		}
		for _, f := range exp.Fields {
			vf, ok := val.Field(f.Name)
			if !ok {
				if f.Required {
					return SubtypeResult{Ok: false, Reason: "missing field " + f.Name}
				}
				continue
			}
			if res := o.Subtype(vf.Type, f.Type, solver); !res.Ok {
				return res
			}
		}
		return SubtypeResult{Ok: true}

	case *types.Signature:
		val, ok := value.(*types.Signature)
		if !ok {
			return SubtypeResult{Ok: false, Reason: "not callable"}
		}
		return o.subtypeSignature(val, exp, solver)
	}

	return SubtypeResult{Ok: false, Reason: value.String() + " is not assignable to " + expected.String()}
}

func (o *Oracle) subtypeTuple(value types.Type, expected *types.TupleShape, solver Solver) SubtypeResult {
	val, ok := value.(*types.TupleType)
	if !ok {
		return SubtypeResult{Ok: false, Reason: "not a tuple"}
	}
	vs := val.Shape
	if expected.Variadic == nil && vs.Variadic == nil {
		if len(vs.Prefix) != len(expected.Prefix) {
			return SubtypeResult{Ok: false, Reason: "tuple length mismatch"}
		}
		for i, p := range expected.Prefix {
			if res := o.Subtype(vs.Prefix[i], p, solver); !res.Ok {
				return res
			}
		}
		return SubtypeResult{Ok: true}
	}
	// Variadic on either side: a conservative element-wise comparison
	// over whichever prefix/suffix is shared; anything structurally
	// deeper than this is out of scope for the default oracle.
	n := min(len(vs.Prefix), len(expected.Prefix))
	for i := 0; i < n; i++ {
		if res := o.Subtype(vs.Prefix[i], expected.Prefix[i], solver); !res.Ok {
			return res
		}
	}
	return SubtypeResult{Ok: true}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (o *Oracle) subtypeSignature(val, expected *types.Signature, solver Solver) SubtypeResult {
	if len(val.Params) != len(expected.Params) {
		return SubtypeResult{Ok: false, Reason: "parameter count mismatch"}
	}
	for i := range expected.Params {
		// Parameters are contravariant: the expected signature's param
		// type must accept the value signature's.
		if res := o.Subtype(expected.Params[i].EffectiveType(), val.Params[i].EffectiveType(), solver); !res.Ok {
			return res
		}
	}
	return o.Subtype(val.ReturnType, expected.ReturnType, solver)
}

func classIsOrExtends(c, target *types.ClassType) bool {
	if c == target {
		return true
	}
	for _, base := range c.Bases {
		if classIsOrExtends(base, target) {
			return true
		}
	}
	return false
}

// ProtocolMatch structurally matches instance against protocol: every
// member the protocol declares must exist on instance with a compatible
// type (spec §6).
func (o *Oracle) ProtocolMatch(instance types.Type, protocol *types.ProtocolType, solver Solver) bool {
	members := o.membersOf(instance)
	if members == nil {
		return false
	}
	for name, want := range protocol.Members {
		got, ok := members[name]
		if !ok {
			return false
		}
		if res := o.Subtype(got, want, solver); !res.Ok {
			return false
		}
	}
	return true
}

func (o *Oracle) membersOf(t types.Type) map[string]types.Type {
	switch v := t.(type) {
	case *types.ClassType:
		out := map[string]types.Type{}
		collectMembers(v, out)
		return out
	case *types.InstantiatedClass:
		out := map[string]types.Type{}
		collectMembers(v.Class, out)
		return out
	case *types.TypedDictType:
		out := map[string]types.Type{}
		for _, f := range v.Fields {
			out[f.Name] = f.Type
		}
		return out
	default:
		return nil
	}
}

func collectMembers(c *types.ClassType, out map[string]types.Type) {
	for _, base := range c.Bases {
		collectMembers(base, out)
	}
	for name, t := range c.Fields {
		out[name] = t
	}
	for name, sig := range c.Methods {
		out[name] = sig
	}
}

// IterElement yields the element type of an iterable type (spec §4.1
// *spread expansion).
func (o *Oracle) IterElement(t types.Type) (types.Type, bool) {
	switch v := t.(type) {
	case *types.ListType:
		return v.Elem, true
	case *types.TupleType:
		if v.Shape.Variadic != nil {
			return v.Shape.Variadic, true
		}
		return types.NewUnionType(append(append([]types.Type{}, v.Shape.Prefix...), v.Shape.Suffix...)...), true
	}
	return types.Any, false
}

// TypedDictFields enumerates a typed dict's fields in declared order
// (spec §4.1 **typed_dict expansion).
func (o *Oracle) TypedDictFields(t types.Type) ([]types.TypedDictField, bool) {
	td, ok := t.(*types.TypedDictType)
	if !ok {
		return nil, false
	}
	return td.Fields, true
}

// ClassTypeVars returns a class's own declared type-variable-likes.
func (o *Oracle) ClassTypeVars(c *types.ClassType) []types.TypeVarLike {
	if c == nil {
		return nil
	}
	return c.TypeVars
}

// CallableTypeVars returns a signature's own declared type-variable-likes.
func (o *Oracle) CallableTypeVars(sig *types.Signature) []types.TypeVarLike {
	if sig == nil {
		return nil
	}
	return sig.TypeVars
}
