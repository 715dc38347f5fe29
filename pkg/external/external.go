// Package external names the collaborators the call-site core consumes
// but does not implement itself (spec §1, §6): the subtype relation,
// protocol/structural matching, iterable element extraction, typed-dict
// field enumeration, type-variable discovery, and diagnostic emission.
// A concrete default implementation lives in internal/oracle, wired
// through these interfaces so the core in pkg/checker stays a pure
// function of (signature, arguments, surrounding context) as required by
// spec §5.
package external

import "github.com/singularitti/zuban/pkg/types"

// SubtypeResult is the outcome of a single subtype check (spec §4.3,
// §6): either a clean match, possibly only because an explicit Any was
// involved (ViaAny — used by C5's ambiguity rule), or a mismatch that
// may still be "similar" (shape aligned, types didn't) for diagnostic
// selection.
type SubtypeResult struct {
	Ok      bool
	ViaAny  bool
	Similar bool
	Reason  string
}

// Solver is the narrow slice of *checker.Solver the Oracle is allowed to
// mutate while deciding a subtype relation: it only ever updates bounds
// on type-variable-likes, never reads back call-level state. Declared
// here (rather than importing pkg/checker, which would cycle) as the
// minimal interface the oracle needs.
type Solver interface {
	ConstrainLower(tv *types.TypeVar, lower types.Type)
	ConstrainUpper(tv *types.TypeVar, upper types.Type)
	ConstrainTuple(tvt *types.TypeVarTupleVar, shape *types.TupleShape)
	ConstrainParamSpec(ps *types.ParamSpecVar, shape *types.ParamSpecShape)
}

// Oracle bundles every external collaborator named in spec §6.
type Oracle interface {
	// Subtype checks `value <= expected` (expected is the super-type),
	// updating solver bounds for any type-variable-likes it walks past.
	Subtype(value, expected types.Type, solver Solver) SubtypeResult

	// ProtocolMatch structurally matches instance against protocol,
	// e.g. confirming a **mapping argument exposes keys()+__getitem__.
	ProtocolMatch(instance types.Type, protocol *types.ProtocolType, solver Solver) bool

	// IterElement yields the element type of an iterable type, used by
	// *spread expansion (C1). Returns (Any, false) if t is not iterable.
	IterElement(t types.Type) (types.Type, bool)

	// TypedDictFields enumerates a typed dict's fields in declared
	// order, used for **typed_dict and Unpack[TypedDict] expansion.
	TypedDictFields(t types.Type) ([]types.TypedDictField, bool)

	// ClassTypeVars and CallableTypeVars enumerate the generic
	// parameters bound by a defining entity (scanning is out of scope
	// here; we only consume the result).
	ClassTypeVars(c *types.ClassType) []types.TypeVarLike
	CallableTypeVars(sig *types.Signature) []types.TypeVarLike
}
