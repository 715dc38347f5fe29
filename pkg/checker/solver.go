package checker

import (
	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/types"
)

// solverPhase distinguishes constraints seeded from the return-type
// context (spec §4.4) from constraints derived while checking arguments;
// argument-derived constraints always win on conflict.
type solverPhase int

const (
	phaseContext solverPhase = iota
	phaseArgs
)

// Solver is C4: per-call state accumulating bounds on every
// type-variable-like a callable (and, for constructors, its owning
// class) declares. One Solver is constructed per call *attempt* — the
// overload resolver (C5) builds a fresh one per alternative (spec §3
// Lifecycle).
type Solver struct {
	phase solverPhase

	ctxLower map[*types.TypeVar]types.Type
	argLower map[*types.TypeVar]types.Type

	tuples     map[*types.TypeVarTupleVar]*types.TupleShape
	paramSpecs map[*types.ParamSpecVar]*types.ParamSpecShape

	// ReplaceSelf, when set, is consulted whenever types.SelfType is
	// encountered during substitution (spec §4.4 "Self type").
	ReplaceSelf func() types.Type

	sink diag.Sink
}

func NewSolver(sink diag.Sink) *Solver {
	return &Solver{
		ctxLower:   map[*types.TypeVar]types.Type{},
		argLower:   map[*types.TypeVar]types.Type{},
		tuples:     map[*types.TypeVarTupleVar]*types.TupleShape{},
		paramSpecs: map[*types.ParamSpecVar]*types.ParamSpecShape{},
		sink:       sink,
	}
}

// BeginArgs switches the solver from context-seeding mode into
// argument-matching mode; constraints recorded afterward take priority
// over context-seeded ones at Finalize (spec §4.4).
func (s *Solver) BeginArgs() { s.phase = phaseArgs }

// --- external.Solver implementation: the narrow mutation surface the
// Oracle's Subtype call is allowed to use. ---

func (s *Solver) ConstrainLower(tv *types.TypeVar, lower types.Type) {
	if s == nil || lower == nil {
		return
	}
	target := s.ctxLower
	if s.phase == phaseArgs {
		target = s.argLower
	}
	if existing, ok := target[tv]; ok {
		target[tv] = types.NewUnionType(existing, lower)
	} else {
		target[tv] = lower
	}
}

// ConstrainUpper approximates the contravariant bound the same way as
// ConstrainLower: a full intersection type is out of scope, so narrower
// observations are folded in as additional lower-bound evidence (the
// widest-compatible choice still has to satisfy every constraint that
// flowed through either direction).
func (s *Solver) ConstrainUpper(tv *types.TypeVar, upper types.Type) {
	s.ConstrainLower(tv, upper)
}

func (s *Solver) ConstrainTuple(tvt *types.TypeVarTupleVar, shape *types.TupleShape) {
	if s == nil || shape == nil {
		return
	}
	if _, ok := s.tuples[tvt]; !ok {
		s.tuples[tvt] = shape
	}
}

func (s *Solver) ConstrainParamSpec(ps *types.ParamSpecVar, shape *types.ParamSpecShape) {
	if s == nil || shape == nil {
		return
	}
	if _, ok := s.paramSpecs[ps]; !ok {
		s.paramSpecs[ps] = shape
	}
}

// SeedFromReturnContext runs the signature's return type against the
// caller-supplied expected type contravariantly, seeding constraints
// that argument-derived constraints later override (spec §4.4).
func (s *Solver) SeedFromReturnContext(oracle external.Oracle, returnType, expected types.Type) {
	if expected == nil || returnType == nil {
		return
	}
	oracle.Subtype(returnType, expected, s)
}

// Finalize resolves every declared type-variable-like into a TypeArgs,
// respecting bounds/constraints and collapsing unconstrained variables to
// their declared default or Never (spec §4.4).
func (s *Solver) Finalize(vars []types.TypeVarLike) *types.TypeArgs {
	out := types.NewTypeArgs()
	for _, v := range vars {
		switch tv := v.(type) {
		case *types.TypeVar:
			out.Vars[tv] = s.finalizeTypeVar(tv)
		case *types.TypeVarTupleVar:
			if shape, ok := s.tuples[tv]; ok {
				out.VarTuples[tv] = shape
			} else {
				out.VarTuples[tv] = &types.TupleShape{}
			}
		case *types.ParamSpecVar:
			if shape, ok := s.paramSpecs[tv]; ok {
				out.ParamSpecs[tv] = shape
			} else {
				out.ParamSpecs[tv] = &types.ParamSpecShape{}
			}
		}
	}
	return out
}

func (s *Solver) finalizeTypeVar(tv *types.TypeVar) types.Type {
	lower, ok := s.argLower[tv]
	if !ok {
		lower, ok = s.ctxLower[tv]
	}
	if !ok {
		if tv.Default != nil {
			return tv.Default
		}
		return types.Never
	}

	if len(tv.Constraint) > 0 {
		for _, c := range tv.Constraint {
			if c.Equals(lower) {
				return c
			}
		}
		// No exact constraint member matched; widen-search for the
		// first constraint the lower bound is assignable into.
		for _, c := range tv.Constraint {
			if res := (&defaultAssignability{}).isAssignable(lower, c); res {
				return c
			}
		}
		if s.sink != nil {
			s.sink.Add(&diag.Diagnostic{
				Kind: diag.InvalidTypeVarValue,
				Msg:  "type variable " + tv.VarName + " has no constraint matching " + lower.String(),
			})
		}
		return types.Never
	}

	if tv.Bound != nil {
		if !(&defaultAssignability{}).isAssignable(lower, tv.Bound) {
			if s.sink != nil {
				s.sink.Add(&diag.Diagnostic{
					Kind: diag.InvalidTypeVarValue,
					Msg:  "type variable " + tv.VarName + " bound to " + lower.String() + " violates bound " + tv.Bound.String(),
				})
			}
			return types.Never
		}
	}
	return lower
}

// defaultAssignability is a tiny structural fallback used only for the
// solver's own bound/constraint checks, which must work even when no
// external Oracle is wired (e.g. in unit tests that construct a Solver
// directly). The real call-site core always defers to external.Oracle.
type defaultAssignability struct{}

func (defaultAssignability) isAssignable(sub, super types.Type) bool {
	if sub == nil || super == nil {
		return false
	}
	if super == types.Any || sub == types.Any || super == types.Unknown || sub == types.Never {
		return true
	}
	return sub.Equals(super)
}
