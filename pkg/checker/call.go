package checker

import (
	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/points"
	"github.com/singularitti/zuban/pkg/types"
)

// Checker wires C1 through C5 into the two operations callers actually
// need (spec §6): checking an ordinary call, and checking a constructor
// call, which also binds the owning class's type variables and Self.
type Checker struct {
	Oracle         external.Oracle
	Sink           diag.Sink
	Points         *points.Points
	StrictCompat   bool
	WarnDeprecated bool
	MaxUnions      int
}

func (c *Checker) resolver() *Resolver {
	return &Resolver{
		Oracle:         c.Oracle,
		Points:         c.Points,
		StrictCompat:   c.StrictCompat,
		WarnDeprecated: c.WarnDeprecated,
		MaxUnions:      c.MaxUnions,
	}
}

// CheckCall normalizes a call's raw argument syntax and resolves it
// against a callable's overload set, in the order set out in spec §1:
// C1 normalize, then C2-C5 inside Resolve per alternative.
func (c *Checker) CheckCall(callable *types.Callable, raw []RawArg, ctx *external.ExpectedType) *CallOutcome {
	for _, sig := range callable.Signatures {
		ValidateTypeVarDecl(sig.TypeVars, c.Sink)
	}

	normalizer := &Normalizer{Oracle: c.Oracle, Sink: c.Sink, Points: c.Points}
	args := normalizer.Normalize(raw)
	return c.resolver().Resolve(callable, args, ctx, c.Sink)
}

// CheckConstructorCall checks a call to a class's constructor (spec
// §4.4 "constructor binding"): the class's own type variables solve
// together with __init__'s, and the resolved return type is the
// instantiated class rather than __init__'s own (typically None) return
// annotation.
func (c *Checker) CheckConstructorCall(class *types.ClassType, raw []RawArg, ctx *external.ExpectedType) *CallOutcome {
	ValidateTypeVarDecl(class.TypeVars, c.Sink)

	init := class.Init
	if init == nil {
		init = &types.Signature{}
	}
	callable := &types.Callable{
		Name:        class.Name,
		Kind:        types.Constructor,
		Signatures:  []*types.Signature{init},
		OwningClass: class,
	}

	out := c.CheckCall(callable, raw, ctx)
	if out.Ok {
		out.ReturnType = instantiate(class, out.TypeArgs)
	}
	return out
}

// CheckMethodCall checks a call to an already-bound method, wiring the
// receiver's type so any Self reference in the signature (spec §4.4)
// resolves back to it.
func (c *Checker) CheckMethodCall(method *types.Callable, receiver types.Type, raw []RawArg, ctx *external.ExpectedType) *CallOutcome {
	bound := *method
	bound.SelfType = receiver
	return c.CheckCall(&bound, raw, ctx)
}

// SolveTypeVars implements spec §6's `solve_type_vars`: it runs the
// matcher once against a single (non-overloaded) signature and returns
// the bound type arguments without substituting a return type. Generic
// instantiation call sites that have no overload set to pick among (e.g.
// resolving `list[T]` from a list-display literal) use this instead of
// CheckCall, which always goes through C5.
func (c *Checker) SolveTypeVars(sig *types.Signature, raw []RawArg, ctx *external.ExpectedType) *types.TypeArgs {
	normalizer := &Normalizer{Oracle: c.Oracle, Sink: c.Sink, Points: c.Points}
	args := normalizer.Normalize(raw)

	shadow := diag.NewShadow()
	solver := NewSolver(shadow)
	if ctx != nil && ctx.Type != nil {
		solver.SeedFromReturnContext(c.Oracle, sig.ReturnType, ctx.Type)
	}
	solver.BeginArgs()

	pr := Pairer{}.Pair(sig.Params, args)
	m := &Matcher{Oracle: c.Oracle, Sink: shadow, StrictCompat: c.StrictCompat}
	m.Match(sig, sig.Params, pr, solver)

	if c.Sink != nil {
		shadow.Replay(c.Sink)
	}
	return solver.Finalize(sig.TypeVars)
}

func instantiate(class *types.ClassType, args *types.TypeArgs) types.Type {
	if len(class.TypeVars) == 0 {
		return &types.InstantiatedClass{Class: class}
	}
	typeArgs := make([]types.Type, len(class.TypeVars))
	for i, tvLike := range class.TypeVars {
		tv, ok := tvLike.(*types.TypeVar)
		if !ok {
			typeArgs[i] = types.Any
			continue
		}
		typeArgs[i] = args.Lookup(tv)
	}
	return &types.InstantiatedClass{Class: class, TypeArgs: typeArgs}
}
