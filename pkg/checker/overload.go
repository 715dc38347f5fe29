package checker

import (
	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/points"
	"github.com/singularitti/zuban/pkg/types"
)

// DefaultMaxUnions bounds the recursion depth of union-math splitting
// (spec §9 MAX_UNIONS) so a call with several union-typed arguments
// cannot blow up combinatorially.
const DefaultMaxUnions = 5

// CallOutcome is the result of resolving one call against a Callable's
// overload set (spec §4.5).
type CallOutcome struct {
	Ok         bool
	ReturnType types.Type
	Chosen     *types.Signature
	TypeArgs   *types.TypeArgs
	Similar    bool
	UnionSplit bool
}

// Resolver is C5.
type Resolver struct {
	Oracle         external.Oracle
	Points         *points.Points
	StrictCompat   bool
	WarnDeprecated bool
	MaxUnions      int // 0 means DefaultMaxUnions
}

func (r *Resolver) maxUnions() int {
	if r.MaxUnions > 0 {
		return r.MaxUnions
	}
	return DefaultMaxUnions
}

// trial is one attempted signature, isolated behind a shadow diagnostic
// sink and a points snapshot so a losing attempt leaves no trace (spec
// §5, §9 points backup/restore).
type trial struct {
	sig      *types.Signature
	outcome  *MatchOutcome
	typeArgs *types.TypeArgs
	retType  types.Type
	shadow   *diag.Shadow
	snapshot *points.Snapshot
	precise  bool // spec §4.5 rule: arbitrary-length-not-handled loses ties
}

func (r *Resolver) attempt(sig *types.Signature, args []*Arg, ctx *external.ExpectedType, owner *types.ClassType, self types.Type) *trial {
	var snap *points.Snapshot
	if r.Points != nil {
		lo, hi := argIndexRange(args)
		snap = r.Points.Backup(lo, hi)
	}

	shadow := diag.NewShadow()
	solver := NewSolver(shadow)
	if self != nil {
		solver.ReplaceSelf = func() types.Type { return self }
	}
	if ctx != nil && ctx.Type != nil {
		solver.SeedFromReturnContext(r.Oracle, sig.ReturnType, ctx.Type)
	}
	solver.BeginArgs()

	pr := Pairer{}.Pair(sig.Params, args)
	m := &Matcher{Oracle: r.Oracle, Sink: shadow, StrictCompat: r.StrictCompat}
	outcome := m.Match(sig, sig.Params, pr, solver)

	typeVars := append([]types.TypeVarLike{}, sig.TypeVars...)
	if owner != nil && r.Oracle != nil {
		typeVars = append(typeVars, r.Oracle.ClassTypeVars(owner)...)
	}
	solved := solver.Finalize(typeVars)
	final := types.SubstituteSignature(sig, solved)
	retType := final.ReturnType
	if self != nil {
		retType = substituteSelf(retType, self)
	}

	return &trial{
		sig: sig, outcome: outcome, typeArgs: solved, retType: retType,
		shadow: shadow, snapshot: snap, precise: pr.ArbitraryLengthHandled,
	}
}

// substituteSelf replaces occurrences of types.SelfType with the
// receiver's own type in a resolved result (spec §4.4 "Self type"). Only
// the shapes that can plausibly carry Self through a return type are
// walked; this mirrors Substitute's recursion in pkg/types/typeargs.go
// without requiring that pure function to know about solver callbacks.
func substituteSelf(t types.Type, self types.Type) types.Type {
	switch v := t.(type) {
	case nil:
		return nil
	case *types.Primitive:
		if t == types.SelfType {
			return self
		}
		return t
	case *types.ListType:
		return &types.ListType{Elem: substituteSelf(v.Elem, self)}
	case *types.MappingType:
		return &types.MappingType{Key: substituteSelf(v.Key, self), Value: substituteSelf(v.Value, self)}
	case *types.UnionType:
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = substituteSelf(m, self)
		}
		return types.NewUnionType(members...)
	default:
		return t
	}
}

func argIndexRange(args []*Arg) (int, int) {
	lo, hi := -1, -1
	for _, a := range args {
		if lo == -1 || a.Index < lo {
			lo = a.Index
		}
		if a.Index+1 > hi {
			hi = a.Index + 1
		}
	}
	if lo == -1 {
		return 0, 0
	}
	return lo, hi
}

// Resolve implements C5 (spec §4.5): try each signature in source order,
// applying the precedence ladder, falling back to union math, and
// finally reporting an overload mismatch with every alternative tried.
func (r *Resolver) Resolve(c *types.Callable, args []*Arg, ctx *external.ExpectedType, sink diag.Sink) *CallOutcome {
	return r.resolve(c, args, ctx, sink, 0)
}

func (r *Resolver) resolve(c *types.Callable, args []*Arg, ctx *external.ExpectedType, sink diag.Sink, depth int) *CallOutcome {
	trials := make([]*trial, len(c.Signatures))
	for i, sig := range c.Signatures {
		trials[i] = r.attempt(sig, args, ctx, c.OwningClass, c.SelfType)
	}

	// Rule 1: exact match wins outright, in source order.
	for _, t := range trials {
		if t.outcome.Ok && t.precise && len(t.outcome.AnyPositions) == 0 {
			return r.choose(trials, t, sink)
		}
	}

	// Rules 2-3: alternatives that only matched because an explicit Any
	// forced the check. Two or more such alternatives whose Any-infected
	// positions overlap with distinct expected types at that position are
	// ambiguous and the call soft-fails with no diagnostic (rule 2); a
	// single Any-match, or several non-overlapping ones, proceed with the
	// first in source order (rule 3, and — since the spec's ladder is
	// silent on ties among several *non*-overlapping Any-matches — the
	// same source-order tie-break spec §5 mandates everywhere else).
	var anyMatches []*trial
	for _, t := range trials {
		if t.outcome.Ok && len(t.outcome.AnyPositions) > 0 {
			anyMatches = append(anyMatches, t)
		}
	}
	if len(anyMatches) > 0 {
		if len(anyMatches) >= 2 && anyMatchesAmbiguous(anyMatches) {
			r.restoreAllBut(trials, nil)
			return &CallOutcome{Ok: false}
		}
		return r.choose(trials, anyMatches[0], sink)
	}

	// Rule 4: arbitrary-length not handled precisely — first remaining
	// match of any kind.
	for _, t := range trials {
		if t.outcome.Ok {
			return r.choose(trials, t, sink)
		}
	}

	r.restoreAllBut(trials, nil)

	// Rule 5: union math, bounded by MAX_UNIONS (spec §8, §9).
	if idx := findSplittableUnion(args); idx >= 0 {
		if depth >= r.maxUnions() {
			if sink != nil {
				sink.Add(&diag.Diagnostic{
					Kind: diag.OverloadTooManyUnions,
					Msg:  "exceeded the maximum of nested union splits",
				})
			}
			return &CallOutcome{Ok: false}
		}
		if out := r.tryUnionSplit(c, args, ctx, sink, depth); out != nil {
			return out
		}
	}

	// Rule 6: if the call was evaluated under an expected-type context,
	// retry once with the context removed.
	if ctx != nil {
		return r.resolve(c, args, nil, sink, depth)
	}

	// Rules 7-8: report the first similar alternative's diagnostics (none
	// if no alternative was similar), and an overload mismatch listing
	// every alternative tried.
	return r.reportFailure(trials, sink)
}

// choose finalizes on a winning trial: restores every other trial's
// points snapshot, replays the winner's shadowed diagnostics onto the
// real sink, and emits a deprecation warning if configured.
func (r *Resolver) choose(trials []*trial, t *trial, sink diag.Sink) *CallOutcome {
	r.restoreAllBut(trials, t)
	t.shadow.Replay(sink)
	r.warnDeprecated(t.sig, sink)
	return &CallOutcome{Ok: true, ReturnType: t.retType, Chosen: t.sig, TypeArgs: t.typeArgs}
}

// anyMatchesAmbiguous implements spec §4.5 rule 2: true when two
// Any-matched alternatives were forced by an explicit Any at the same
// argument position but expected distinct types there.
func anyMatchesAmbiguous(trials []*trial) bool {
	for i := 0; i < len(trials); i++ {
		for j := i + 1; j < len(trials); j++ {
			for idx, expected := range trials[i].outcome.AnyPositions {
				if other, ok := trials[j].outcome.AnyPositions[idx]; ok && !expected.Equals(other) {
					return true
				}
			}
		}
	}
	return false
}

func (r *Resolver) restoreAllBut(trials []*trial, keep *trial) {
	for _, t := range trials {
		if t == keep {
			continue
		}
		if t.snapshot != nil {
			t.snapshot.Restore()
		}
	}
}

// tryUnionSplit implements spec §4.5's union math: find the first
// argument whose effective type is a union, try the whole call again
// once per member with that argument's type overridden, and recombine
// successful per-member return types into a union (spec §7 "pointwise
// union of matching components"). The nesting bound (maxUnions(), which
// is DefaultMaxUnions unless the Resolver sets MaxUnions) is enforced by
// resolve before it calls here.
func (r *Resolver) tryUnionSplit(c *types.Callable, args []*Arg, ctx *external.ExpectedType, sink diag.Sink, depth int) *CallOutcome {
	idx := findSplittableUnion(args)
	if idx < 0 {
		return nil
	}
	members := types.SplitUnion(args[idx].EffectiveType())
	if len(members) < 2 {
		return nil
	}

	shadow := diag.NewShadow()
	var rets []types.Type
	for _, member := range members {
		split := append([]*Arg{}, args...)
		split[idx] = args[idx].WithOverride(member)

		sub := r.resolve(c, split, ctx, shadow, depth+1)
		if sub == nil || !sub.Ok {
			if sink != nil {
				sink.Add(&diag.Diagnostic{
					Kind: diag.OverloadMismatch,
					Msg:  "union member '" + member.String() + "' does not match any overload",
				})
			}
			return &CallOutcome{Ok: false, Similar: sub != nil && sub.Similar}
		}
		rets = append(rets, sub.ReturnType)
	}

	shadow.Replay(sink)
	return &CallOutcome{Ok: true, ReturnType: types.NewUnionType(rets...), UnionSplit: true}
}

func findSplittableUnion(args []*Arg) int {
	for i, a := range args {
		if _, ok := a.EffectiveType().(*types.UnionType); ok {
			return i
		}
	}
	return -1
}

// reportFailure emits the OverloadMismatch diagnostic (spec §6) listing
// every alternative tried, replays the own diagnostics of the first
// trial flagged "similar" (if there is one), and computes the spec
// §7 fallback return type: a pointwise union of every alternative's
// return type, so downstream inference still gets something to work
// with instead of propagating a hard failure.
func (r *Resolver) reportFailure(trials []*trial, sink diag.Sink) *CallOutcome {
	var best *trial
	for _, t := range trials {
		if t.outcome.Similar {
			best = t
			break
		}
	}
	if best != nil {
		best.shadow.Replay(sink)
	}

	if sink != nil {
		alts := make([]string, len(trials))
		for i, t := range trials {
			alts[i] = t.sig.String()
		}
		sink.Add(&diag.Diagnostic{
			Kind: diag.OverloadMismatch,
			Msg:  "no overload matches the given arguments",
			Args: alts,
		})
	}

	return &CallOutcome{
		Ok:         false,
		ReturnType: mergeReturnTypes(trials),
		Similar:    best != nil && best.outcome.Similar,
	}
}

func mergeReturnTypes(trials []*trial) types.Type {
	var rets []types.Type
	for _, t := range trials {
		if t.retType != nil {
			rets = append(rets, t.retType)
		}
	}
	if len(rets) == 0 {
		return types.Unknown
	}
	return types.NewUnionType(rets...)
}

func (r *Resolver) warnDeprecated(sig *types.Signature, sink diag.Sink) {
	if !r.WarnDeprecated || !sig.Deprecated || sink == nil {
		return
	}
	sink.Add(&diag.Diagnostic{Kind: diag.Deprecated, Msg: sig.DeprecatedNote})
}
