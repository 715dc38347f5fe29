package checker

import (
	"fmt"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/types"
)

// MatchOutcome is the call-wide result of C3 (spec §4.3): True{withAny}
// or False{similar}. AnyPositions records, for a True match, the
// argument indices where an explicit Any forced success (spec's
// "withAny"), keyed by the expected type at that position — C5's
// ambiguity rule compares these across overload alternatives.
type MatchOutcome struct {
	Ok           bool
	Similar      bool
	AnyPositions map[int]types.Type
}

func (m *MatchOutcome) markAny(idx int, expected types.Type) {
	if m.AnyPositions == nil {
		m.AnyPositions = map[int]types.Type{}
	}
	m.AnyPositions[idx] = expected
}

// Matcher is C3.
type Matcher struct {
	Oracle       external.Oracle
	Sink         diag.Sink
	StrictCompat bool // spec §6 strict_compat_mode
}

type deferredCheck struct {
	arg      *Arg
	expected types.Type
}

// Match type-checks every pairing produced by the Pairer against the
// current Solver state (spec §4.3).
func (m *Matcher) Match(sig *types.Signature, params []*types.Param, pr *PairResult, solver *Solver) *MatchOutcome {
	out := &MatchOutcome{Ok: true}
	var missingRequired []string
	var deferred []deferredCheck

	for i, pairing := range pr.Pairings {
		if types.IsTrivialAnySuffix(params, i) {
			continue // absorbs anything without failure (spec §4.3)
		}

		switch {
		case pairing.FieldArgs != nil:
			m.matchTypedDictFields(pairing, out, solver)

		case pairing.ParamSpecBundle:
			m.matchParamSpecBundle(pairing, solver)

		case pairing.Param.Kind == types.StarParam && pairing.Param.StarKind == types.StarUnpackedTuple:
			m.matchTupleShape(pairing.Args, pairing.Param.TupleShape, out, solver)

		case pairing.Param.Kind == types.StarParam || pairing.Param.Kind == types.StarStarParam:
			expected := pairing.Param.EffectiveType()
			for _, a := range pairing.Args {
				m.checkOrDefer(a, expected, solver, out, &deferred)
			}

		case pairing.Absent:
			if !pairing.Param.HasDefault && requiresArgument(pairing.Param) {
				missingRequired = append(missingRequired, pairing.Param.Name)
				out.Ok = false
			}

		default:
			expected := pairing.Param.EffectiveType()
			for _, a := range pairing.Args {
				m.checkOrDefer(a, expected, solver, out, &deferred)
			}
			if pairing.Duplicate != nil {
				out.Ok = false
				m.Sink.Add(&diag.Diagnostic{
					Kind: diag.MultipleValuesForKeywordArgument,
					Pos:  m.attributionPos(pairing.Duplicate),
					Msg:  fmt.Sprintf("got multiple values for argument '%s'", pairing.Param.Name),
				})
			}
		}
	}

	// Run delayed pairings once everything else has contributed its
	// constraints (spec §4.3 "deferred to the end of pairing"; §9 "a
	// delayed pairing runs once to avoid nontermination").
	for _, d := range deferred {
		m.checkOne(d.arg, d.expected, solver, out)
	}

	if len(missingRequired) > 0 {
		out.Ok = false
		m.Sink.Add(&diag.Diagnostic{
			Kind: diag.TooFewArguments,
			Msg:  fmt.Sprintf("missing required argument(s): %v", missingRequired),
		})
	}

	if pr.TooManyPositional {
		out.Ok = false
		m.Sink.Add(&diag.Diagnostic{Kind: diag.TooManyArguments, Msg: "too many positional arguments"})
	}

	for _, field := range pr.MissingFields {
		out.Ok = false
		m.Sink.Add(&diag.Diagnostic{
			Kind: diag.MissingNamedArgument,
			Msg:  fmt.Sprintf("Missing named argument '%s'", field),
		})
	}

	for _, unused := range pr.UnusedKeywords {
		out.Ok = false
		m.Sink.Add(&diag.Diagnostic{
			Kind: diag.UnexpectedKeywordArgument,
			Pos:  m.attributionPos(unused),
			Msg:  fmt.Sprintf("unexpected keyword argument '%s'", unused.Name),
		})
	}

	return out
}

// requiresArgument reports whether an absent pairing for this parameter
// kind is actually a problem: starred parameters and ones satisfiable by
// zero arguments never are.
func requiresArgument(p *types.Param) bool {
	switch p.Kind {
	case types.StarParam, types.StarStarParam:
		return false
	default:
		return true
	}
}

// checkOrDefer implements the deferral rule of spec §4.3: a lambda
// argument, or an overload-typed argument whose expected parameter type
// still mentions unresolved type variables, is deferred to the end so
// other constraints get a chance to resolve those type variables first.
func (m *Matcher) checkOrDefer(a *Arg, expected types.Type, solver *Solver, out *MatchOutcome, deferred *[]deferredCheck) {
	if shouldDefer(a, expected) {
		*deferred = append(*deferred, deferredCheck{arg: a, expected: expected})
		return
	}
	m.checkOne(a, expected, solver, out)
}

func shouldDefer(a *Arg, expected types.Type) bool {
	if _, isCallable := a.EffectiveType().(*types.Signature); !isCallable {
		return false
	}
	return mentionsUnresolvedTypeVar(expected)
}

func mentionsUnresolvedTypeVar(t types.Type) bool {
	switch v := t.(type) {
	case nil:
		return false
	case *types.TypeVarType:
		return true
	case *types.ListType:
		return mentionsUnresolvedTypeVar(v.Elem)
	case *types.MappingType:
		return mentionsUnresolvedTypeVar(v.Key) || mentionsUnresolvedTypeVar(v.Value)
	case *types.UnionType:
		for _, m := range v.Members {
			if mentionsUnresolvedTypeVar(m) {
				return true
			}
		}
		return false
	case *types.Signature:
		for _, p := range v.Params {
			if mentionsUnresolvedTypeVar(p.Type) {
				return true
			}
		}
		return mentionsUnresolvedTypeVar(v.ReturnType)
	default:
		return false
	}
}

func (m *Matcher) checkOne(a *Arg, expected types.Type, solver *Solver, out *MatchOutcome) {
	if expected == nil {
		expected = types.Any
	}
	if !checkConcreteClassExpected(a, expected, m.Sink) {
		out.Ok = false
		return
	}

	res := m.Oracle.Subtype(a.EffectiveType(), expected, solver)
	if !res.Ok {
		out.Ok = false
		if res.Similar {
			out.Similar = true
		}
		m.Sink.Add(&diag.Diagnostic{
			Kind: diag.ArgumentTypeIncompatible,
			Pos:  m.attributionPos(a),
			Msg:  fmt.Sprintf("argument %d: cannot assign type '%s' to parameter of type '%s'", a.Index+1, a.EffectiveType().String(), expected.String()),
		})
	}
	if res.ViaAny {
		out.markAny(a.Index, expected)
	}
}

// matchTupleShape implements the tuple-unpack matching rule of spec
// §4.3: element-wise checks of each fixed prefix/suffix type against the
// gathered arguments (covariant), and an invariant check of the variadic
// middle segment.
func (m *Matcher) matchTupleShape(gathered []*Arg, shape *types.TupleShape, out *MatchOutcome, solver *Solver) {
	n := len(gathered)
	prefixLen := len(shape.Prefix)
	suffixLen := len(shape.Suffix)

	if shape.Variadic == nil {
		if n != prefixLen {
			out.Ok = false
			m.Sink.Add(&diag.Diagnostic{Kind: diag.TooFewArguments, Msg: "unpacked tuple length mismatch"})
			return
		}
		for i, a := range gathered {
			m.checkOne(a, shape.Prefix[i], solver, out)
		}
		return
	}

	if n < prefixLen+suffixLen {
		out.Ok = false
		m.Sink.Add(&diag.Diagnostic{Kind: diag.TooFewArguments, Msg: "unpacked tuple shorter than its fixed segments"})
		return
	}
	for i := 0; i < prefixLen; i++ {
		m.checkOne(gathered[i], shape.Prefix[i], solver, out)
	}
	for i := 0; i < suffixLen; i++ {
		m.checkOne(gathered[n-suffixLen+i], shape.Suffix[i], solver, out)
	}
	for i := prefixLen; i < n-suffixLen; i++ {
		// Invariant on the variadic middle segment (spec §9): check both
		// directions through the oracle.
		m.checkOne(gathered[i], shape.Variadic, solver, out)
		res := m.Oracle.Subtype(shape.Variadic, gathered[i].EffectiveType(), solver)
		if !res.Ok {
			out.Ok = false
		}
	}
}

func (m *Matcher) matchTypedDictFields(pairing *Pairing, out *MatchOutcome, solver *Solver) {
	for _, field := range pairing.Param.TypedDict.Fields {
		a, ok := pairing.FieldArgs[field.Name]
		if !ok {
			continue // already reported as a missing field at the PairResult level
		}
		m.checkOne(a, field.Type, solver, out)
	}
}

func (m *Matcher) matchParamSpecBundle(pairing *Pairing, solver *Solver) {
	if pairing.Param.Kind != types.StarParam {
		return // the *args side does the binding; the **kwargs side is a no-op
	}
	ref := pairing.Param.ParamSpecRef
	if pairing.ParamSpecForward != nil {
		// `*P.args, **P.kwargs` forwarding: bind P to itself, trivially.
		solver.ConstrainParamSpec(ref, &types.ParamSpecShape{})
		return
	}
	shape := &types.ParamSpecShape{}
	for _, a := range pairing.Args {
		shape.Params = append(shape.Params, &types.Param{Kind: types.PositionalOnly, Type: a.EffectiveType()})
	}
	solver.ConstrainParamSpec(ref, shape)
}

// attributionPos picks where a diagnostic attaches: the line of the
// offending argument expression, or a zero Position when the argument
// has no expression. StrictCompat is not consulted here; every diagnostic
// routed through this function attaches to the argument in either mode.
func (m *Matcher) attributionPos(a *Arg) diag.Position {
	if a == nil || a.Expr == nil {
		return diag.Position{}
	}
	return diag.Position{Line: a.Expr.Line()}
}
