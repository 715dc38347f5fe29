package checker

import (
	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/points"
	"github.com/singularitti/zuban/pkg/types"
)

// Normalizer is C1: it folds the syntactic argument list of a call into
// the uniform stream described in spec §3-§4.1.
type Normalizer struct {
	Oracle external.Oracle
	Sink   diag.Sink
	Points *points.Points
}

// infer resolves an expression's type, optionally under a contextual
// expected type, caching the result in the points array so later
// backup/restore sees it.
func (n *Normalizer) infer(expr external.Expression, ctx *external.ExpectedType) types.Type {
	if expr == nil {
		return types.Any
	}
	t, err := expr.Infer(ctx)
	if err != nil || t == nil {
		t = types.Any
	}
	n.Points.Set(expr.Index(), t)
	return t
}

// Normalize turns raw call-site syntax into the normalized argument
// stream, expanding *iterable and **mapping per spec §4.1.
//
// When a call mixes at least one plain keyword argument with at least
// one star argument, keyword arguments are buffered and appended in
// reverse (LIFO) source order instead of their original order. This
// looks backwards, but it reproduces the upstream checker's own
// evaluation-order quirk rather than picking a more "sensible" order of
// our own (spec §9): it is why a call like `f(x=1, *a, x=2)` reports a
// multi-value error attributed to the keyword written last in the source
// (`x=2`), which the reversed flush reaches first.
func (n *Normalizer) Normalize(raw []RawArg) []*Arg {
	reorderKeywords := hasKeywordBeforeOrAfterStar(raw)

	var positional []*Arg
	var keyword []*Arg

	for i, ra := range raw {
		switch ra.Kind {
		case RawPositional:
			positional = append(positional, &Arg{Kind: ArgPositional, Index: i, Expr: ra.Expr, Type: n.infer(ra.Expr, nil)})

		case RawKeyword:
			keyword = append(keyword, &Arg{Kind: ArgKeyword, Index: i, Name: ra.Name, Expr: ra.Expr, Type: n.infer(ra.Expr, nil)})

		case RawComprehension:
			positional = append(positional, &Arg{Kind: ArgComprehension, Index: i, Expr: ra.Expr, Type: n.infer(ra.Expr, nil)})

		case RawStar:
			expanded, consumedNext := n.expandStar(raw, i)
			positional = append(positional, expanded...)
			if consumedNext {
				// the following **expr was folded into the ParamSpec
				// forward; the loop skips it when it gets there.
				raw[i+1].Kind = rawConsumed
			}

		case RawStarStar:
			keyword = append(keyword, n.expandStarStar(ra, i)...)

		case rawConsumed:
			// folded into a preceding ParamSpec forward; nothing to do.
		}
	}

	if reorderKeywords {
		// Only plain keyword arguments are deferred and replayed in
		// reverse upstream; **spread-derived fields are expanded inline
		// as part of the main walk and keep their original order.
		reverseKeywordArgsInPlace(keyword)
	}

	out := make([]*Arg, 0, len(positional)+len(keyword))
	out = append(out, positional...)
	out = append(out, keyword...)
	return out
}

// hasKeywordBeforeOrAfterStar reports whether raw contains both a plain
// keyword argument and a star argument anywhere in the call, the
// condition under which the upstream checker defers keyword ordering.
func hasKeywordBeforeOrAfterStar(raw []RawArg) bool {
	hasKeyword, hasStar := false, false
	for _, ra := range raw {
		switch ra.Kind {
		case RawKeyword:
			hasKeyword = true
		case RawStar:
			hasStar = true
		}
	}
	return hasKeyword && hasStar
}

// reverseKeywordArgsInPlace reverses the relative order of the
// ArgKeyword entries within args, leaving every other entry (e.g.
// **spread-derived fields) in its original slot.
func reverseKeywordArgsInPlace(args []*Arg) {
	var positions []int
	for i, a := range args {
		if a.Kind == ArgKeyword {
			positions = append(positions, i)
		}
	}
	for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
		pi, pj := positions[i], positions[j]
		args[pi], args[pj] = args[pj], args[pi]
	}
}

// expandStar implements the `*expr` rewrites of spec §4.1. It returns the
// normalized args this star produces and whether the following raw
// argument (expected to be the matching **expr2) was consumed as part of
// a ParamSpec forward.
func (n *Normalizer) expandStar(raw []RawArg, i int) ([]*Arg, bool) {
	ra := raw[i]
	argType := n.infer(ra.Expr, nil)

	if ref, ok := argType.(*types.ParamSpecArgsRefType); ok {
		if i+1 < len(raw) && raw[i+1].Kind == RawStarStar {
			nextType := n.infer(raw[i+1].Expr, nil)
			if kref, ok := nextType.(*types.ParamSpecKwargsRefType); ok && kref.Var == ref.Var {
				return []*Arg{{Kind: ArgParamSpecForward, Index: i, ParamSpecRef: ref.Var}}, true
			}
		}
		n.Sink.Add(&diag.Diagnostic{
			Kind: diag.ParamSpecArgumentsNeedsBothStarAndStarStar,
			Pos:  linePos(ra.Expr),
			Msg:  "*" + ref.Var.Name() + ".args must be immediately followed by **" + ref.Var.Name() + ".kwargs",
		})
		return nil, false
	}

	if tup, ok := argType.(*types.TupleType); ok {
		var out []*Arg
		for _, p := range tup.Shape.Prefix {
			out = append(out, &Arg{Kind: ArgPositional, Index: i, Type: p})
		}
		if tup.Shape.Variadic != nil {
			out = append(out, &Arg{Kind: ArgStarSpread, Index: i, Type: tup.Shape.Variadic, ArbitraryLength: true})
		}
		for _, s := range tup.Shape.Suffix {
			out = append(out, &Arg{Kind: ArgPositional, Index: i, Type: s})
		}
		return out, false
	}

	if elem, ok := n.Oracle.IterElement(argType); ok {
		return []*Arg{{Kind: ArgStarSpread, Index: i, Type: elem, ArbitraryLength: true}}, false
	}

	n.Sink.Add(&diag.Diagnostic{
		Kind: diag.InvalidSpreadArgument,
		Pos:  linePos(ra.Expr),
		Msg:  "*" + argType.String() + " is not iterable",
	})
	return []*Arg{{Kind: ArgStarSpread, Index: i, Type: types.ErrorType, ArbitraryLength: true}}, false
}

// expandStarStar implements the `**expr` rewrites of spec §4.1.
func (n *Normalizer) expandStarStar(ra RawArg, i int) []*Arg {
	argType := n.infer(ra.Expr, nil)

	if fields, ok := n.Oracle.TypedDictFields(argType); ok {
		out := make([]*Arg, 0, len(fields))
		for _, f := range fields {
			out = append(out, &Arg{Kind: ArgStarStarField, Index: i, Name: f.Name, Type: f.Type, Required: f.Required})
		}
		return out
	}

	mapping, isMapping := argType.(*types.MappingType)
	if !isMapping {
		n.Sink.Add(&diag.Diagnostic{
			Kind: diag.InvalidSpreadArgument,
			Pos:  linePos(ra.Expr),
			Msg:  "**" + argType.String() + " is not a mapping",
		})
		return []*Arg{{Kind: ArgStarStarWildcard, Index: i, Type: types.ErrorType, ArbitraryLength: true}}
	}

	if res := n.Oracle.Subtype(mapping.Key, types.Str, nil); !res.Ok {
		n.Sink.Add(&diag.Diagnostic{
			Kind: diag.KeywordsMustBeStrings,
			Pos:  linePos(ra.Expr),
			Msg:  "keyword argument keys must be strings, got " + mapping.Key.String(),
		})
		return []*Arg{{Kind: ArgStarStarWildcard, Index: i, Type: types.ErrorType, ArbitraryLength: true}}
	}

	return []*Arg{{Kind: ArgStarStarWildcard, Index: i, Type: mapping.Value, ArbitraryLength: true}}
}

func linePos(e external.Expression) diag.Position {
	if e == nil {
		return diag.Position{}
	}
	return diag.Position{Line: e.Line()}
}
