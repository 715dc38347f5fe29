package checker

import (
	"testing"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/types"
)

func TestMatchReportsTooFewArguments(t *testing.T) {
	params := []*types.Param{{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int}}
	pr := Pairer{}.Pair(params, nil)

	sink := &diag.Collector{}
	m := &Matcher{Oracle: fakeOracle{}, Sink: sink}
	outcome := m.Match(&types.Signature{Params: params}, params, pr, NewSolver(sink))

	if outcome.Ok {
		t.Fatal("expected match to fail when a required argument is missing")
	}
	if !hasKind(sink.Diagnostics, diag.TooFewArguments) {
		t.Errorf("expected a TooFewArguments diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestMatchIncompatibleArgumentType(t *testing.T) {
	params := []*types.Param{{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int}}
	args := []*Arg{arg(ArgPositional, "", types.Str)}
	pr := Pairer{}.Pair(params, args)

	sink := &diag.Collector{}
	m := &Matcher{Oracle: fakeOracle{}, Sink: sink}
	outcome := m.Match(&types.Signature{Params: params}, params, pr, NewSolver(sink))

	if outcome.Ok {
		t.Fatal("expected a str argument against an int parameter to fail")
	}
	if !hasKind(sink.Diagnostics, diag.ArgumentTypeIncompatible) {
		t.Errorf("expected an ArgumentTypeIncompatible diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestMatchTrivialAnySuffixAbsorbsAnything(t *testing.T) {
	params := []*types.Param{
		{Kind: types.StarParam, StarKind: types.StarArbitraryLen, Type: types.Any},
		{Kind: types.StarStarParam, StarStarKind: types.StarStarValueType, Type: types.Any},
	}
	args := []*Arg{arg(ArgPositional, "", types.Int), arg(ArgKeyword, "z", types.Str)}
	pr := Pairer{}.Pair(params, args)

	sink := &diag.Collector{}
	m := &Matcher{Oracle: fakeOracle{}, Sink: sink}
	outcome := m.Match(&types.Signature{Params: params}, params, pr, NewSolver(sink))

	if !outcome.Ok {
		t.Fatalf("a trivial *args: Any, **kwargs: Any suffix must absorb anything, got diagnostics %+v", sink.Diagnostics)
	}
}

func TestMatchAnyArgumentMarksAnyPosition(t *testing.T) {
	params := []*types.Param{{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int}}
	args := []*Arg{arg(ArgPositional, "", types.Any)}
	args[0].Index = 0
	pr := Pairer{}.Pair(params, args)

	sink := &diag.Collector{}
	m := &Matcher{Oracle: fakeOracle{}, Sink: sink}
	outcome := m.Match(&types.Signature{Params: params}, params, pr, NewSolver(sink))

	if !outcome.Ok {
		t.Fatal("Any must be assignable to any parameter type")
	}
	if _, ok := outcome.AnyPositions[0]; !ok {
		t.Error("expected argument 0 to be recorded as matched via Any")
	}
}

func hasKind(ds []*diag.Diagnostic, k diag.Kind) bool {
	for _, d := range ds {
		if d.Kind == k {
			return true
		}
	}
	return false
}
