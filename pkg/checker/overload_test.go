package checker

import (
	"testing"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/points"
	"github.com/singularitti/zuban/pkg/types"
)

func sig(params []*types.Param, ret types.Type) *types.Signature {
	return &types.Signature{Params: params, ReturnType: ret}
}

func param(name string, t types.Type) *types.Param {
	return &types.Param{Name: name, Kind: types.PositionalOrKeyword, Type: t}
}

func TestResolvePicksFirstPreciseMatch(t *testing.T) {
	c := &types.Callable{
		Name: "f",
		Signatures: []*types.Signature{
			sig([]*types.Param{param("x", types.Int)}, types.Int),
			sig([]*types.Param{param("x", types.Str)}, types.Str),
		},
	}
	args := []*Arg{arg(ArgPositional, "", types.Str)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}, Points: points.New(1)}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if !out.Ok {
		t.Fatalf("expected the str overload to match, diagnostics: %+v", sink.Diagnostics)
	}
	if out.ReturnType != types.Str {
		t.Errorf("expected Str return type, got %v", out.ReturnType)
	}
	if out.Chosen != c.Signatures[1] {
		t.Error("expected the second signature (str) to be chosen")
	}
}

func TestResolveRestoresPointsForLosingTrials(t *testing.T) {
	c := &types.Callable{
		Name: "f",
		Signatures: []*types.Signature{
			sig([]*types.Param{param("x", types.Bool)}, types.Bool),
			sig([]*types.Param{param("x", types.Int)}, types.Int),
		},
	}
	args := []*Arg{arg(ArgPositional, "", types.Int)}
	args[0].Index = 0

	pts := points.New(1)
	pts.Set(0, types.Int)
	r := &Resolver{Oracle: fakeOracle{}, Points: pts}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if !out.Ok || out.Chosen != c.Signatures[1] {
		t.Fatalf("expected the int overload to win, got %+v", out)
	}
	if got := pts.Get(0); got != types.Int {
		t.Errorf("expected the winning trial's cached type preserved, got %v", got)
	}
}

func TestResolveNoMatchReportsOverloadMismatchWithAlternatives(t *testing.T) {
	c := &types.Callable{
		Name: "f",
		Signatures: []*types.Signature{
			sig([]*types.Param{param("x", types.Int)}, types.Int),
			sig([]*types.Param{param("x", types.Bool)}, types.Bool),
		},
	}
	args := []*Arg{arg(ArgPositional, "", types.Str)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if out.Ok {
		t.Fatal("expected no overload to match a str argument")
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.OverloadMismatch {
		t.Fatalf("expected one OverloadMismatch diagnostic, got %+v", sink.Diagnostics)
	}
	if len(sink.Diagnostics[0].Args) != 2 {
		t.Errorf("expected both alternatives listed, got %+v", sink.Diagnostics[0].Args)
	}
	if out.ReturnType == nil {
		t.Error("expected a merged fallback return type even on failure")
	}
}

func TestResolveUnionSplitRecombinesReturnTypes(t *testing.T) {
	c := &types.Callable{
		Name: "f",
		Signatures: []*types.Signature{
			sig([]*types.Param{param("x", types.Int)}, types.Int),
			sig([]*types.Param{param("x", types.Str)}, types.Str),
		},
	}
	union := types.NewUnionType(types.Int, types.Str)
	args := []*Arg{arg(ArgPositional, "", union)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if !out.Ok || !out.UnionSplit {
		t.Fatalf("expected a successful union split, got %+v, diagnostics: %+v", out, sink.Diagnostics)
	}
	u, ok := out.ReturnType.(*types.UnionType)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("expected a 2-member union return type, got %v", out.ReturnType)
	}
}

func TestResolveWarnsOnDeprecatedSignature(t *testing.T) {
	s := sig([]*types.Param{param("x", types.Int)}, types.Int)
	s.Deprecated = true
	s.DeprecatedNote = "use g() instead"
	c := &types.Callable{Name: "f", Signatures: []*types.Signature{s}}
	args := []*Arg{arg(ArgPositional, "", types.Int)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}, WarnDeprecated: true}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if !out.Ok {
		t.Fatal("expected the call to succeed")
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.Deprecated {
		t.Fatalf("expected one Deprecated diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestResolveAmbiguousAnyMatchesSoftFailsWithoutDiagnostic(t *testing.T) {
	c := &types.Callable{
		Name: "f",
		Signatures: []*types.Signature{
			sig([]*types.Param{param("x", types.Int)}, types.Int),
			sig([]*types.Param{param("x", types.Str)}, types.Str),
		},
	}
	// fakeOracle treats an Any-typed argument as matching (via Any)
	// regardless of the expected type, so both alternatives below match
	// only through the same argument's Any-infection with distinct
	// expected types at that position: spec §4.5 rule 2.
	args := []*Arg{arg(ArgPositional, "", types.Any)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if out.Ok {
		t.Fatal("expected an ambiguous Any-match to soft-fail")
	}
	if len(sink.Diagnostics) != 0 {
		t.Errorf("ambiguous Any-match must not emit a mismatch diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestResolveSingleAnyMatchIsChosen(t *testing.T) {
	c := &types.Callable{
		Name: "f",
		Signatures: []*types.Signature{
			sig([]*types.Param{param("x", types.Int)}, types.Int),
		},
	}
	args := []*Arg{arg(ArgPositional, "", types.Any)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if !out.Ok || out.Chosen != c.Signatures[0] {
		t.Fatalf("expected the lone Any-match to be chosen, got %+v", out)
	}
}

func TestResolveExceedsMaxUnionsEmitsDiagnostic(t *testing.T) {
	c := &types.Callable{
		Name:       "f",
		Signatures: []*types.Signature{sig([]*types.Param{param("x", types.Bool)}, types.Bool)},
	}
	union := types.NewUnionType(types.Int, types.Str)
	args := []*Arg{arg(ArgPositional, "", union)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}}
	sink := &diag.Collector{}
	// Call resolve directly at the depth bound, as the recursive caller
	// would once MAX_UNIONS nested splits had already succeeded.
	out := r.resolve(c, args, nil, sink, r.maxUnions())

	if out.Ok {
		t.Fatal("expected failure once the union-split depth bound is exceeded")
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.OverloadTooManyUnions {
		t.Fatalf("expected one OverloadTooManyUnions diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestResolveContextRerunStillReportsOverloadMismatchOnce(t *testing.T) {
	c := &types.Callable{
		Name:       "f",
		Signatures: []*types.Signature{sig([]*types.Param{param("x", types.Int)}, types.Int)},
	}
	args := []*Arg{arg(ArgPositional, "", types.Str)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}}
	sink := &diag.Collector{}
	ctx := &external.ExpectedType{Type: types.Int}
	out := r.Resolve(c, args, ctx, sink)

	if out.Ok {
		t.Fatal("expected no overload to match")
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.OverloadMismatch {
		t.Fatalf("expected exactly one OverloadMismatch diagnostic even after the context rerun, got %+v", sink.Diagnostics)
	}
}

func TestResolveDeprecatedSilentWhenWarningsOff(t *testing.T) {
	s := sig([]*types.Param{param("x", types.Int)}, types.Int)
	s.Deprecated = true
	c := &types.Callable{Name: "f", Signatures: []*types.Signature{s}}
	args := []*Arg{arg(ArgPositional, "", types.Int)}
	args[0].Index = 0

	r := &Resolver{Oracle: fakeOracle{}, WarnDeprecated: false}
	sink := &diag.Collector{}
	out := r.Resolve(c, args, nil, sink)

	if !out.Ok {
		t.Fatal("expected the call to succeed")
	}
	if len(sink.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics with WarnDeprecated off, got %+v", sink.Diagnostics)
	}
}
