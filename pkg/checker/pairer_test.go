package checker

import (
	"testing"

	"github.com/singularitti/zuban/pkg/types"
)

func arg(kind ArgKind, name string, t types.Type) *Arg {
	return &Arg{Kind: kind, Name: name, Type: t}
}

func TestPairPositionalOrKeywordPrefersPositional(t *testing.T) {
	params := []*types.Param{
		{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int},
		{Name: "b", Kind: types.PositionalOrKeyword, Type: types.Str},
	}
	args := []*Arg{arg(ArgPositional, "", types.Int), arg(ArgKeyword, "b", types.Str)}

	res := Pairer{}.Pair(params, args)
	if len(res.Pairings) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(res.Pairings))
	}
	if res.Pairings[0].Absent || res.Pairings[0].Args[0].Kind != ArgPositional {
		t.Errorf("param 'a' should pair with the positional arg, got %+v", res.Pairings[0])
	}
	if res.Pairings[1].Absent || res.Pairings[1].Args[0].Name != "b" {
		t.Errorf("param 'b' should pair with the keyword arg, got %+v", res.Pairings[1])
	}
}

func TestPairDuplicateKeywordFlagged(t *testing.T) {
	params := []*types.Param{{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int}}
	args := []*Arg{arg(ArgPositional, "", types.Int), arg(ArgKeyword, "a", types.Int)}

	res := Pairer{}.Pair(params, args)
	if res.Pairings[0].Duplicate == nil {
		t.Fatal("expected Duplicate to be set when a keyword repeats a positionally-filled parameter")
	}
}

func TestPairStarArbitraryLenGathersAllPositional(t *testing.T) {
	params := []*types.Param{{Kind: types.StarParam, StarKind: types.StarArbitraryLen, Type: types.Int}}
	args := []*Arg{arg(ArgPositional, "", types.Int), arg(ArgPositional, "", types.Int), arg(ArgPositional, "", types.Int)}

	res := Pairer{}.Pair(params, args)
	if len(res.Pairings) != 1 || len(res.Pairings[0].Args) != 3 {
		t.Fatalf("expected all 3 positional args gathered into the rest param, got %+v", res.Pairings)
	}
	if res.TooManyPositional {
		t.Error("rest param should have consumed every positional argument")
	}
}

func TestPairTooManyPositionalWithNoRestParam(t *testing.T) {
	params := []*types.Param{{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int}}
	args := []*Arg{arg(ArgPositional, "", types.Int), arg(ArgPositional, "", types.Int)}

	res := Pairer{}.Pair(params, args)
	if !res.TooManyPositional {
		t.Error("expected TooManyPositional with an extra positional and no rest parameter")
	}
}

func TestPairUnpackTypedDictMissingRequiredField(t *testing.T) {
	td := &types.TypedDictType{Name: "Opts", Fields: []types.TypedDictField{
		{Name: "x", Type: types.Int, Required: true},
		{Name: "y", Type: types.Str, Required: false},
	}}
	params := []*types.Param{{Kind: types.StarStarParam, StarStarKind: types.StarStarUnpackTypedDict, TypedDict: td}}
	args := []*Arg{{Kind: ArgStarStarField, Name: "y", Type: types.Str}}

	res := Pairer{}.Pair(params, args)
	if len(res.MissingFields) != 1 || res.MissingFields[0] != "x" {
		t.Fatalf("expected 'x' reported missing, got %+v", res.MissingFields)
	}
}

func TestPairParamSpecBundleForwarding(t *testing.T) {
	ps := &types.ParamSpecVar{VarName: "P"}
	params := []*types.Param{
		{Kind: types.StarParam, StarKind: types.StarParamSpecArgs, ParamSpecRef: ps},
		{Kind: types.StarStarParam, StarStarKind: types.StarStarParamSpecKwargs, ParamSpecRef: ps},
	}
	args := []*Arg{{Kind: ArgParamSpecForward, ParamSpecRef: ps}}

	res := Pairer{}.Pair(params, args)
	if len(res.Pairings) != 2 {
		t.Fatalf("expected 2 pairings (one per param-spec half), got %d", len(res.Pairings))
	}
	if !res.Pairings[0].ParamSpecBundle || res.Pairings[0].ParamSpecForward == nil {
		t.Errorf("expected the *args half to carry the forwarded arg, got %+v", res.Pairings[0])
	}
	if !res.Pairings[1].ParamSpecBundle || res.Pairings[1].ParamSpecForward == nil {
		t.Errorf("expected the **kwargs half to carry the forwarded arg too, got %+v", res.Pairings[1])
	}
}

func TestPairSecondWildcardIgnored(t *testing.T) {
	params := []*types.Param{
		{Name: "a", Kind: types.KeywordOnly, Type: types.Int},
	}
	w1 := &Arg{Kind: ArgStarStarWildcard, Type: types.Int, ArbitraryLength: true}
	w2 := &Arg{Kind: ArgStarStarWildcard, Type: types.Str, ArbitraryLength: true}
	args := []*Arg{w1, w2}

	res := Pairer{}.Pair(params, args)
	if res.Pairings[0].Args[0] != w1 {
		t.Errorf("only the first simultaneous wildcard should ever be honored, got %+v", res.Pairings[0].Args)
	}
}
