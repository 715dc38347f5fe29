package checker

import (
	"testing"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/points"
	"github.com/singularitti/zuban/pkg/types"
)

func newChecker() *Checker {
	return &Checker{Oracle: fakeOracle{}, Sink: &diag.Collector{}, Points: points.New(8)}
}

func TestCheckCallOrdinarySuccess(t *testing.T) {
	c := newChecker()
	callable := &types.Callable{Name: "f", Signatures: []*types.Signature{
		sig([]*types.Param{param("x", types.Int)}, types.Str),
	}}
	raw := []RawArg{{Kind: RawPositional, Expr: &fakeExpr{idx: 0, t: types.Int}}}

	out := c.CheckCall(callable, raw, nil)
	if !out.Ok {
		t.Fatalf("expected the call to succeed, diagnostics: %+v", c.Sink.(*diag.Collector).Diagnostics)
	}
	if out.ReturnType != types.Str {
		t.Errorf("expected Str return type, got %v", out.ReturnType)
	}
}

func TestCheckConstructorCallInstantiatesWithSolvedTypeVars(t *testing.T) {
	tv := &types.TypeVar{VarName: "T"}
	class := &types.ClassType{
		Name:     "Box",
		TypeVars: []types.TypeVarLike{tv},
		Init: sig([]*types.Param{{Name: "x", Kind: types.PositionalOrKeyword, Type: &types.TypeVarType{Var: tv}}},
			types.None),
	}

	c := newChecker()
	raw := []RawArg{{Kind: RawPositional, Expr: &fakeExpr{idx: 0, t: types.Int}}}
	out := c.CheckConstructorCall(class, raw, nil)

	if !out.Ok {
		t.Fatalf("expected the constructor call to succeed, diagnostics: %+v", c.Sink.(*diag.Collector).Diagnostics)
	}
	inst, ok := out.ReturnType.(*types.InstantiatedClass)
	if !ok {
		t.Fatalf("expected an InstantiatedClass return type, got %v", out.ReturnType)
	}
	if inst.Class != class {
		t.Error("expected the instantiated class to be the constructed class")
	}
	if len(inst.TypeArgs) != 1 || inst.TypeArgs[0] != types.Int {
		t.Errorf("expected T solved to Int, got %+v", inst.TypeArgs)
	}
}

func TestCheckMethodCallSubstitutesSelfInReturnType(t *testing.T) {
	method := &types.Callable{
		Name: "identity",
		Signatures: []*types.Signature{
			sig(nil, types.SelfType),
		},
	}
	receiver := &types.ClassType{Name: "Widget"}

	c := newChecker()
	out := c.CheckMethodCall(method, receiver, nil, nil)

	if !out.Ok {
		t.Fatalf("expected the method call to succeed, diagnostics: %+v", c.Sink.(*diag.Collector).Diagnostics)
	}
	if out.ReturnType != receiver {
		t.Errorf("expected Self to substitute to the receiver type, got %v", out.ReturnType)
	}
}

func TestCheckCallMissingRequiredArgumentFails(t *testing.T) {
	c := newChecker()
	callable := &types.Callable{Name: "f", Signatures: []*types.Signature{
		sig([]*types.Param{param("x", types.Int)}, types.Str),
	}}

	out := c.CheckCall(callable, nil, nil)
	if out.Ok {
		t.Fatal("expected the call to fail when the required argument is missing")
	}
}

func TestSolveTypeVarsBindsWithoutPickingAnOverload(t *testing.T) {
	tv := &types.TypeVar{VarName: "T"}
	s := sig([]*types.Param{{Name: "x", Kind: types.PositionalOrKeyword, Type: &types.TypeVarType{Var: tv}}}, types.None)
	s.TypeVars = []types.TypeVarLike{tv}

	c := newChecker()
	raw := []RawArg{{Kind: RawPositional, Expr: &fakeExpr{idx: 0, t: types.Int}}}

	args := c.SolveTypeVars(s, raw, nil)
	if got := args.Lookup(tv); got != types.Int {
		t.Errorf("expected T solved to Int, got %v", got)
	}
}

var _ external.Expression = (*fakeExpr)(nil)
