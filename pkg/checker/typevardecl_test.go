package checker

import (
	"testing"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/types"
)

func TestValidateTypeVarDeclFlagsSecondTuple(t *testing.T) {
	vars := []types.TypeVarLike{
		&types.TypeVarTupleVar{VarName: "Ts"},
		&types.TypeVarTupleVar{VarName: "Us"},
	}
	sink := &diag.Collector{}
	ValidateTypeVarDecl(vars, sink)

	if !hasKind(sink.Diagnostics, diag.MultipleTypeVarTuplesInClassDef) {
		t.Errorf("expected a MultipleTypeVarTuplesInClassDef diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestValidateTypeVarDeclFlagsDefaultOutOfOrder(t *testing.T) {
	vars := []types.TypeVarLike{
		&types.TypeVar{VarName: "T", Default: types.Int},
		&types.TypeVar{VarName: "U"},
	}
	sink := &diag.Collector{}
	ValidateTypeVarDecl(vars, sink)

	if !hasKind(sink.Diagnostics, diag.TypeVarDefaultWrongOrder) {
		t.Errorf("expected a TypeVarDefaultWrongOrder diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestValidateTypeVarDeclAcceptsWellOrderedDecl(t *testing.T) {
	vars := []types.TypeVarLike{
		&types.TypeVar{VarName: "T"},
		&types.TypeVar{VarName: "U", Default: types.Int},
		&types.TypeVarTupleVar{VarName: "Ts"},
	}
	sink := &diag.Collector{}
	ValidateTypeVarDecl(vars, sink)

	if len(sink.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics for a well-ordered declaration, got %+v", sink.Diagnostics)
	}
}

func TestCheckOneRejectsBareClassWhereInstanceExpected(t *testing.T) {
	params := []*types.Param{{Name: "a", Kind: types.PositionalOrKeyword, Type: types.Int}}
	cls := &types.ClassType{Name: "Widget"}
	args := []*Arg{arg(ArgPositional, "", cls)}
	pr := Pairer{}.Pair(params, args)

	sink := &diag.Collector{}
	m := &Matcher{Oracle: fakeOracle{}, Sink: sink}
	outcome := m.Match(&types.Signature{Params: params}, params, pr, NewSolver(sink))

	if outcome.Ok {
		t.Fatal("expected a bare class object to be rejected where an int was expected")
	}
	if !hasKind(sink.Diagnostics, diag.OnlyConcreteClassAllowedWhereTypeExpected) {
		t.Errorf("expected an OnlyConcreteClassAllowedWhereTypeExpected diagnostic, got %+v", sink.Diagnostics)
	}
}
