package checker

import (
	"testing"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/types"
)

func TestSolverFinalizeDefaultsToNeverWhenUnconstrained(t *testing.T) {
	tv := &types.TypeVar{VarName: "T"}
	s := NewSolver(&diag.Collector{})
	out := s.Finalize([]types.TypeVarLike{tv})
	if out.Vars[tv] != types.Never {
		t.Errorf("expected an unconstrained type variable with no default to finalize to Never, got %v", out.Vars[tv])
	}
}

func TestSolverFinalizeUsesDeclaredDefault(t *testing.T) {
	tv := &types.TypeVar{VarName: "T", Default: types.Str}
	s := NewSolver(&diag.Collector{})
	out := s.Finalize([]types.TypeVarLike{tv})
	if out.Vars[tv] != types.Str {
		t.Errorf("expected the declared default Str, got %v", out.Vars[tv])
	}
}

func TestSolverArgsPhaseOverridesContextPhase(t *testing.T) {
	tv := &types.TypeVar{VarName: "T"}
	s := NewSolver(&diag.Collector{})
	s.ConstrainLower(tv, types.Str)
	s.BeginArgs()
	s.ConstrainLower(tv, types.Int)

	out := s.Finalize([]types.TypeVarLike{tv})
	if out.Vars[tv] != types.Int {
		t.Errorf("expected an argument-phase constraint to win over a context-phase one, got %v", out.Vars[tv])
	}
}

func TestSolverConstrainLowerUnionsRepeatedObservations(t *testing.T) {
	tv := &types.TypeVar{VarName: "T"}
	s := NewSolver(&diag.Collector{})
	s.ConstrainLower(tv, types.Int)
	s.ConstrainLower(tv, types.Str)

	out := s.Finalize([]types.TypeVarLike{tv})
	u, ok := out.Vars[tv].(*types.UnionType)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("expected two distinct observations to widen into a union, got %v", out.Vars[tv])
	}
}

func TestSolverBoundViolationReportsDiagnostic(t *testing.T) {
	tv := &types.TypeVar{VarName: "T", Bound: types.Int}
	sink := &diag.Collector{}
	s := NewSolver(sink)
	s.ConstrainLower(tv, types.Str)

	out := s.Finalize([]types.TypeVarLike{tv})
	if out.Vars[tv] != types.Never {
		t.Errorf("expected a bound violation to finalize to Never, got %v", out.Vars[tv])
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.InvalidTypeVarValue {
		t.Fatalf("expected one InvalidTypeVarValue diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestSolverConstraintPicksMatchingAlternative(t *testing.T) {
	tv := &types.TypeVar{VarName: "T", Constraint: []types.Type{types.Int, types.Str}}
	s := NewSolver(&diag.Collector{})
	s.ConstrainLower(tv, types.Str)

	out := s.Finalize([]types.TypeVarLike{tv})
	if out.Vars[tv] != types.Str {
		t.Errorf("expected the matching constraint member Str, got %v", out.Vars[tv])
	}
}

func TestSolverConstraintViolationReportsDiagnostic(t *testing.T) {
	tv := &types.TypeVar{VarName: "T", Constraint: []types.Type{types.Int, types.Str}}
	sink := &diag.Collector{}
	s := NewSolver(sink)
	s.ConstrainLower(tv, types.Bool)

	out := s.Finalize([]types.TypeVarLike{tv})
	if out.Vars[tv] != types.Never {
		t.Errorf("expected no matching constraint to finalize to Never, got %v", out.Vars[tv])
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.InvalidTypeVarValue {
		t.Fatalf("expected one InvalidTypeVarValue diagnostic, got %+v", sink.Diagnostics)
	}
}

func TestSolverFinalizeTupleDefaultsEmptyShape(t *testing.T) {
	tvt := &types.TypeVarTupleVar{VarName: "Ts"}
	s := NewSolver(&diag.Collector{})
	out := s.Finalize([]types.TypeVarLike{tvt})
	if out.VarTuples[tvt] == nil {
		t.Fatal("expected an empty TupleShape rather than nil when no constraint was recorded")
	}
}

func TestSolverConstrainTupleFirstWriteWins(t *testing.T) {
	tvt := &types.TypeVarTupleVar{VarName: "Ts"}
	s := NewSolver(&diag.Collector{})
	first := &types.TupleShape{Prefix: []types.Type{types.Int}}
	second := &types.TupleShape{Prefix: []types.Type{types.Str}}
	s.ConstrainTuple(tvt, first)
	s.ConstrainTuple(tvt, second)

	out := s.Finalize([]types.TypeVarLike{tvt})
	if out.VarTuples[tvt] != first {
		t.Error("expected the first recorded tuple shape to stick")
	}
}
