package checker

import (
	"fmt"

	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/types"
)

// ValidateTypeVarDecl checks a declared generic parameter list for the
// two class-definition-time errors the spec's diagnostic catalog names
// alongside the call-site ones (spec §6): at most one type-variable-tuple
// per declaration, and no ordinary type variable without a default
// following one that declares a default. Grounded on paserati's
// duplicate-type-parameter scan in pkg/checker/checker.go, which walks a
// declared parameter list once and reports as it goes rather than
// building a side table first.
func ValidateTypeVarDecl(vars []types.TypeVarLike, sink diag.Sink) {
	if sink == nil {
		return
	}
	seenTuple := false
	seenDefault := false
	for _, v := range vars {
		switch tv := v.(type) {
		case *types.TypeVarTupleVar:
			if seenTuple {
				sink.Add(&diag.Diagnostic{
					Kind: diag.MultipleTypeVarTuplesInClassDef,
					Msg:  fmt.Sprintf("type-variable-tuple '%s' is the second in this declaration; only one is allowed", tv.VarName),
				})
			}
			seenTuple = true
		case *types.TypeVar:
			if tv.Default != nil {
				seenDefault = true
				continue
			}
			if seenDefault {
				sink.Add(&diag.Diagnostic{
					Kind: diag.TypeVarDefaultWrongOrder,
					Msg:  fmt.Sprintf("type variable '%s' has no default but follows one that does", tv.VarName),
				})
			}
		}
	}
}

// checkConcreteClassExpected implements the spec §6 diagnostic fired when
// a bare class object is passed where an instance of some type was
// expected (a constructor call, not the class itself). Only fires when
// the expected type is concrete — against Any or another ClassType it is
// never wrong to pass a class object.
func checkConcreteClassExpected(a *Arg, expected types.Type, sink diag.Sink) bool {
	if sink == nil || expected == nil || expected == types.Any {
		return true
	}
	if _, expectsClassItself := expected.(*types.ClassType); expectsClassItself {
		return true
	}
	cls, ok := a.EffectiveType().(*types.ClassType)
	if !ok {
		return true
	}
	sink.Add(&diag.Diagnostic{
		Kind: diag.OnlyConcreteClassAllowedWhereTypeExpected,
		Msg:  fmt.Sprintf("only a concrete instance is allowed here, got the class '%s' itself", cls.Name),
	})
	return false
}
