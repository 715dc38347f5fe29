package types

import "fmt"

// ParamKind is the closed, disjoint set of parameter kinds from spec §3.
type ParamKind int

const (
	PositionalOnly ParamKind = iota
	PositionalOrKeyword
	KeywordOnly
	StarParam
	StarStarParam
)

// StarKind is the closed set of flavors a StarParam can take.
type StarKind int

const (
	StarArbitraryLen StarKind = iota
	StarUnpackedTuple
	StarParamSpecArgs
)

// StarStarKind is the closed set of flavors a StarStarParam can take.
type StarStarKind int

const (
	StarStarValueType StarStarKind = iota
	StarStarParamSpecKwargs
	StarStarUnpackTypedDict
)

// Param is a single parameter in a Signature's parameter list. Only the
// fields relevant to Kind (and, for StarParam/StarStarParam, StarKind/
// StarStarKind) are meaningful; pattern-match on Kind rather than
// introducing a parallel interface hierarchy (spec §9).
type Param struct {
	Name          string
	Kind          ParamKind
	Type          Type // annotation; nil means unannotated (treated as Any)
	HasDefault    bool
	MightHaveVars bool // hint: skip solver work if false (spec §3)

	StarKind      StarKind
	TupleShape    *TupleShape // for StarUnpackedTuple
	ParamSpecRef  *ParamSpecVar // for StarParamSpecArgs / StarStarParamSpecKwargs

	StarStarKind StarStarKind
	TypedDict    *TypedDictType // for StarStarUnpackTypedDict
}

func (p *Param) EffectiveType() Type {
	if p.Type == nil {
		return Any
	}
	return p.Type
}

func (p *Param) String() string {
	switch p.Kind {
	case PositionalOnly:
		return fmt.Sprintf("%s/", p.EffectiveType().String())
	case PositionalOrKeyword:
		opt := ""
		if p.HasDefault {
			opt = " = ..."
		}
		return fmt.Sprintf("%s: %s%s", p.Name, p.EffectiveType().String(), opt)
	case KeywordOnly:
		opt := ""
		if p.HasDefault {
			opt = " = ..."
		}
		return fmt.Sprintf("*, %s: %s%s", p.Name, p.EffectiveType().String(), opt)
	case StarParam:
		switch p.StarKind {
		case StarUnpackedTuple:
			return "*args: " + (&TupleType{Shape: p.TupleShape}).String()
		case StarParamSpecArgs:
			return "*args: " + p.ParamSpecRef.Name() + ".args"
		default:
			return "*args: " + p.EffectiveType().String()
		}
	case StarStarParam:
		switch p.StarStarKind {
		case StarStarParamSpecKwargs:
			return "**kwargs: " + p.ParamSpecRef.Name() + ".kwargs"
		case StarStarUnpackTypedDict:
			return "**kwargs: Unpack[" + p.TypedDict.Name + "]"
		default:
			return "**kwargs: " + p.EffectiveType().String()
		}
	}
	return "?"
}

func (p *Param) Equals(other *Param) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Kind != other.Kind || p.Name != other.Name || p.HasDefault != other.HasDefault {
		return false
	}
	if (p.Type == nil) != (other.Type == nil) {
		return false
	}
	if p.Type != nil && !p.Type.Equals(other.Type) {
		return false
	}
	if p.Kind == StarParam && p.StarKind != other.StarKind {
		return false
	}
	if p.Kind == StarStarParam && p.StarStarKind != other.StarStarKind {
		return false
	}
	return true
}

// IsTrivialAnySuffix reports whether params, from index i onward, is
// exactly `*args: Any, **kwargs: Any` — the "trivial-suffix" tolerance of
// spec §4.3 that absorbs any remaining arguments without failure.
func IsTrivialAnySuffix(params []*Param, i int) bool {
	if len(params)-i != 2 {
		return false
	}
	a, b := params[i], params[i+1]
	if a.Kind != StarParam || a.StarKind != StarArbitraryLen || a.EffectiveType() != Any {
		return false
	}
	if b.Kind != StarStarParam || b.StarStarKind != StarStarValueType || b.EffectiveType() != Any {
		return false
	}
	return true
}
