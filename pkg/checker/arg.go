package checker

import (
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/types"
)

// RawArgKind is the syntactic shape of an argument at a call site, before
// normalization (spec §4.1 input).
type RawArgKind int

const (
	RawPositional RawArgKind = iota
	RawKeyword
	RawStar
	RawStarStar
	RawComprehension

	// rawConsumed marks a **expr already folded into a preceding
	// ParamSpec forward, so the main normalization loop skips it.
	rawConsumed RawArgKind = -1
)

// RawArg is one argument as written at the call site. Building this from
// an actual parse tree is out of scope (spec §1); callers (tests, the
// fixture loader) construct it directly.
type RawArg struct {
	Kind RawArgKind
	Name string // set when Kind == RawKeyword
	Expr external.Expression
}

// ArgKind is the closed set of normalized argument kinds (spec §3).
type ArgKind int

const (
	ArgPositional ArgKind = iota
	ArgKeyword
	ArgStarSpread
	ArgStarStarWildcard
	ArgStarStarField // one field of an expanded typed-dict or **kwargs unpack
	ArgParamSpecForward
	ArgComprehension
	ArgOverridden
)

// Arg is one entry in the normalized argument stream (spec §3). Every
// Arg carries Index, its ordinal position in the *original* call, used
// for error attribution regardless of how normalization reordered or
// expanded it.
type Arg struct {
	Kind  ArgKind
	Index int

	Name string // ArgKeyword, ArgStarStarField
	Expr external.Expression // nil for some spread-derived/synthetic args
	Type types.Type          // resolved type (element type for spreads, field type for typed-dict fields, etc.)

	// ArbitraryLength marks an argument that may be consumed by many
	// parameters (spec §3 invariant): set for ArgStarSpread members and
	// for ArgStarStarWildcard.
	ArbitraryLength bool

	// ParamSpecRef is set on ArgParamSpecForward.
	ParamSpecRef *types.ParamSpecVar

	// Required is meaningful only for ArgStarStarField coming from a
	// typed-dict unpack: whether the field must be present.
	Required bool

	// Overridden support for union math (spec §3): Original points back
	// at the Arg being swapped, SubstituteType is the narrowed member
	// type to check against instead of Original's natural type.
	Original        *Arg
	SubstituteType  types.Type
}

// EffectiveType returns the type this argument presents to the matcher:
// the override when present, else the resolved Type.
func (a *Arg) EffectiveType() types.Type {
	if a.Kind == ArgOverridden && a.SubstituteType != nil {
		return a.SubstituteType
	}
	return a.Type
}

// WithOverride returns a copy of a with its effective type replaced —
// used by C5 to split a union-typed argument across overload
// alternatives without mutating the shared stream.
func (a *Arg) WithOverride(substitute types.Type) *Arg {
	cp := *a
	cp.Kind = ArgOverridden
	cp.Original = a
	cp.SubstituteType = substitute
	return &cp
}
